package eventbus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"betogether-admin/internal/shared/logger"
)

// Console event types.
const (
	// EventTypeSessionEnded carries a SessionEnded payload.
	EventTypeSessionEnded = "session.ended"
	// EventTypeResourceChanged carries a ResourceChanged payload.
	EventTypeResourceChanged = "resource.changed"
)

// Event is a message delivered to every handler subscribed to its type.
type Event interface {
	Type() string
	Data() interface{}
	Timestamp() time.Time
	Source() string
}

// Handler reacts to one event.
type Handler func(ctx context.Context, event Event) error

// EventBusInterface is what publishers and subscribers depend on.
type EventBusInterface interface {
	Subscribe(eventType string, handler Handler)
	Publish(ctx context.Context, event Event) error
	PublishAndForget(ctx context.Context, event Event)
}

// EventBus is an in-memory bus. Handlers run in the publisher's goroutine, in
// subscription order, once each.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   logger.Logger
}

// NewEventBus creates an empty bus. A nil log discards bus diagnostics.
func NewEventBus(log logger.Logger) *EventBus {
	if log == nil {
		log = logger.NewLoggerWithConfig(logger.Config{Level: "panic"}, io.Discard)
	}
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   log.WithComponent("eventbus"),
	}
}

// Subscribe registers handler for eventType.
func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
}

// Publish delivers event to every handler of its type. A failing handler does not
// stop the others; their errors are joined.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	eb.mu.RLock()
	handlers := append([]Handler(nil), eb.handlers[event.Type()]...)
	eb.mu.RUnlock()

	var errs []error
	for i, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			eb.logger.Errorf("handler %d failed for %s from %s: %v", i, event.Type(), event.Source(), err)
			errs = append(errs, fmt.Errorf("%s handler %d: %w", event.Type(), i, err))
		}
	}
	return errors.Join(errs...)
}

// PublishAndForget delivers event on its own goroutine. Cancelling ctx after the
// call does not cancel delivery.
func (eb *EventBus) PublishAndForget(ctx context.Context, event Event) {
	detached := context.WithoutCancel(ctx)
	go func() {
		_ = eb.Publish(detached, event)
	}()
}

type message struct {
	eventType string
	data      interface{}
	at        time.Time
	source    string
}

func (m *message) Type() string         { return m.eventType }
func (m *message) Data() interface{}    { return m.data }
func (m *message) Timestamp() time.Time { return m.at }
func (m *message) Source() string       { return m.source }

// NewEvent stamps data with the current time.
func NewEvent(eventType string, data interface{}, source string) Event {
	return &message{eventType: eventType, data: data, at: time.Now(), source: source}
}

// SessionEnded is published after a console session is destroyed.
type SessionEnded struct {
	SessionID string
}

// Event wraps e for publication.
func (e SessionEnded) Event(source string) Event {
	return NewEvent(EventTypeSessionEnded, e, source)
}

// ResourceChanged is published after a successful mutation on a managed list.
type ResourceChanged struct {
	SessionID  string
	AdminEmail string
	Resource   string
	Op         string
	ID         string
	Count      int
}

// Event wraps e for publication.
func (e ResourceChanged) Event(source string) Event {
	return NewEvent(EventTypeResourceChanged, e, source)
}
