package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"betogether-admin/internal/backend"
	consolehttp "betogether-admin/internal/console/adapter/http"
	"betogether-admin/internal/console/config"
	"betogether-admin/internal/console/usecase"
	"betogether-admin/internal/shared/eventbus"
	"betogether-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// ConsoleModule bundles the management screens of the console.
type ConsoleModule struct {
	config  *config.Config
	usecase *usecase.ConsoleUsecase
	handler *consolehttp.ConsoleHTTPHandler
	logger  logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewConsoleModule wires the console. guard protects its routes and sessions ends
// sessions whose backend token was rejected.
func NewConsoleModule(
	cfg *config.Config,
	client *backend.Client,
	guard consolehttp.SessionGuard,
	sessions usecase.SessionTerminator,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) (*ConsoleModule, error) {
	if cfg == nil {
		return nil, fmt.Errorf("console configuration is required")
	}
	if client == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	if guard == nil {
		return nil, fmt.Errorf("session guard is required")
	}
	if log == nil {
		log = logger.NewLogger()
	}

	uc := usecase.NewConsoleUsecase(client, sessions, bus, log)
	return &ConsoleModule{
		config:  cfg,
		usecase: uc,
		handler: consolehttp.NewConsoleHTTPHandler(uc, guard, sessions, log),
		logger:  log.WithComponent("console"),
	}, nil
}

// RegisterRoutes registers the protected console routes.
func (m *ConsoleModule) RegisterRoutes(router fiber.Router) {
	m.handler.RegisterRoutes(router)
}

// GetUsecase returns the console use case.
func (m *ConsoleModule) GetUsecase() *usecase.ConsoleUsecase {
	return m.usecase
}

// Start runs the idle workspace sweeper until ctx ends or Stop is called.
func (m *ConsoleModule) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	go m.sweep(ctx, m.done)
}

func (m *ConsoleModule) sweep(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(m.config.WorkspaceSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.usecase.Registry().Sweep(m.config.WorkspaceIdleTimeout); n > 0 {
				m.logger.Infof("dropped %d idle console workspaces", n)
			}
		}
	}
}

// Stop halts the sweeper and waits for it to exit.
func (m *ConsoleModule) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
