// Package resource holds the list controller shared by every management screen. A
// Resource binds an entity type to its backend endpoints and to the policies the
// screen follows after each mutation.
package resource

import (
	"context"

	"betogether-admin/internal/backend"
	"betogether-admin/internal/shared/pagination"
)

// Pagination selects where pages are cut.
type Pagination int

const (
	// Local lists fetch every record once and page in memory.
	Local Pagination = iota
	// Server lists fetch one page at a time and trust the backend's page count.
	Server
)

// AfterMutation decides how local state follows a successful mutation.
type AfterMutation int

const (
	// Patch applies the change to the local list only (prepend, replace or remove).
	Patch AfterMutation = iota
	// Refetch reloads the current page from the backend. Deletes still remove the
	// item locally first.
	Refetch
)

// Payload is a create, update or generate form. Validate runs before any network call.
type Payload interface {
	Validate() error
}

// Page is one list response.
type Page[T any] struct {
	Items []T
	// TotalPages is only read for server paginated resources.
	TotalPages int
}

// Endpoints are the backend calls of a resource. Nil endpoints are unsupported.
type Endpoints[T any] struct {
	List     func(ctx context.Context, api *backend.Caller, cur pagination.Cursor) (Page[T], error)
	Create   func(ctx context.Context, api *backend.Caller, p Payload) (T, error)
	Update   func(ctx context.Context, api *backend.Caller, id string, p Payload) (T, error)
	Delete   func(ctx context.Context, api *backend.Caller, id string) error
	Generate func(ctx context.Context, api *backend.Caller, p Payload) ([]T, error)
	// Actions are confirmed item-level operations such as approve or reject.
	Actions map[string]func(ctx context.Context, api *backend.Caller, id string) error
}

// Policy is the per-resource behavior after each kind of mutation.
type Policy struct {
	Pagination  Pagination
	AfterCreate AfterMutation
	AfterUpdate AfterMutation
	AfterDelete AfterMutation
	AfterAction AfterMutation
}

// Messages are the notifications a screen shows.
type Messages struct {
	Loaded         string
	LoadFailed     string
	Created        string
	Updated        string
	SaveFailed     string
	Deleted        string
	DeleteFailed   string
	ConfirmDelete  string
	Generated      func(requested Payload, created int) string
	GenerateFailed string
	Actions        map[string]ActionMessages
}

// ActionMessages are the notifications of one named action.
type ActionMessages struct {
	Confirm string
	Done    string
	Failed  string
}

// Resource describes one managed entity type.
type Resource[T any] struct {
	Name      string
	ID        func(T) string
	Less      func(a, b T) bool
	Endpoints Endpoints[T]
	Policy    Policy
	Messages  Messages
}

// As converts a payload to the concrete form an endpoint expects.
func As[P Payload](p Payload) (P, bool) {
	v, ok := p.(P)
	return v, ok
}
