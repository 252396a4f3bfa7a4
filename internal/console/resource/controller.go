package resource

import (
	"context"
	"sort"
	"sync"

	"betogether-admin/internal/backend"
	"betogether-admin/internal/console/domain/model"
	apperrors "betogether-admin/internal/shared/errors"
	"betogether-admin/internal/shared/pagination"
)

// Mutation operation names.
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpGenerate = "generate"
)

// Mutation describes a successful change, reported to observers.
type Mutation struct {
	Resource string
	Op       string
	ID       string
	Count    int
}

// Pending is the mutation currently outstanding on a list.
type Pending struct {
	Op string `json:"op"`
	ID string `json:"id,omitempty"`
}

// View is the render state of a list screen.
type View[T any] struct {
	Items        []T                 `json:"items"`
	Page         int                 `json:"page"`
	PageSize     int                 `json:"pageSize"`
	TotalPages   int                 `json:"totalPages"`
	TotalItems   int                 `json:"totalItems"`
	Loading      bool                `json:"loading"`
	Loaded       bool                `json:"loaded"`
	Pending      *Pending            `json:"pending,omitempty"`
	Notification *model.Notification `json:"notification,omitempty"`
}

// ListController holds the local state of one list screen and runs its endpoints.
// The mutex guards state only; it is never held across a backend call.
type ListController[T any] struct {
	res      Resource[T]
	observer func(context.Context, Mutation)

	mu         sync.Mutex
	items      []T
	cursor     pagination.Cursor
	totalPages int
	loaded     bool
	inflight   int
	pending    *Pending
	notice     *model.Notification
}

// NewListController creates a controller positioned on the first page.
func NewListController[T any](res Resource[T]) *ListController[T] {
	return &ListController[T]{
		res:    res,
		cursor: pagination.Cursor{Page: 1, PageSize: pagination.DefaultPageSize},
	}
}

// Observe registers fn to be told about every successful mutation.
func (c *ListController[T]) Observe(fn func(context.Context, Mutation)) {
	c.mu.Lock()
	c.observer = fn
	c.mu.Unlock()
}

// Name returns the resource name.
func (c *ListController[T]) Name() string {
	return c.res.Name
}

// Load fetches the current page and replaces the local list. When a later load
// fails the previous list stays visible.
func (c *ListController[T]) Load(ctx context.Context, api *backend.Caller) (View[T], error) {
	err := c.load(ctx, api, false)
	return c.View(), err
}

func (c *ListController[T]) load(ctx context.Context, api *backend.Caller, keepNotice bool) error {
	if c.res.Endpoints.List == nil {
		return apperrors.ErrUnsupported
	}

	c.mu.Lock()
	c.inflight++
	cur := c.cursor
	c.mu.Unlock()

	page, err := c.res.Endpoints.List(ctx, api, cur)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if err != nil {
		if !c.loaded {
			c.items = nil
			c.totalPages = 0
		}
		if !keepNotice {
			c.notice = model.Failure(apperrors.UserMessage(err, c.res.Messages.LoadFailed))
		}
		return err
	}

	items := make([]T, len(page.Items))
	copy(items, page.Items)
	if c.res.Less != nil {
		sort.SliceStable(items, func(i, j int) bool { return c.res.Less(items[i], items[j]) })
	}
	c.items = items
	c.loaded = true
	if c.res.Policy.Pagination == Server {
		c.totalPages = page.TotalPages
		if c.totalPages < 1 {
			c.totalPages = 1
		}
	}
	if !keepNotice {
		c.notice = nil
		if c.res.Messages.Loaded != "" {
			c.notice = model.Success(c.res.Messages.Loaded)
		}
	}
	return nil
}

// SetPage moves the cursor. Local lists re-slice what they hold; server lists fetch
// the requested page.
func (c *ListController[T]) SetPage(ctx context.Context, api *backend.Caller, cur pagination.Cursor) (View[T], error) {
	cur = cur.Normalize()
	c.mu.Lock()
	c.cursor = cur
	loaded := c.loaded
	c.mu.Unlock()

	if c.res.Policy.Pagination == Server || !loaded {
		return c.Load(ctx, api)
	}
	return c.View(), nil
}

// Reload moves the cursor and always fetches.
func (c *ListController[T]) Reload(ctx context.Context, api *backend.Caller, cur pagination.Cursor) (View[T], error) {
	c.mu.Lock()
	c.cursor = cur.Normalize()
	c.mu.Unlock()
	return c.Load(ctx, api)
}

// View returns a snapshot of the screen state. The item window never holds more
// than one page of records.
func (c *ListController[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View[T]{
		PageSize:     c.cursor.PageSize,
		Loading:      c.inflight > 0,
		Loaded:       c.loaded,
		Notification: c.notice,
	}
	if c.pending != nil {
		p := *c.pending
		v.Pending = &p
	}

	if c.res.Policy.Pagination == Server {
		v.TotalPages = c.totalPages
		v.Page = c.cursor.Page
		v.Items = pagination.Slice(c.items, 1, c.cursor.PageSize)
		v.TotalItems = len(v.Items)
		return v
	}

	v.TotalItems = len(c.items)
	v.TotalPages = pagination.TotalPages(len(c.items), c.cursor.PageSize)
	v.Page = pagination.Clamp(c.cursor.Page, v.TotalPages)
	v.Items = pagination.Slice(c.items, v.Page, c.cursor.PageSize)
	return v
}

// Notify replaces the current notification.
func (c *ListController[T]) Notify(n *model.Notification) {
	c.mu.Lock()
	c.notice = n
	c.mu.Unlock()
}

// Reset forgets everything the controller holds.
func (c *ListController[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.totalPages = 0
	c.loaded = false
	c.pending = nil
	c.notice = nil
	c.cursor = pagination.Cursor{Page: 1, PageSize: pagination.DefaultPageSize}
}

// Create sends p and, on success, prepends the new record or re-fetches.
func (c *ListController[T]) Create(ctx context.Context, api *backend.Caller, p Payload) (T, error) {
	var zero T
	if c.res.Endpoints.Create == nil {
		return zero, apperrors.ErrUnsupported
	}
	if err := c.validate(p); err != nil {
		return zero, err
	}
	if err := c.begin(OpCreate, ""); err != nil {
		return zero, err
	}

	item, err := c.res.Endpoints.Create(ctx, api, p)
	if err != nil {
		c.fail(err, c.res.Messages.SaveFailed)
		return zero, err
	}

	c.mu.Lock()
	if c.res.Policy.AfterCreate == Patch {
		c.items = append([]T{item}, c.items...)
	}
	c.succeed(c.res.Messages.Created)
	c.mu.Unlock()

	c.after(ctx, api, c.res.Policy.AfterCreate, Mutation{Resource: c.res.Name, Op: OpCreate, ID: c.id(item), Count: 1})
	return item, nil
}

// Update sends p for the record id and replaces the local copy or re-fetches.
func (c *ListController[T]) Update(ctx context.Context, api *backend.Caller, id string, p Payload) (T, error) {
	var zero T
	if c.res.Endpoints.Update == nil {
		return zero, apperrors.ErrUnsupported
	}
	if err := c.validate(p); err != nil {
		return zero, err
	}
	if err := c.begin(OpUpdate, id); err != nil {
		return zero, err
	}

	item, err := c.res.Endpoints.Update(ctx, api, id, p)
	if err != nil {
		c.fail(err, c.res.Messages.SaveFailed)
		return zero, err
	}

	c.mu.Lock()
	if c.res.Policy.AfterUpdate == Patch {
		for i := range c.items {
			if c.res.ID(c.items[i]) == id {
				c.items[i] = item
			}
		}
	}
	c.succeed(c.res.Messages.Updated)
	c.mu.Unlock()

	c.after(ctx, api, c.res.Policy.AfterUpdate, Mutation{Resource: c.res.Name, Op: OpUpdate, ID: id, Count: 1})
	return item, nil
}

// Delete removes the record id. Unconfirmed requests are refused before any call.
func (c *ListController[T]) Delete(ctx context.Context, api *backend.Caller, id string, confirmed bool) error {
	if c.res.Endpoints.Delete == nil {
		return apperrors.ErrUnsupported
	}
	if !confirmed {
		return apperrors.NewConfirmationError(confirmText(c.res.Messages.ConfirmDelete, "Delete this item?"))
	}
	if err := c.begin(OpDelete, id); err != nil {
		return err
	}

	if err := c.res.Endpoints.Delete(ctx, api, id); err != nil {
		c.fail(err, c.res.Messages.DeleteFailed)
		return err
	}

	c.mu.Lock()
	kept := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if c.res.ID(item) != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.succeed(c.res.Messages.Deleted)
	c.mu.Unlock()

	c.after(ctx, api, c.res.Policy.AfterDelete, Mutation{Resource: c.res.Name, Op: OpDelete, ID: id, Count: 1})
	return nil
}

// Generate asks the backend to create records in bulk and prepends all of them.
func (c *ListController[T]) Generate(ctx context.Context, api *backend.Caller, p Payload) ([]T, error) {
	if c.res.Endpoints.Generate == nil {
		return nil, apperrors.ErrUnsupported
	}
	if err := c.validate(p); err != nil {
		return nil, err
	}
	if err := c.begin(OpGenerate, ""); err != nil {
		return nil, err
	}

	created, err := c.res.Endpoints.Generate(ctx, api, p)
	if err != nil {
		c.fail(err, c.res.Messages.GenerateFailed)
		return nil, err
	}

	c.mu.Lock()
	items := make([]T, 0, len(created)+len(c.items))
	items = append(items, created...)
	c.items = append(items, c.items...)
	msg := ""
	if c.res.Messages.Generated != nil {
		msg = c.res.Messages.Generated(p, len(created))
	}
	c.succeed(msg)
	c.mu.Unlock()

	c.after(ctx, api, Patch, Mutation{Resource: c.res.Name, Op: OpGenerate, Count: len(created)})
	return created, nil
}

// Perform runs the named item action. Like Delete it requires confirmation.
func (c *ListController[T]) Perform(ctx context.Context, api *backend.Caller, action, id string, confirmed bool) error {
	fn, ok := c.res.Endpoints.Actions[action]
	if !ok || fn == nil {
		return apperrors.ErrUnsupported
	}
	msgs := c.res.Messages.Actions[action]
	if !confirmed {
		return apperrors.NewConfirmationError(confirmText(msgs.Confirm, "Are you sure?"))
	}
	if err := c.begin(action, id); err != nil {
		return err
	}

	if err := fn(ctx, api, id); err != nil {
		c.fail(err, msgs.Failed)
		return err
	}

	c.mu.Lock()
	c.succeed(msgs.Done)
	c.mu.Unlock()

	c.after(ctx, api, c.res.Policy.AfterAction, Mutation{Resource: c.res.Name, Op: action, ID: id, Count: 1})
	return nil
}

func (c *ListController[T]) validate(p Payload) error {
	if p == nil {
		return apperrors.NewValidationError("Please fill in all fields")
	}
	if err := p.Validate(); err != nil {
		c.Notify(model.Failure(apperrors.UserMessage(err, err.Error())))
		return err
	}
	return nil
}

func (c *ListController[T]) begin(op, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return apperrors.NewConflictError(apperrors.ErrBusy.Error()).WithCause(apperrors.ErrBusy)
	}
	c.pending = &Pending{Op: op, ID: id}
	return nil
}

func (c *ListController[T]) fail(err error, fallback string) {
	c.mu.Lock()
	c.pending = nil
	c.notice = model.Failure(apperrors.UserMessage(err, fallback))
	c.mu.Unlock()
}

// succeed must be called with mu held.
func (c *ListController[T]) succeed(msg string) {
	c.pending = nil
	c.notice = nil
	if msg != "" {
		c.notice = model.Success(msg)
	}
}

func (c *ListController[T]) after(ctx context.Context, api *backend.Caller, policy AfterMutation, m Mutation) {
	c.mu.Lock()
	observer := c.observer
	c.mu.Unlock()
	if observer != nil {
		observer(ctx, m)
	}
	if policy == Refetch {
		// The mutation already succeeded; a failed reload leaves the patched list.
		_ = c.load(ctx, api, true)
	}
}

func (c *ListController[T]) id(item T) string {
	if c.res.ID == nil {
		return ""
	}
	return c.res.ID(item)
}

func confirmText(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
