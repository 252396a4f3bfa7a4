package usecase

import (
	"sync"
	"time"

	"betogether-admin/internal/console/domain/model"
	"betogether-admin/internal/console/resource"
)

// Workspace is the list state one console session works on: one controller per
// management screen.
type Workspace struct {
	Users          *resource.ListController[model.User]
	Categories     *resource.ListController[model.Category]
	FakeUsers      *resource.ListController[model.FakeUser]
	DeleteRequests *resource.ListController[model.DeleteRequest]
	Plans          *resource.ListController[model.PromotionPlan]

	lastUsed time.Time
}

// WorkspaceRegistry hands out one workspace per session id. Sessions never share
// controllers, so no lock is held across sessions beyond the map itself.
type WorkspaceRegistry struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	build      func(sessionID string) *Workspace
	now        func() time.Time
}

// NewWorkspaceRegistry creates a registry that builds workspaces with build.
func NewWorkspaceRegistry(build func(sessionID string) *Workspace) *WorkspaceRegistry {
	return &WorkspaceRegistry{
		workspaces: make(map[string]*Workspace),
		build:      build,
		now:        time.Now,
	}
}

// For returns the workspace of sessionID, creating it on first use.
func (r *WorkspaceRegistry) For(sessionID string) *Workspace {
	now := r.now()

	r.mu.RLock()
	ws, ok := r.workspaces[sessionID]
	r.mu.RUnlock()
	if ok {
		r.mu.Lock()
		ws.lastUsed = now
		r.mu.Unlock()
		return ws
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Double-check after acquiring the write lock
	if ws, ok := r.workspaces[sessionID]; ok {
		ws.lastUsed = now
		return ws
	}
	ws = r.build(sessionID)
	ws.lastUsed = now
	r.workspaces[sessionID] = ws
	return ws
}

// Drop forgets the workspace of sessionID.
func (r *WorkspaceRegistry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.workspaces, sessionID)
	r.mu.Unlock()
}

// Sweep drops workspaces idle for longer than maxIdle and returns how many went.
func (r *WorkspaceRegistry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, ws := range r.workspaces {
		if ws.lastUsed.Before(cutoff) {
			delete(r.workspaces, id)
			n++
		}
	}
	return n
}

// Len returns the number of live workspaces.
func (r *WorkspaceRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}
