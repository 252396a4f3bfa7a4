package persistence

import (
	"context"
	"sync"
	"time"

	"betogether-admin/internal/auth/domain/model"
	apperrors "betogether-admin/internal/shared/errors"
)

// MemorySessionStore keeps sessions in process memory. Suitable for a single
// console instance; sessions are lost on restart.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
	now      func() time.Time
}

// NewMemorySessionStore creates an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]model.Session),
		now:      time.Now,
	}
}

// Save stores a copy of session, replacing any previous one with the same id.
func (s *MemorySessionStore) Save(ctx context.Context, session *model.Session) error {
	if session == nil || session.ID == "" {
		return apperrors.NewValidationError("session id is required")
	}
	s.mu.Lock()
	s.sessions[session.ID] = *session
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the session. Expired sessions are evicted on read.
func (s *MemorySessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if session.IsExpired(s.now()) {
		_ = s.Delete(ctx, id)
		return nil, apperrors.ErrSessionNotFound
	}
	return &session, nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
