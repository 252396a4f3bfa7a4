package repository

import (
	"context"

	"betogether-admin/internal/auth/domain/model"
)

// SessionStore persists console sessions. Get returns apperrors.ErrSessionNotFound
// for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}
