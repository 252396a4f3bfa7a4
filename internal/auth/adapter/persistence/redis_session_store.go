package persistence

import (
	"context"
	"errors"
	"time"

	"betogether-admin/internal/auth/domain/model"
	apperrors "betogether-admin/internal/shared/errors"
	"betogether-admin/internal/shared/logger"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// RedisSessionStore stores sessions as JSON values whose Redis TTL follows the
// session expiry, so several console instances can share logins.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
	logger logger.Logger
	now    func() time.Time
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, prefix string, log logger.Logger) *RedisSessionStore {
	if log == nil {
		log = logger.NewLogger()
	}
	return &RedisSessionStore{
		client: client,
		prefix: prefix,
		logger: log.WithComponent("redis_session_store"),
		now:    time.Now,
	}
}

func (r *RedisSessionStore) key(id string) string {
	return r.prefix + id
}

// Save writes the session with a TTL matching its remaining lifetime.
func (r *RedisSessionStore) Save(ctx context.Context, session *model.Session) error {
	if session == nil || session.ID == "" {
		return apperrors.NewValidationError("session id is required")
	}

	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = session.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return apperrors.NewValidationError("session already expired")
		}
	}

	payload, err := sonic.Marshal(session)
	if err != nil {
		return apperrors.NewInternalError("failed to encode session").WithCause(err)
	}

	if err := r.client.Set(ctx, r.key(session.ID), payload, ttl).Err(); err != nil {
		r.logger.WithFields(map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to store session in Redis")
		return apperrors.NewInternalError("failed to store session").WithCause(err)
	}

	r.logger.WithFields(map[string]interface{}{
		"session_id": session.ID,
		"ttl":        ttl.String(),
	}).Debug("Session stored")
	return nil
}

// Get loads a session; a missing key is apperrors.ErrSessionNotFound.
func (r *RedisSessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrSessionNotFound
		}
		r.logger.WithFields(map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		}).Error("Failed to read session from Redis")
		return nil, apperrors.NewInternalError("failed to read session").WithCause(err)
	}

	var session model.Session
	if err := sonic.Unmarshal(raw, &session); err != nil {
		r.logger.WithFields(map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		}).Warn("Discarding undecodable session")
		_ = r.Delete(ctx, id)
		return nil, apperrors.ErrSessionNotFound
	}
	if session.IsExpired(r.now()) {
		return nil, apperrors.ErrSessionNotFound
	}
	return &session, nil
}

// Delete removes the session key.
func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return apperrors.NewInternalError("failed to delete session").WithCause(err)
	}
	return nil
}
