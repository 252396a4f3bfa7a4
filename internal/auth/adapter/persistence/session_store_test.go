package persistence

import (
	"context"
	"testing"
	"time"

	"betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/auth/domain/repository"
	apperrors "betogether-admin/internal/shared/errors"
	"betogether-admin/internal/shared/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ repository.SessionStore = (*MemorySessionStore)(nil)
	_ repository.SessionStore = (*RedisSessionStore)(nil)
)

func newSession(ttl time.Duration) *model.Session {
	now := time.Now()
	return &model.Session{
		ID:        uuid.NewString(),
		Token:     "abc",
		Admin:     model.AdminProfile{ID: "a1", Name: "Admin One", Email: "admin01@gmail.com"},
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// exerciseStore runs the behaviour every SessionStore must share.
func exerciseStore(t *testing.T, store repository.SessionStore) {
	ctx := context.Background()

	session := newSession(time.Hour)
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Token)
	assert.Equal(t, "Admin One", got.Admin.Name)

	got.Token = "mutated"
	again, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc", again.Token, "stores hand out copies")

	require.NoError(t, store.Delete(ctx, session.ID))
	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "never-existed"))

	_, err = store.Get(ctx, "never-existed")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	assert.Error(t, store.Save(ctx, &model.Session{}))
}

func TestMemorySessionStore(t *testing.T) {
	exerciseStore(t, NewMemorySessionStore())
}

func TestMemorySessionStore_EvictsExpired(t *testing.T) {
	store := NewMemorySessionStore()
	session := newSession(time.Hour)
	require.NoError(t, store.Save(context.Background(), session))

	store.now = func() time.Time { return session.ExpiresAt.Add(time.Second) }

	_, err := store.Get(context.Background(), session.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func createTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         "localhost:6379",
		DB:           15,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func TestRedisSessionStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := createTestRedisClient()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis not available for testing:", err)
	}
	defer client.Close()

	prefix := "test:session:" + uuid.NewString() + ":"
	store := NewRedisSessionStore(client, prefix, logger.NewLogger())

	exerciseStore(t, store)

	t.Run("ttl follows expiry", func(t *testing.T) {
		session := newSession(time.Minute)
		require.NoError(t, store.Save(ctx, session))
		defer store.Delete(ctx, session.ID)

		ttl, err := client.TTL(ctx, prefix+session.ID).Result()
		require.NoError(t, err)
		assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 5)
	})

	t.Run("already expired is refused", func(t *testing.T) {
		err := store.Save(ctx, newSession(-time.Minute))
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("undecodable value", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, prefix+"broken", "{", time.Minute).Err())
		_, err := store.Get(ctx, "broken")
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
		n, err := client.Exists(ctx, prefix+"broken").Result()
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
