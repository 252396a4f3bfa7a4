package auth

import (
	"testing"
	"time"

	"betogether-admin/internal/auth/config"
	"betogether-admin/internal/backend"
	backendconfig "betogether-admin/internal/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBackend(t *testing.T) *backend.Client {
	t.Helper()
	client, err := backend.NewClient(&backendconfig.Config{Host: "http://backend.invalid"}, nil)
	require.NoError(t, err)
	return client
}

func TestNewAuthModule(t *testing.T) {
	cfg := &config.Config{SessionSecret: "s", SessionTTL: time.Hour}
	require.NoError(t, cfg.Validate())

	module, err := NewAuthModule(cfg, testBackend(t), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, module.GetUsecase())
	assert.NotNil(t, module.GetMiddleware())
	assert.Equal(t, "/login", module.GetMiddleware().LoginPath())

	app := fiber.New()
	module.RegisterRoutes(app)
	assert.NoError(t, module.Stop())
}

func TestNewAuthModule_Errors(t *testing.T) {
	_, err := NewAuthModule(nil, testBackend(t), nil, nil)
	assert.Error(t, err)

	cfg := &config.Config{SessionSecret: "s", SessionTTL: time.Hour, SessionStore: config.StoreRedis}
	require.NoError(t, cfg.Validate())
	_, err = NewAuthModule(cfg, testBackend(t), nil, nil)
	assert.Error(t, err)

	_, err = NewAuthModule(&config.Config{SessionSecret: "s"}, nil, nil, nil)
	assert.Error(t, err)
}
