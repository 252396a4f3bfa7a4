package auth

import (
	"fmt"

	"betogether-admin/internal/auth/adapter/gateway"
	authhttp "betogether-admin/internal/auth/adapter/http"
	"betogether-admin/internal/auth/adapter/persistence"
	"betogether-admin/internal/auth/adapter/security"
	"betogether-admin/internal/auth/config"
	"betogether-admin/internal/auth/domain/repository"
	"betogether-admin/internal/auth/usecase"
	"betogether-admin/internal/backend"
	"betogether-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// AuthModule represents the complete authentication module
type AuthModule struct {
	store      repository.SessionStore
	signer     repository.CookieSigner
	usecase    *usecase.AuthUsecase
	handler    *authhttp.AuthHTTPHandler
	middleware *authhttp.AuthMiddleware
	config     *config.Config
	redis      *redis.Client
}

// NewAuthModule wires the auth module. redisClient is only used when the
// configuration selects the Redis session store; pass nil otherwise.
func NewAuthModule(cfg *config.Config, client *backend.Client, redisClient *redis.Client, log logger.Logger) (*AuthModule, error) {
	if cfg == nil {
		return nil, fmt.Errorf("auth configuration is required")
	}
	if client == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	if log == nil {
		log = logger.NewLogger()
	}

	var store repository.SessionStore
	switch cfg.SessionStore {
	case config.StoreRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis session store selected but no redis client configured")
		}
		store = persistence.NewRedisSessionStore(redisClient, cfg.Redis.KeyPrefix, log)
	default:
		store = persistence.NewMemorySessionStore()
	}

	signer, err := security.NewJWTCookieSigner(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie signer: %w", err)
	}

	authUsecase := usecase.NewAuthUsecase(gateway.NewAdminGateway(client), store, signer, cfg, log)

	return &AuthModule{
		store:      store,
		signer:     signer,
		usecase:    authUsecase,
		handler:    authhttp.NewAuthHTTPHandler(authUsecase, cfg, log),
		middleware: authhttp.NewAuthMiddleware(authUsecase, cfg),
		config:     cfg,
		redis:      redisClient,
	}, nil
}

// RegisterRoutes registers the public login, logout and reset routes.
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupAuthRoutesWithMiddleware(router, am.middleware)
}

// GetUsecase returns the auth usecase for external access
func (am *AuthModule) GetUsecase() *usecase.AuthUsecase {
	return am.usecase
}

// GetMiddleware returns the auth middleware
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return am.middleware
}

// Config returns the module configuration.
func (am *AuthModule) Config() *config.Config {
	return am.config
}

// Stop releases the Redis connection pool when the module owns one.
func (am *AuthModule) Stop() error {
	if am.redis != nil {
		return am.redis.Close()
	}
	return nil
}
