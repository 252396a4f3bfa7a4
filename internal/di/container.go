package di

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"betogether-admin/internal/auth"
	authconfig "betogether-admin/internal/auth/config"
	"betogether-admin/internal/backend"
	backendconfig "betogether-admin/internal/backend/config"
	"betogether-admin/internal/console"
	consoleconfig "betogether-admin/internal/console/config"
	"betogether-admin/internal/shared/eventbus"
	"betogether-admin/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container represents a dependency injection container with proper lifecycle management
type Container struct {
	mu        sync.RWMutex
	services  map[reflect.Type]interface{}
	factories map[reflect.Type]func() (interface{}, error)
	// Module instances
	AuthModule    *auth.AuthModule
	ConsoleModule *console.ConsoleModule
	// Shared infrastructure
	Backend  *backend.Client
	Redis    *redis.Client
	EventBus *eventbus.EventBus
	// Configuration
	AuthConfig *authconfig.Config
	// Logger
	Logger logger.Logger
}

// NewContainer creates a new DI container
func NewContainer(log logger.Logger) *Container {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Container{
		services:  make(map[reflect.Type]interface{}),
		factories: make(map[reflect.Type]func() (interface{}, error)),
		EventBus:  eventbus.NewEventBus(log),
		Logger:    log,
	}
}

// InitializeBackend creates the backend client every module calls through.
func (c *Container) InitializeBackend(cfg *backendconfig.Config, callLog *zap.Logger) error {
	client, err := backend.NewClient(cfg, callLog)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	c.mu.Lock()
	c.Backend = client
	c.mu.Unlock()
	return c.Register(client)
}

// InitializeAuth initializes the authentication module. A Redis client is opened
// when the configuration selects the Redis session store.
func (c *Container) InitializeAuth(authConfig *authconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Backend == nil {
		return fmt.Errorf("backend client must be initialized before auth module")
	}

	c.AuthConfig = authConfig
	if authConfig.SessionStore == authconfig.StoreRedis && c.Redis == nil {
		c.Redis = authconfig.NewRedisClient(&authConfig.Redis)
	}

	authModule, err := auth.NewAuthModule(authConfig, c.Backend, c.Redis, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}

	bus := c.EventBus
	authModule.GetUsecase().OnSessionEnd(func(sessionID string) {
		bus.PublishAndForget(context.Background(), eventbus.SessionEnded{SessionID: sessionID}.Event("auth"))
	})

	c.AuthModule = authModule
	return nil
}

// InitializeConsole initializes the console screens behind the auth module's guard.
func (c *Container) InitializeConsole(cfg *consoleconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.AuthModule == nil {
		return fmt.Errorf("auth module must be initialized before console module")
	}

	consoleModule, err := console.NewConsoleModule(
		cfg,
		c.Backend,
		c.AuthModule.GetMiddleware(),
		c.AuthModule.GetUsecase(),
		c.EventBus,
		c.Logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create console module: %w", err)
	}

	c.ConsoleModule = consoleModule
	return nil
}

// Register registers a service instance
func (c *Container) Register(service interface{}) error {
	if service == nil {
		return fmt.Errorf("cannot register nil service")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.services[reflect.TypeOf(service)] = service
	return nil
}

// RegisterFactory registers a factory function for a service
func (c *Container) RegisterFactory(serviceType reflect.Type, factory func() (interface{}, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.factories[serviceType] = factory
	return nil
}

// Resolve resolves a service by type
func (c *Container) Resolve(serviceType reflect.Type) (interface{}, error) {
	c.mu.RLock()

	// Check if service instance exists
	if service, exists := c.services[serviceType]; exists {
		c.mu.RUnlock()
		return service, nil
	}

	// Check if factory exists
	if factory, exists := c.factories[serviceType]; exists {
		c.mu.RUnlock()

		service, err := factory()
		if err != nil {
			return nil, fmt.Errorf("failed to create service: %w", err)
		}

		c.mu.Lock()
		c.services[serviceType] = service
		c.mu.Unlock()

		return service, nil
	}

	c.mu.RUnlock()
	return nil, fmt.Errorf("service of type %v not registered", serviceType)
}

// GetService is a generic helper for resolving services
func GetService[T any](c *Container) (T, error) {
	var zero T
	serviceType := reflect.TypeOf((*T)(nil)).Elem()

	service, err := c.Resolve(serviceType)
	if err != nil {
		return zero, err
	}

	if typedService, ok := service.(T); ok {
		return typedService, nil
	}

	return zero, fmt.Errorf("service is not of expected type %T", zero)
}

// GetAuthModule returns the auth module instance
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetConsoleModule returns the console module instance
func (c *Container) GetConsoleModule() *console.ConsoleModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ConsoleModule
}

// HealthCheck pings the session store when it lives in Redis.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis health check failed: %w", err)
		}
	}
	if c.Backend == nil {
		return fmt.Errorf("backend client not initialized")
	}
	return nil
}

// Cleanup stops modules in reverse order of initialization.
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.ConsoleModule != nil {
		c.ConsoleModule.Stop()
		c.ConsoleModule = nil
	}

	if c.AuthModule != nil {
		if err := c.AuthModule.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop auth module: %w", err))
		}
		c.AuthModule = nil
		c.Redis = nil
	} else if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
		c.Redis = nil
	}

	for _, service := range c.services {
		if cleaner, ok := service.(interface{ Cleanup(context.Context) error }); ok {
			if err := cleaner.Cleanup(ctx); err != nil {
				errs = append(errs, fmt.Errorf("failed to cleanup service: %w", err))
			}
		}
	}

	c.services = make(map[reflect.Type]interface{})
	c.factories = make(map[reflect.Type]func() (interface{}, error))

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}

// Close shuts down all services in the container with a timeout.
func (c *Container) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("cleanup errors occurred: %v", err)
		return err
	}
	c.Logger.Info("container resources closed")
	return nil
}
