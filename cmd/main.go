package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	authconfig "betogether-admin/internal/auth/config"
	backendconfig "betogether-admin/internal/backend/config"
	consoleconfig "betogether-admin/internal/console/config"
	"betogether-admin/internal/di"
	"betogether-admin/internal/shared/logger"

	"github.com/bytedance/sonic"
	"github.com/caarlos0/env/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" envDefault:"localhost"`
	Port         string        `env:"SERVER_PORT" envDefault:"3000"`
	AllowOrigins string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`

	// ProxyHeader names the header carrying the client address behind a reverse
	// proxy. It is honoured only for requests from TrustedProxies.
	ProxyHeader    string   `env:"PROXY_HEADER"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// settings is every configuration section the console reads at start-up.
type settings struct {
	Server  *ServerConfig
	Log     logger.Config
	Backend *backendconfig.Config
	Auth    *authconfig.Config
	Console *consoleconfig.Config
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "betogether-admin",
		Short:         "BeTogether admin console",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Could not load %s file: %v\n", envFile, err)
			}
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file to load environment variables from")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the console HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(serveCmd)
	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			redacted := *s.Auth
			redacted.SessionSecret = "********"
			redacted.Redis.Password = ""
			out, err := sonic.ConfigStd.MarshalIndent(map[string]interface{}{
				"server":  s.Server,
				"log":     s.Log,
				"backend": s.Backend,
				"auth":    redacted,
				"console": s.Console,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	})
	// serve is the default action
	root.RunE = serveCmd.RunE
	return root
}

func loadSettings() (*settings, error) {
	s := &settings{Server: &ServerConfig{}}
	if err := env.Parse(s.Server); err != nil {
		return nil, fmt.Errorf("failed to load server configuration: %w", err)
	}
	if err := env.Parse(&s.Log); err != nil {
		return nil, fmt.Errorf("failed to load log configuration: %w", err)
	}
	var err error
	if s.Backend, err = backendconfig.LoadConfig(); err != nil {
		return nil, err
	}
	if s.Auth, err = authconfig.LoadConfig(); err != nil {
		return nil, err
	}
	if s.Console, err = consoleconfig.LoadConfig(); err != nil {
		return nil, err
	}
	return s, nil
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := loadSettings()
	if err != nil {
		return err
	}

	appLogger := logger.NewLoggerWithConfig(s.Log, os.Stdout)
	appLogger.Info("Application configuration loaded successfully")

	callLogger, err := logger.NewZapLogger(s.Log)
	if err != nil {
		return fmt.Errorf("failed to create backend call logger: %w", err)
	}
	defer func() { _ = callLogger.Sync() }()

	container := di.NewContainer(appLogger)
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	if err := container.InitializeBackend(s.Backend, callLogger); err != nil {
		return err
	}
	if err := container.InitializeAuth(s.Auth); err != nil {
		return err
	}
	appLogger.Infof("Auth module initialized (session store: %s)", s.Auth.SessionStore)
	if err := container.InitializeConsole(s.Console); err != nil {
		return err
	}
	appLogger.Info("Console module initialized successfully")

	app := fiber.New(newFiberConfig(s.Server, func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			appLogger.WithContext(c.UserContext()).Errorf("HTTP Error: %v", err)
		}
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}))

	authModule := container.GetAuthModule()
	consoleModule := container.GetConsoleModule()
	middleware := authModule.GetMiddleware()

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestContext())
	app.Use(middleware.CORS(s.Server.AllowOrigins))
	app.Use(middleware.SecurityHeaders())

	app.Get("/health", func(c *fiber.Ctx) error {
		healthCtx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		if err := container.HealthCheck(healthCtx); err != nil {
			appLogger.Errorf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "UNHEALTHY",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":    "HEALTHY",
			"timestamp": time.Now().UTC(),
			"modules": fiber.Map{
				"auth":    "initialized",
				"console": "initialized",
			},
		})
	})

	authModule.RegisterRoutes(app)
	consoleModule.RegisterRoutes(app)
	appLogger.Info("Auth and console routes registered")

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	consoleModule.Start(runCtx)

	serverAddr := fmt.Sprintf("%s:%s", s.Server.Host, s.Server.Port)
	appLogger.Infof("Starting HTTP server on %s", serverAddr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverShutdown:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)
	case <-ctx.Done():
		appLogger.Info("Context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Errorf("Server forced to shutdown: %v", err)
	}
	appLogger.Info("HTTP server stopped")
	return nil
}

func newFiberConfig(cfg *ServerConfig, onError fiber.ErrorHandler) fiber.Config {
	fc := fiber.Config{
		AppName:      "BeTogether Admin",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: onError,
	}
	if cfg.ProxyHeader != "" {
		fc.ProxyHeader = cfg.ProxyHeader
		fc.EnableTrustedProxyCheck = true
		fc.TrustedProxies = cfg.TrustedProxies
	}
	return fc
}
