package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all configuration for the auth module.
type Config struct {
	// Session cookie signing
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionIssuer string        `env:"SESSION_ISSUER" envDefault:"betogether-admin"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	SessionStore  string        `env:"SESSION_STORE" envDefault:"memory"`

	// Cookie Configuration
	CookieName     string `env:"COOKIE_NAME" envDefault:"bt_admin_session"`
	CookiePath     string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string `env:"COOKIE_SAME_SITE" envDefault:"Lax"`

	// Routing
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`
	HomePath  string `env:"HOME_PATH" envDefault:"/home"`

	// Login throttling per client address
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`

	// LoginTimeout bounds the backend call shared by overlapping submissions.
	LoginTimeout time.Duration `env:"LOGIN_TIMEOUT" envDefault:"30s"`

	Redis RedisConfig
}

// RedisConfig configures the Redis session store.
type RedisConfig struct {
	Host            string `env:"REDIS_HOST" envDefault:"localhost"`
	Port            string `env:"REDIS_PORT" envDefault:"6379"`
	Password        string `env:"REDIS_PASSWORD" envDefault:""`
	Database        int    `env:"REDIS_DB" envDefault:"0"`
	MaxRetries      int    `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	PoolSize        int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns    int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	EnableTLS       bool   `env:"REDIS_TLS" envDefault:"false"`
	ConnMaxIdleTime string `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"30m"`
	ConnMaxLifetime string `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"1h"`
	KeyPrefix       string `env:"REDIS_SESSION_PREFIX" envDefault:"betogether:admin:session:"`
}

// GetAddr returns host:port.
func (r RedisConfig) GetAddr() string {
	return r.Host + ":" + r.Port
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load auth configuration from environment: " + err.Error() +
			". Please ensure SESSION_SECRET is set.")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes the configuration and rejects values the module cannot run with.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("session_secret is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	if c.SessionIssuer == "" {
		c.SessionIssuer = "betogether-admin"
	}
	if c.CookieName == "" {
		c.CookieName = "bt_admin_session"
	}
	if c.LoginPath == "" {
		c.LoginPath = "/login"
	}
	if c.HomePath == "" {
		c.HomePath = "/home"
	}

	c.SessionStore = strings.ToLower(strings.TrimSpace(c.SessionStore))
	if c.SessionStore == "" {
		c.SessionStore = StoreMemory
	}
	if c.SessionStore != StoreMemory && c.SessionStore != StoreRedis {
		return fmt.Errorf("session_store must be %q or %q, got %q", StoreMemory, StoreRedis, c.SessionStore)
	}

	switch strings.ToLower(c.CookieSameSite) {
	case "lax", "":
		c.CookieSameSite = "Lax"
	case "strict":
		c.CookieSameSite = "Strict"
	case "none":
		c.CookieSameSite = "None"
	default:
		return errors.New("cookie_same_site must be one of 'Lax', 'Strict', or 'None'")
	}

	if c.LoginRateLimit <= 0 {
		c.LoginRateLimit = 10
	}
	if c.LoginRateWindow <= 0 {
		c.LoginRateWindow = time.Minute
	}
	if c.LoginTimeout <= 0 {
		c.LoginTimeout = 30 * time.Second
	}
	return nil
}
