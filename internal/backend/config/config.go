package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Base selects which API prefix a call is made against.
type Base int

const (
	// BaseAdmin is the admin API (`/api/admin`), used by almost every screen.
	BaseAdmin Base = iota
	// BaseService hosts the service deletion workflow (`/api/service`).
	BaseService
	// BaseAuth hosts the public password reset (`/api/auth`).
	BaseAuth
)

// Config holds the location of the BeTogether REST backend.
type Config struct {
	Host            string        `env:"API_HOST,required"`
	AdminBasePath   string        `env:"API_BASE_PATH" envDefault:"/api/admin"`
	ServiceBasePath string        `env:"SERVICE_BASE_PATH" envDefault:"/api/service"`
	AuthBasePath    string        `env:"AUTH_BASE_PATH" envDefault:"/api/auth"`
	Timeout         time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
	MaxResponseSize int           `env:"API_MAX_RESPONSE_BYTES" envDefault:"10485760"`
	UserAgent       string        `env:"API_USER_AGENT" envDefault:"betogether-admin"`
}

// LoadConfig loads configuration from environment variables. A missing API_HOST is
// an error: the console cannot start without a backend.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load backend configuration from environment: " + err.Error() +
			". Please ensure API_HOST is set.")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the host is an absolute http(s) URL and normalizes base paths.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return errors.New("api_host is required")
	}
	u, err := url.Parse(c.Host)
	if err != nil {
		return fmt.Errorf("api_host is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_host must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("api_host must include a host name")
	}
	c.Host = strings.TrimRight(c.Host, "/")
	c.AdminBasePath = normalizePath(c.AdminBasePath, "/api/admin")
	c.ServiceBasePath = normalizePath(c.ServiceBasePath, "/api/service")
	c.AuthBasePath = normalizePath(c.AuthBasePath, "/api/auth")
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxResponseSize <= 0 {
		c.MaxResponseSize = 10 << 20
	}
	return nil
}

// URL joins the host, the base path selected by base and path.
func (c *Config) URL(base Base, path string) string {
	var prefix string
	switch base {
	case BaseService:
		prefix = c.ServiceBasePath
	case BaseAuth:
		prefix = c.AuthBasePath
	default:
		prefix = c.AdminBasePath
	}
	return c.Host + prefix + "/" + strings.TrimLeft(path, "/")
}

func normalizePath(p, fallback string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		p = fallback
	}
	return "/" + strings.Trim(p, "/")
}
