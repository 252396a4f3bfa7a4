package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds configuration for the console module.
type Config struct {
	// WorkspaceIdleTimeout is how long an unused session workspace is kept.
	WorkspaceIdleTimeout time.Duration `env:"WORKSPACE_IDLE_TIMEOUT" envDefault:"12h"`
	// WorkspaceSweepInterval is how often idle workspaces are looked for.
	WorkspaceSweepInterval time.Duration `env:"WORKSPACE_SWEEP_INTERVAL" envDefault:"10m"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load console configuration from environment: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects non-positive durations.
func (c *Config) Validate() error {
	if c.WorkspaceIdleTimeout <= 0 {
		return errors.New("workspace idle timeout must be positive")
	}
	if c.WorkspaceSweepInterval <= 0 {
		return errors.New("workspace sweep interval must be positive")
	}
	return nil
}
