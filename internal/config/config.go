// Package config handles resolving configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
)

// Config contains the runtime configuration for the fittrack server and CLI.
// Values come from the environment; unset values fall back to the tagged
// defaults. The database file defaults to the XDG data home.
type Config struct {
	LogLevel   slog.Level    `env:"FITTRACK_LOG_LEVEL" envDefault:"INFO"`
	Address    string        `env:"FITTRACK_ADDRESS" envDefault:"localhost:8000"`
	DBFilepath string        `env:"FITTRACK_DB"`
	SessionTTL time.Duration `env:"FITTRACK_SESSION_TTL" envDefault:"1h"`
	DevMode    bool          `env:"FITTRACK_DEV_MODE" envDefault:"false"`
}

// Default returns a config with all default values populated.
func Default() *Config {
	return &Config{
		LogLevel:   slog.LevelInfo,
		Address:    "localhost:8000",
		DBFilepath: defaultDBFilepath(),
		SessionTTL: time.Hour,
	}
}

// Load resolves the configuration from the environment, merges it with
// defaults, and validates it for completeness.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	if cfg.DBFilepath == "" {
		cfg.DBFilepath = defaultDBFilepath()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid field, if any.
func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("address must not be empty")
	}
	if c.DBFilepath == "" {
		return errors.New("db filepath must not be empty")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	return nil
}

func defaultDBFilepath() string {
	return filepath.Join(xdg.DataHome, "fittrack", "db.sqlite")
}
