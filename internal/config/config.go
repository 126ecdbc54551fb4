package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port                 string        `env:"PORT" envDefault:"8080"`
	SessionSecret        string        `env:"SESSION_SECRET" envDefault:"dev-secret-change-in-production"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
	SecureCookies        bool          `env:"SECURE_COOKIES" envDefault:"false"`
	EnforceCardExpiry    bool          `env:"TACO_ENFORCE_CARD_EXPIRY" envDefault:"false"`
	CORSAllowedOrigins   []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// Shared secret for kitchen displays; empty disables /ws/orders.
	FeedToken string `env:"FEED_TOKEN"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET must not be empty")
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("SESSION_TTL must be positive")
	}
	if cfg.SessionSweepInterval <= 0 {
		return nil, errors.New("SESSION_SWEEP_INTERVAL must be positive")
	}
	return cfg, nil
}
