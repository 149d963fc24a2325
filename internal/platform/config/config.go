package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const maxCatalogSize = 9999 // Supplier ids are four digits

type Config struct {
	AppEnv     string `env:"APP_ENV" default:"development"`
	Host       string `env:"HOST" default:"0.0.0.0"`
	Port       string `env:"PORT" default:"8080"`
	LogLevel   string `env:"LOG_LEVEL" default:"info"`
	LogFormat  string `env:"LOG_FORMAT" default:"text"`
	CORSOrigin string `env:"CORS_ORIGIN" default:"*"`

	CatalogSize    int           `env:"CATALOG_SIZE" default:"150"`
	TickInterval   time.Duration `env:"TICK_INTERVAL" default:"10s"`
	MaxSubscribers int           `env:"MAX_SUBSCRIBERS" default:"1000"`

	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" default:"20"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" default:"40"`
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if !slices.Contains([]string{"development", "staging", "production"}, cfg.AppEnv) {
		return fmt.Errorf("APP_ENV must be one of development, staging, production, got %q", cfg.AppEnv)
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.Port)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.CORSOrigin == "" {
		return errors.New("CORS_ORIGIN is required (use * to allow any origin)")
	}

	if cfg.CatalogSize < 0 || cfg.CatalogSize > maxCatalogSize {
		return fmt.Errorf("CATALOG_SIZE must be between 0 and %d, got %d", maxCatalogSize, cfg.CatalogSize)
	}
	if cfg.TickInterval < time.Second {
		return fmt.Errorf("TICK_INTERVAL must be at least 1s, got %s", cfg.TickInterval)
	}
	if cfg.MaxSubscribers < 1 {
		return fmt.Errorf("MAX_SUBSCRIBERS must be positive, got %d", cfg.MaxSubscribers)
	}

	if cfg.RateLimitPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND must be positive, got %g", cfg.RateLimitPerSecond)
	}
	if cfg.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", cfg.RateLimitBurst)
	}

	return nil
}
