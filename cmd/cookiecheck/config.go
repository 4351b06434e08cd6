package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/cookiecheck/pkg/cookie"
	"github.com/dmitrymomot/cookiecheck/pkg/logger"
	"github.com/dmitrymomot/cookiecheck/pkg/redis"
)

// Results backends.
const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

// ErrUnknownBackend is returned for a RESULTS_BACKEND other than memory or redis.
var ErrUnknownBackend = errors.New("config: unknown results backend")

// Config is the service configuration, read from the environment.
type Config struct {
	Log     logger.Config
	Sentry  logger.SentryConfig
	Redis   redis.Config
	Cookie  CookieConfig
	Results ResultsConfig

	HTTPAddr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	TargetOrigin     string        `env:"POSTMESSAGE_TARGET_ORIGIN" envDefault:"*"`
	CORSAllowOrigins []string      `env:"CORS_ALLOW_ORIGINS" envSeparator:","`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// CookieConfig controls how the sentinel cookie is written.
type CookieConfig struct {
	Domain      string            `env:"COOKIE_DOMAIN"`
	ExpiryMode  cookie.ExpiryMode `env:"COOKIE_EXPIRY_MODE" envDefault:"days"`
	MaxAgeDays  int               `env:"COOKIE_MAX_AGE_DAYS" envDefault:"1"`
	Secure      bool              `env:"COOKIE_SECURE" envDefault:"true"`
	Partitioned bool              `env:"COOKIE_PARTITIONED"`
}

// ResultsConfig selects and sizes the results store.
type ResultsConfig struct {
	Backend    string        `env:"RESULTS_BACKEND" envDefault:"memory"`
	TTL        time.Duration `env:"RESULTS_TTL" envDefault:"1h"`
	MaxEntries int           `env:"RESULTS_MAX_ENTRIES" envDefault:"10000"`
}

// loadConfig reads Config from the environment and validates it.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Results.Backend = strings.ToLower(strings.TrimSpace(c.Results.Backend))
	switch c.Results.Backend {
	case backendMemory:
	case backendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("config: REDIS_URL is required for the redis backend: %w", redis.ErrEmptyConnectionURL)
		}
	default:
		return errors.Join(ErrUnknownBackend, errors.New(c.Results.Backend))
	}
	return nil
}

// cookieOptions turns the cookie settings into manager options.
// Cross-site delivery needs SameSite=None, which browsers only accept on
// Secure cookies; with COOKIE_SECURE=false the sentinel falls back to Lax
// and only same-site checks work, which suits plain-HTTP local runs.
func (c CookieConfig) cookieOptions() []cookie.Option {
	opts := []cookie.Option{
		cookie.WithDomain(c.Domain),
		cookie.WithPartitioned(c.Partitioned),
	}
	if c.Secure {
		return append(opts, cookie.CrossSite()...)
	}
	return append(opts, cookie.WithSameSite(http.SameSiteLaxMode), cookie.WithSecure(false))
}
