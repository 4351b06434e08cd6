package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli"

	"github.com/dmitrymomot/cookiecheck"
	"github.com/dmitrymomot/cookiecheck/pkg/health"
	"github.com/dmitrymomot/cookiecheck/pkg/logger"
	"github.com/dmitrymomot/cookiecheck/pkg/redis"
	"github.com/dmitrymomot/cookiecheck/pkg/results"
)

const sentryFlushTimeout = 2 * time.Second

// backend is an opened results store with its lifecycle hooks.
type backend struct {
	store    results.Store
	checks   map[string]health.CheckFunc
	shutdown []cookiecheck.RunOption
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}

	log := logger.NewWithSentry(cfg.Log, cfg.Sentry, cookiecheck.LogExtractors()...)
	if !cfg.Cookie.Secure {
		log.Warn("COOKIE_SECURE=false: sentinel uses SameSite=Lax, cross-site checks will report false")
	}

	b, err := openBackend(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to open results store", slog.Any("error", err))
		return err
	}

	app := newServer(cfg, log, b)

	opts := []cookiecheck.RunOption{
		cookiecheck.Logger(log),
		cookiecheck.ShutdownTimeout(cfg.ShutdownTimeout),
		cookiecheck.ShutdownHook(func(context.Context) error {
			sentry.Flush(sentryFlushTimeout)
			return nil
		}),
	}
	return app.Run(cfg.HTTPAddr, append(opts, b.shutdown...)...)
}

// newServer wires the check service from cfg and an opened backend.
func newServer(cfg Config, log *slog.Logger, b *backend) *cookiecheck.App {
	return cookiecheck.New(cookiecheck.Config{
		Store:           b.store,
		Logger:          log,
		ReadinessChecks: b.checks,
		TargetOrigin:    cfg.TargetOrigin,
		CookieOptions:   cfg.Cookie.cookieOptions(),
		AllowOrigins:    cfg.CORSAllowOrigins,
		ExpiryMode:      cfg.Cookie.ExpiryMode,
		SeedDays:        cfg.Cookie.MaxAgeDays,
	})
}

// openBackend opens the results store selected by RESULTS_BACKEND.
func openBackend(ctx context.Context, cfg Config, log *slog.Logger) (*backend, error) {
	switch cfg.Results.Backend {
	case backendRedis:
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info("results backend ready", slog.String("backend", backendRedis))
		return &backend{
			store:    results.NewRedis(client, results.WithRedisTTL(cfg.Results.TTL)),
			checks:   map[string]health.CheckFunc{"redis": redis.Healthcheck(client)},
			shutdown: []cookiecheck.RunOption{cookiecheck.ShutdownHook(redis.Shutdown(client))},
		}, nil
	default:
		store := results.NewMemory(
			results.WithTTL(cfg.Results.TTL),
			results.WithMaxEntries(cfg.Results.MaxEntries),
		)
		log.Info("results backend ready", slog.String("backend", backendMemory))
		return &backend{
			store:    store,
			shutdown: []cookiecheck.RunOption{cookiecheck.CloseHook(store.Close)},
		}, nil
	}
}
