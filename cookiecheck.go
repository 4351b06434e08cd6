package cookiecheck

import (
	"log/slog"

	"github.com/dmitrymomot/cookiecheck/internal"
	"github.com/dmitrymomot/cookiecheck/internal/checker"
	"github.com/dmitrymomot/cookiecheck/middlewares"
	"github.com/dmitrymomot/cookiecheck/pkg/cookie"
	"github.com/dmitrymomot/cookiecheck/pkg/health"
	"github.com/dmitrymomot/cookiecheck/pkg/logger"
	"github.com/dmitrymomot/cookiecheck/pkg/probe"
	"github.com/dmitrymomot/cookiecheck/pkg/results"
)

// Type aliases - public API
type (
	// App serves the check and runs the HTTP server.
	App = internal.App

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Middleware wraps a route handler.
	Middleware = internal.Middleware

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Context provides request/response access to middleware.
	Context = internal.Context
)

// Runtime options
var (
	Logger          = internal.Logger
	ShutdownTimeout = internal.ShutdownTimeout
	StartupHook     = internal.StartupHook
	ShutdownHook    = internal.ShutdownHook
	CloseHook       = internal.CloseHook
	WithContext     = internal.WithContext
)

// Config describes a check service.
type Config struct {
	// Store records outcomes. Required.
	Store results.Store

	// Logger receives request and check logs. Default: discard.
	Logger *slog.Logger

	// ReadinessChecks run on /health/ready.
	ReadinessChecks map[string]health.CheckFunc

	// TargetOrigin restricts the step 2 postMessage target. Default: "*".
	TargetOrigin string

	// CookieOptions override the cross-site cookie attributes.
	CookieOptions []cookie.Option

	// AllowOrigins lists origins allowed to read /results. Default: any.
	AllowOrigins []string

	// Middleware runs after the built-in stack.
	Middleware []Middleware

	// ExpiryMode selects how day counts become expiry times.
	ExpiryMode cookie.ExpiryMode

	// SeedDays is how long the sentinel lives after step 1. Default: 1.
	SeedDays int
}

// New builds the check service: the check routes behind CORS, request ID,
// access log and panic recovery, plus /health/live and /health/ready.
//
// Example:
//
//	store := results.NewMemory()
//	app := cookiecheck.New(cookiecheck.Config{Store: store, Logger: log})
//	err := app.Run(":8080", cookiecheck.CloseHook(store.Close))
func New(cfg Config) *App {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNope()
	}

	cookieOpts := cfg.CookieOptions
	if len(cookieOpts) == 0 {
		cookieOpts = cookie.CrossSite()
	}

	prober := probe.New(
		probe.WithLogger(log),
		probe.WithExpiryMode(cfg.ExpiryMode),
		probe.WithSeedDays(cfg.SeedDays),
	)

	checks := make([]internal.HealthOption, 0, len(cfg.ReadinessChecks))
	for name, fn := range cfg.ReadinessChecks {
		checks = append(checks, internal.WithReadinessCheck(name, fn))
	}

	mw := []internal.Middleware{
		middlewares.CORS(middlewares.WithAllowOrigins(cfg.AllowOrigins...)),
		middlewares.RequestID(),
		middlewares.AccessLog("/health/live", "/health/ready"),
		middlewares.Recover(),
	}

	return internal.New(
		internal.WithLogger(log),
		internal.WithCookieOptions(cookieOpts...),
		internal.WithMiddleware(append(mw, cfg.Middleware...)...),
		internal.WithHealthChecks(checks...),
		internal.WithHandlers(
			checker.New(prober, cfg.Store, checker.WithTargetOrigin(cfg.TargetOrigin)),
		),
	)
}

// LogExtractors returns the context extractors that tag log lines with
// request_id and check_id. Pass them to logger.New.
func LogExtractors() []logger.ContextExtractor {
	return []logger.ContextExtractor{
		middlewares.RequestIDExtractor(),
		checker.CheckIDExtractor(),
	}
}
