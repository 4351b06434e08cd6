package probe

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/cookiecheck/pkg/cookie"
	"github.com/dmitrymomot/cookiecheck/pkg/logger"
)

const (
	// SentinelName is the cookie written in step 1 and read back in step 2.
	SentinelName = "third_party_cookie_test"

	// SentinelValue is the value step 1 writes.
	SentinelValue = "hey there!"

	// CallbackName is the page-level function that receives the result.
	CallbackName = "_3rd_party_test_step2_loaded"

	// ClearDays is the day count used to expire the sentinel after a read.
	ClearDays = -2

	// DefaultSeedDays is how long the sentinel lives after step 1.
	DefaultSeedDays = 1
)

// Callback receives the outcome of a check. It is called exactly once per Run.
type Callback func(ctx context.Context, received bool) error

// Prober runs the third-party cookie check against a cookie store.
// A Prober holds no per-run state and may be shared.
type Prober struct {
	logger   *slog.Logger
	now      func() time.Time
	name     string
	value    string
	seedDays int
	mode     cookie.ExpiryMode
}

// New creates a Prober.
//
// Example:
//
//	p := probe.New(
//	    probe.WithLogger(log),
//	    probe.WithExpiryMode(cookie.ExpiryLegacy),
//	)
func New(opts ...Option) *Prober {
	p := &Prober{
		logger:   logger.NewNope(),
		now:      time.Now,
		name:     SentinelName,
		value:    SentinelValue,
		seedDays: DefaultSeedDays,
		mode:     cookie.ExpiryDays,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.mode == cookie.ExpiryLegacy {
		p.logger.Warn("legacy cookie expiry selected: one day lasts 86.4 seconds",
			slog.Int("seed_days", p.seedDays),
		)
	}

	return p
}

// Seed writes the sentinel cookie. This is step 1 of the check.
func (p *Prober) Seed(store cookie.Store) {
	store.Set(p.name, p.value, cookie.Expiry(p.now(), p.seedDays, p.mode))
}

// Run performs step 2 of the check in a single pass: it reads the
// sentinel, compares it to the expected value, logs the outcome, clears
// the sentinel and reports the outcome to done.
//
// Absence of the sentinel is not an error; it means third-party cookies
// were not delivered. A nil done returns ErrNoCallback after the
// sentinel has been cleared. An error from done is returned joined with
// ErrCallback.
func (p *Prober) Run(ctx context.Context, store cookie.Store, done Callback) (bool, error) {
	value, _ := store.Get(p.name)
	received := value == p.value

	p.logger.InfoContext(ctx, "third-party cookie check",
		slog.Bool("received", received),
	)

	store.Set(p.name, "", cookie.Expiry(p.now(), ClearDays, p.mode))

	if done == nil {
		return received, ErrNoCallback
	}
	if err := done(ctx, received); err != nil {
		return received, errors.Join(ErrCallback, err)
	}
	return received, nil
}
