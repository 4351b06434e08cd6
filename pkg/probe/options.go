package probe

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/cookiecheck/pkg/cookie"
)

// Option configures a Prober.
type Option func(*Prober)

// WithLogger sets the logger that receives the outcome line.
func WithLogger(l *slog.Logger) Option {
	return func(p *Prober) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock sets the time source for expiry calculations.
// Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Prober) {
		if now != nil {
			p.now = now
		}
	}
}

// WithExpiryMode selects how day counts become expiry times.
// Default: cookie.ExpiryDays.
func WithExpiryMode(mode cookie.ExpiryMode) Option {
	return func(p *Prober) {
		p.mode = mode
	}
}

// WithSentinel overrides the sentinel cookie name and value.
// Empty arguments keep the defaults.
func WithSentinel(name, value string) Option {
	return func(p *Prober) {
		if name != "" {
			p.name = name
		}
		if value != "" {
			p.value = value
		}
	}
}

// WithSeedDays sets how many days the sentinel lives after Seed.
// Non-positive values are ignored.
// Default: 1.
func WithSeedDays(days int) Option {
	return func(p *Prober) {
		if days > 0 {
			p.seedDays = days
		}
	}
}
