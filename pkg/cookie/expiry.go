package cookie

import (
	"errors"
	"strings"
	"time"
)

// ExpiryMode selects how a day count is turned into an expiry time.
type ExpiryMode int

const (
	// ExpiryDays adds whole calendar days.
	ExpiryDays ExpiryMode = iota

	// ExpiryLegacy adds days*86400 milliseconds: the seconds-per-day
	// factor applied to a millisecond clock. One "day" lasts 86.4s.
	ExpiryLegacy
)

// Expiry returns the expiry time for a cookie that should live for days
// days starting at now. Negative days yield a time in the past.
func Expiry(now time.Time, days int, mode ExpiryMode) time.Time {
	if mode == ExpiryLegacy {
		return now.Add(time.Duration(days) * 24 * 60 * 60 * time.Millisecond)
	}
	return now.AddDate(0, 0, days)
}

// String implements fmt.Stringer.
func (m ExpiryMode) String() string {
	switch m {
	case ExpiryDays:
		return "days"
	case ExpiryLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseExpiryMode parses "days" (or "") and "legacy", case-insensitively.
func ParseExpiryMode(s string) (ExpiryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "days":
		return ExpiryDays, nil
	case "legacy":
		return ExpiryLegacy, nil
	default:
		return ExpiryDays, errors.Join(ErrUnknownExpiryMode, errors.New(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so the mode can be
// read straight from environment configuration.
func (m *ExpiryMode) UnmarshalText(text []byte) error {
	v, err := ParseExpiryMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
