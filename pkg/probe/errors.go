package probe

import "errors"

// Sentinel errors for the probe package.
var (
	// ErrNoCallback is returned by Run when no completion callback is given.
	ErrNoCallback = errors.New("probe: completion callback missing")

	// ErrCallback wraps an error returned by the completion callback.
	ErrCallback = errors.New("probe: completion callback failed")
)
