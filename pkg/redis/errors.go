package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned by Open when Config.URL is unset.
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")

	// ErrUnsupportedScheme is joined with ErrFailedToParseURL when the URL
	// is neither redis:// nor rediss://.
	ErrUnsupportedScheme = errors.New("redis: unsupported URL scheme")

	ErrFailedToParseURL = errors.New("redis: failed to parse connection URL")

	// ErrConnectionFailed means every PING attempt failed or the context
	// ended while waiting between attempts.
	ErrConnectionFailed = errors.New("redis: failed to establish connection")

	// ErrHealthcheckFailed wraps readiness probe failures.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
