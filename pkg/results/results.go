package results

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for result stores.
var (
	// ErrNotFound is returned when no result exists for an ID or it has expired.
	ErrNotFound = errors.New("results: not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("results: store closed")

	// ErrEmptyID is returned when saving a result without an ID.
	ErrEmptyID = errors.New("results: empty id")

	// ErrMarshal is returned when a result cannot be encoded.
	ErrMarshal = errors.New("results: failed to marshal result")

	// ErrUnmarshal is returned when a stored result cannot be decoded.
	ErrUnmarshal = errors.New("results: failed to unmarshal result")
)

// Result is the recorded outcome of one third-party cookie check.
type Result struct {
	CheckedAt time.Time `json:"checked_at"`
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent,omitempty"`
	Received  bool      `json:"received"`
}

// Store persists check results for a limited time.
type Store interface {
	// Save stores r under r.ID, replacing any earlier result.
	Save(ctx context.Context, r Result) error

	// Get returns the result for id or ErrNotFound.
	Get(ctx context.Context, id string) (Result, error)

	// Delete removes the result for id. Missing ids are not an error.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the store.
	Close() error
}
