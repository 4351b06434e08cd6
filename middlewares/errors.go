package middlewares

import (
	"errors"
	"fmt"
)

// PanicError is what Recover hands to the error handler in place of a
// panic. Method and Path identify the check route that panicked.
type PanicError struct {
	Value  any
	Method string
	Path   string
	Stack  []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s %s: %v", e.Method, e.Path, e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// IsPanicError reports whether err came from a recovered panic.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// AsPanicError extracts the PanicError from err's chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}
