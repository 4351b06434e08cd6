package internal

// Handler declares routes on a router.
//
// Example:
//
//	type CheckHandler struct {
//	    prober *probe.Prober
//	}
//
//	func (h *CheckHandler) Routes(r internal.Router) {
//	    r.GET("/step1", h.seed)
//	    r.GET("/step2.js", h.report)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
