// Package middlewares provides the HTTP middleware the check service runs
// on every request.
//
// RequestID assigns or propagates an ID per request. Pair it with
// RequestIDExtractor so every log line carries request_id:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//
// Recover converts panics into *PanicError values the app's error handler
// renders as 500.
//
// CORS lets the page embedding the check read /results from another origin.
//
// AccessLog writes one line per request with status, size and duration.
//
// Recommended order:
//
//	internal.WithMiddleware(
//	    middlewares.CORS(middlewares.WithAllowOrigins(origins...)),
//	    middlewares.RequestID(),
//	    middlewares.AccessLog("/health/live", "/health/ready"),
//	    middlewares.Recover(),
//	)
package middlewares
