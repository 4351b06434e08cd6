package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/cookiecheck/internal"
)

// statusRecorder is implemented by internal.ResponseWriter.
type statusRecorder interface {
	Status() int
	Size() int64
}

// AccessLog returns middleware that writes one line per request after the
// handler returns. Requests whose path is in skip are not logged.
func AccessLog(skip ...string) internal.Middleware {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if _, ok := skipped[c.Request().URL.Path]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Duration("duration", time.Since(start)),
			}
			if rec, ok := c.Response().(statusRecorder); ok && c.Written() {
				attrs = append(attrs,
					slog.Int("status", rec.Status()),
					slog.Int64("size", rec.Size()),
				)
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}

			c.LogInfo("request", attrs...)
			return err
		}
	}
}
