package checker

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/cookiecheck/internal"
	"github.com/dmitrymomot/cookiecheck/pkg/logger"
	"github.com/dmitrymomot/cookiecheck/pkg/probe"
	"github.com/dmitrymomot/cookiecheck/pkg/results"
	"github.com/dmitrymomot/cookiecheck/pkg/sanitizer"
)

//go:embed templates/step2.html
var templatesFS embed.FS

var step2Page = template.Must(template.ParseFS(templatesFS, "templates/step2.html"))

// validID matches check IDs accepted from clients.
var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// checkIDKey is the context key for the current check ID.
type checkIDKey struct{}

// Handler serves the two-step third-party cookie check.
//
// The embedding page frames /step1 from a different site. Step 1 writes
// the sentinel cookie and redirects to step 2, whose script request
// carries whatever cookies the browser kept and reports the outcome
// through the page-level completion callback.
type Handler struct {
	prober       *probe.Prober
	store        results.Store
	now          func() time.Time
	targetOrigin string
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock sets the time source for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithTargetOrigin restricts which parent origin receives the step 2
// postMessage. Default: "*".
func WithTargetOrigin(origin string) Option {
	return func(h *Handler) {
		if origin != "" {
			h.targetOrigin = origin
		}
	}
}

// New creates a check handler that records outcomes in store.
func New(prober *probe.Prober, store results.Store, opts ...Option) *Handler {
	h := &Handler{
		prober:       prober,
		store:        store,
		now:          time.Now,
		targetOrigin: "*",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements internal.Handler.
func (h *Handler) Routes(r internal.Router) {
	r.GET("/step1", h.step1)
	r.GET("/step2", h.step2)
	r.GET("/step2.js", h.step2Script)
	r.GET("/results/{id}", h.result)
}

// step1 seeds the sentinel and hands over to step 2.
func (h *Handler) step1(c internal.Context) error {
	id := c.Query("id")
	switch {
	case id == "":
		id = uuid.NewString()
	case !validID.MatchString(id):
		return rejectID(c, id, "invalid check id")
	}
	c.Set(checkIDKey{}, id)

	h.prober.Seed(c.Cookies().Bind(c.Response(), c.Request()))
	c.LogDebug("sentinel seeded")

	noStore(c)
	return c.Redirect(http.StatusFound, "step2?id="+url.QueryEscape(id))
}

// step2 serves the page that defines the completion callback and loads
// the script that calls it.
func (h *Handler) step2(c internal.Context) error {
	id, err := checkID(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = step2Page.Execute(&buf, map[string]string{
		"Callback":     probe.CallbackName,
		"ID":           id,
		"TargetOrigin": h.targetOrigin,
		"ScriptURL":    "step2.js?id=" + url.QueryEscape(id),
	})
	if err != nil {
		return internal.ErrInternal("", internal.WithError(err))
	}

	noStore(c)
	return c.Blob(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// step2Script runs the check against the cookies this request carries and
// answers with a call to the completion callback.
func (h *Handler) step2Script(c internal.Context) error {
	id, err := checkID(c)
	if err != nil {
		return err
	}

	store := c.Cookies().Bind(c.Response(), c.Request())
	received, err := h.prober.Run(c, store, func(ctx context.Context, received bool) error {
		return h.store.Save(ctx, results.Result{
			ID:        id,
			Received:  received,
			UserAgent: sanitizer.UserAgent(c.Header("User-Agent")),
			CheckedAt: h.now().UTC(),
		})
	})
	if err != nil {
		// The browser still gets its answer when recording fails.
		c.LogError("failed to record check result", slog.Any("error", err))
	}

	noStore(c)
	return c.Blob(http.StatusOK, "application/javascript; charset=utf-8", []byte(callbackScript(received)))
}

// result returns a recorded outcome.
func (h *Handler) result(c internal.Context) error {
	id := c.Param("id")
	if !validID.MatchString(id) {
		return rejectID(c, id, "invalid check id")
	}
	c.Set(checkIDKey{}, id)

	res, err := h.store.Get(c, id)
	if errors.Is(err, results.ErrNotFound) {
		return internal.ErrNotFound("result not found", internal.WithErrorCode("not_found"))
	}
	if err != nil {
		return internal.ErrServiceUnavailable("results unavailable", internal.WithError(err))
	}

	noStore(c)
	return c.JSON(http.StatusOK, res)
}

// callbackScript renders the step 2 script body.
func callbackScript(received bool) string {
	return "window." + probe.CallbackName + "(" + strconv.FormatBool(received) + ");\n"
}

// checkID reads and validates the id query parameter and stores it on the
// request context for logging.
func checkID(c internal.Context) (string, error) {
	id := c.Query("id")
	if !validID.MatchString(id) {
		return "", rejectID(c, id, "missing or invalid check id")
	}
	c.Set(checkIDKey{}, id)
	return id, nil
}

// rejectID logs a malformed id without echoing it and returns a 400.
func rejectID(c internal.Context, id, msg string) error {
	c.LogWarn("rejected check id", slog.Int("id_length", len(id)))
	return internal.ErrBadRequest(msg, internal.WithErrorCode("invalid_id"))
}

func noStore(c internal.Context) {
	c.SetHeader("Cache-Control", "no-store")
}

// CheckIDExtractor returns a logger.ContextExtractor that adds "check_id"
// to log entries made while serving a check.
func CheckIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(checkIDKey{}).(string); ok && v != "" {
			return slog.String("check_id", v), true
		}
		return slog.Attr{}, false
	}
}
