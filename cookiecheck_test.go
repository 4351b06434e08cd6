package cookiecheck_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiecheck"
	"github.com/dmitrymomot/cookiecheck/pkg/cookie"
	"github.com/dmitrymomot/cookiecheck/pkg/health"
	"github.com/dmitrymomot/cookiecheck/pkg/probe"
	"github.com/dmitrymomot/cookiecheck/pkg/results"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	store := results.NewMemory()
	t.Cleanup(func() { _ = store.Close() })

	app := cookiecheck.New(cookiecheck.Config{Store: store})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/step1?id=d1", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, probe.SentinelName, cookies[0].Name)
	assert.Equal(t, http.SameSiteNoneMode, cookies[0].SameSite)
	assert.True(t, cookies[0].Secure)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestNew_CustomCookieOptions(t *testing.T) {
	t.Parallel()

	store := results.NewMemory()
	t.Cleanup(func() { _ = store.Close() })

	app := cookiecheck.New(cookiecheck.Config{
		Store:         store,
		CookieOptions: append(cookie.CrossSite(), cookie.WithPartitioned(true), cookie.WithDomain("check.example")),
	})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/step1?id=d2", nil))

	c := rec.Result().Cookies()[0]
	assert.True(t, c.Partitioned)
	assert.Equal(t, "check.example", c.Domain)
}

func TestNew_ReadinessChecks(t *testing.T) {
	t.Parallel()

	store := results.NewMemory()
	t.Cleanup(func() { _ = store.Close() })

	app := cookiecheck.New(cookiecheck.Config{
		Store: store,
		ReadinessChecks: map[string]health.CheckFunc{
			"store": func(context.Context) error { return errors.New("down") },
		},
	})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_ExtraMiddleware(t *testing.T) {
	t.Parallel()

	store := results.NewMemory()
	t.Cleanup(func() { _ = store.Close() })

	app := cookiecheck.New(cookiecheck.Config{
		Store: store,
		Middleware: []cookiecheck.Middleware{
			func(next cookiecheck.HandlerFunc) cookiecheck.HandlerFunc {
				return func(c cookiecheck.Context) error {
					c.SetHeader("X-Frame-Hint", "embed")
					return next(c)
				}
			},
		},
	})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/step2?id=m1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "embed", rec.Header().Get("X-Frame-Hint"))
}

func TestLogExtractors(t *testing.T) {
	t.Parallel()

	assert.Len(t, cookiecheck.LogExtractors(), 2)
}
