package checker_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiecheck/internal"
	"github.com/dmitrymomot/cookiecheck/internal/checker"
	"github.com/dmitrymomot/cookiecheck/pkg/cookie"
	"github.com/dmitrymomot/cookiecheck/pkg/logger"
	"github.com/dmitrymomot/cookiecheck/pkg/probe"
	"github.com/dmitrymomot/cookiecheck/pkg/results"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	app   *internal.App
	store *results.Memory
	logs  *bytes.Buffer
}

func newFixture(t *testing.T, opts ...checker.Option) *fixture {
	t.Helper()

	logs := &bytes.Buffer{}
	log := slog.New(logger.Decorate(
		slog.NewJSONHandler(logs, nil),
		checker.CheckIDExtractor(),
	))

	store := results.NewMemory()
	t.Cleanup(func() { _ = store.Close() })

	h := checker.New(probe.New(probe.WithLogger(log)), store,
		append([]checker.Option{checker.WithClock(func() time.Time { return fixedNow })}, opts...)...)

	return &fixture{
		app: internal.New(
			internal.WithLogger(log),
			internal.WithCookieOptions(cookie.CrossSite()...),
			internal.WithHandlers(h),
		),
		store: store,
		logs:  logs,
	}
}

func (f *fixture) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("User-Agent", "test-agent")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.app.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestFlow_CookiesDelivered(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rec := f.get(t, "/step1?id=abc")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/step2?id=abc", rec.Header().Get("Location"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	sentinel := findCookie(rec, probe.SentinelName)
	require.NotNil(t, sentinel)
	assert.Equal(t, http.SameSiteNoneMode, sentinel.SameSite)
	assert.True(t, sentinel.Secure)
	assert.Equal(t, "/", sentinel.Path)

	rec = f.get(t, "/step2.js?id=abc", &http.Cookie{Name: sentinel.Name, Value: sentinel.Value})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "window._3rd_party_test_step2_loaded(true);\n", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/javascript")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	cleared := findCookie(rec, probe.SentinelName)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0, "sentinel must be cleared")

	res, err := f.store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, res.Received)
	assert.Equal(t, "test-agent", res.UserAgent)
	assert.Equal(t, fixedNow, res.CheckedAt)

	var line map[string]any
	for raw := range strings.SplitSeq(strings.TrimSpace(f.logs.String()), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &m))
		if m["msg"] == "third-party cookie check" {
			line = m
		}
	}
	require.NotNil(t, line)
	assert.Equal(t, true, line["received"])
	assert.Equal(t, "abc", line["check_id"])
}

func TestFlow_CookiesBlocked(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rec := f.get(t, "/step2.js?id=blocked")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "window._3rd_party_test_step2_loaded(false);\n", rec.Body.String())

	res, err := f.store.Get(context.Background(), "blocked")
	require.NoError(t, err)
	assert.False(t, res.Received)
}

func TestFlow_WrongSentinelValue(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rec := f.get(t, "/step2.js?id=x1", &http.Cookie{Name: probe.SentinelName, Value: "hello"})
	assert.Equal(t, "window._3rd_party_test_step2_loaded(false);\n", rec.Body.String())
}

func TestFlow_MalformedNeighbourCookie(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/step2.js?id=pct", nil)
	req.Header.Set("Cookie", "discount=50%; third_party_cookie_test=hey%20there%21")
	rec := httptest.NewRecorder()
	f.app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "window._3rd_party_test_step2_loaded(true);\n", rec.Body.String())
}

func TestStep1_GeneratesID(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rec := f.get(t, "/step1")
	require.Equal(t, http.StatusFound, rec.Code)
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/step2?id="))
	assert.Len(t, strings.TrimPrefix(loc, "/step2?id="), 36)
}

func TestInvalidID(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	for _, target := range []string{
		"/step1?id=" + strings.Repeat("a", 65),
		"/step2",
		"/step2.js?id=bad%20id",
		"/results/a.b",
	} {
		rec := f.get(t, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	var warnings int
	for raw := range strings.SplitSeq(strings.TrimSpace(f.logs.String()), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &m))
		if m["level"] == "WARN" && m["msg"] == "rejected check id" {
			warnings++
		}
	}
	assert.Equal(t, 4, warnings)
}

func TestStep2Page(t *testing.T) {
	t.Parallel()

	f := newFixture(t, checker.WithTargetOrigin("https://parent.example"))

	rec := f.get(t, "/step2?id=abc")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, probe.CallbackName)
	assert.Contains(t, body, `src="step2.js?id=abc"`)
	assert.Contains(t, body, "parent.example")
	assert.Contains(t, body, "postMessage")
}

func TestResults(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rec := f.get(t, "/results/none")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, f.store.Save(context.Background(), results.Result{
		ID:        "r1",
		Received:  true,
		CheckedAt: fixedNow,
	}))

	rec = f.get(t, "/results/r1")
	require.Equal(t, http.StatusOK, rec.Code)

	var got results.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "r1", got.ID)
	assert.True(t, got.Received)
}

// brokenStore fails every operation.
type brokenStore struct{}

func (brokenStore) Save(context.Context, results.Result) error { return errors.New("down") }
func (brokenStore) Get(context.Context, string) (results.Result, error) {
	return results.Result{}, errors.New("down")
}
func (brokenStore) Delete(context.Context, string) error { return errors.New("down") }
func (brokenStore) Close() error                         { return nil }

func TestStoreFailure(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(checker.New(probe.New(), brokenStore{})))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/step2.js?id=abc", nil)
	req.AddCookie(&http.Cookie{Name: probe.SentinelName, Value: "hey%20there%21"})
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "window._3rd_party_test_step2_loaded(true);\n", rec.Body.String())

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/results/abc", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
