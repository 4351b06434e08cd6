package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiecheck/pkg/cookie"
)

var testNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// set writes one cookie valid for an hour and returns it parsed.
func set(t *testing.T, m *cookie.Manager) (*http.Cookie, string) {
	t.Helper()

	w := httptest.NewRecorder()
	m.SetExpires(w, "a", "b", testNow.Add(time.Hour), testNow)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0], w.Header().Get("Set-Cookie")
}

func TestDefaultAttributes(t *testing.T) {
	t.Parallel()

	c, _ := set(t, cookie.New())
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestCrossSiteAttributes(t *testing.T) {
	t.Parallel()

	t.Run("same site none forces secure", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(
			cookie.WithSameSite(http.SameSiteNoneMode),
			cookie.WithSecure(false),
		)
		_, header := set(t, m)
		assert.Contains(t, header, "SameSite=None")
		assert.Contains(t, header, "Secure")
	})

	t.Run("partitioned", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(append(cookie.CrossSite(), cookie.WithPartitioned(true))...)
		_, header := set(t, m)
		assert.Contains(t, header, "Partitioned")
		assert.Contains(t, header, "Secure")
	})

	t.Run("domain and path", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithDomain("check.example.com"), cookie.WithPath("/check"))
		c, _ := set(t, m)
		assert.Equal(t, "check.example.com", c.Domain)
		assert.Equal(t, "/check", c.Path)
	})
}

func TestSetExpires(t *testing.T) {
	t.Parallel()

	now := testNow
	m := cookie.New()

	t.Run("future expiry", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		m.SetExpires(w, "a", "b", now.Add(time.Hour), now)

		header := w.Header().Get("Set-Cookie")
		assert.Contains(t, header, "Expires=Thu, 01 Jan 2026 13:00:00 GMT")
		assert.NotContains(t, header, "Max-Age")
	})

	t.Run("past expiry deletes", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		m.SetExpires(w, "a", "", now.Add(-time.Hour), now)

		assert.True(t, strings.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0"))
	})
}
