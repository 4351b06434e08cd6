package cookie_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiecheck/pkg/cookie"
)

// clock is a manually advanced time source.
type clock struct {
	now time.Time
	mu  sync.Mutex
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestJar_SetGet(t *testing.T) {
	t.Parallel()

	t.Run("round trip before expiry", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		jar := cookie.NewJar(cookie.WithClock(clk.Now))

		jar.Set("name", "value", cookie.Expiry(clk.Now(), 1, cookie.ExpiryDays))

		v, ok := jar.Get("name")
		require.True(t, ok)
		assert.Equal(t, "value", v)
	})

	t.Run("negative days clears", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		jar := cookie.NewJar(cookie.WithClock(clk.Now))
		jar.Set("name", "value", cookie.Expiry(clk.Now(), 1, cookie.ExpiryDays))

		jar.Set("name", "", cookie.Expiry(clk.Now(), -2, cookie.ExpiryDays))

		v, ok := jar.Get("name")
		assert.False(t, ok)
		assert.Empty(t, v)
		assert.Zero(t, jar.Len())
	})

	t.Run("legacy expiry lapses after 86.4 seconds per day", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		jar := cookie.NewJar(cookie.WithClock(clk.Now))
		jar.Set("name", "value", cookie.Expiry(clk.Now(), 1, cookie.ExpiryLegacy))

		// Assignments carry whole seconds, so the entry lapses at +86s.
		clk.Advance(85 * time.Second)
		_, ok := jar.Get("name")
		assert.True(t, ok)

		clk.Advance(2 * time.Second)
		_, ok = jar.Get("name")
		assert.False(t, ok)
	})

	t.Run("overwrite keeps position", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		jar := cookie.NewJar(cookie.WithClock(clk.Now))
		exp := clk.Now().Add(time.Hour)
		jar.Set("a", "1", exp)
		jar.Set("b", "2", exp)
		jar.Set("a", "3", exp)

		assert.Equal(t, "a=3; b=2", jar.String())
	})
}

func TestJar_Assign(t *testing.T) {
	t.Parallel()

	t.Run("session cookie without expiry", func(t *testing.T) {
		t.Parallel()

		jar := cookie.NewJar()
		require.NoError(t, jar.Assign("a=1"))
		assert.Equal(t, "a=1", jar.String())
	})

	t.Run("max-age wins over expires", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		jar := cookie.NewJar(cookie.WithClock(clk.Now))
		require.NoError(t, jar.Assign("a=1;expires=Thu, 01 Jan 1970 00:00:00 GMT;max-age=60"))

		_, ok := jar.Get("a")
		assert.True(t, ok)

		clk.Advance(time.Minute)
		_, ok = jar.Get("a")
		assert.False(t, ok)
	})

	t.Run("same name on different paths", func(t *testing.T) {
		t.Parallel()

		jar := cookie.NewJar()
		require.NoError(t, jar.Assign("a=root;path=/"))
		require.NoError(t, jar.Assign("a=app;path=/app"))

		assert.Equal(t, "a=root; a=app", jar.String())
		v, _ := jar.Get("a")
		assert.Equal(t, "root", v)
	})

	t.Run("unknown attributes ignored", func(t *testing.T) {
		t.Parallel()

		jar := cookie.NewJar()
		require.NoError(t, jar.Assign("a=1; Secure; SameSite=None; domain=example.com; expires=not-a-date"))
		assert.Equal(t, "a=1", jar.String())
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		jar := cookie.NewJar()
		require.ErrorIs(t, jar.Assign("novalue"), cookie.ErrMalformed)
		require.ErrorIs(t, jar.Assign("=x"), cookie.ErrMalformed)
		require.ErrorIs(t, jar.Assign(""), cookie.ErrMalformed)
	})
}

func TestJar_Load(t *testing.T) {
	t.Parallel()

	jar := cookie.NewJar()
	jar.Load("a=1; third_party_cookie_test=hey there!;  junk ; b=")

	assert.Equal(t, "a=1; third_party_cookie_test=hey there!; b=", jar.String())
	v, ok := jar.Get("third_party_cookie_test")
	require.True(t, ok)
	assert.Equal(t, "hey there!", v)
}

func TestJar_Concurrent(t *testing.T) {
	t.Parallel()

	jar := cookie.NewJar()
	exp := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			jar.Set("k", "v", exp)
			_, _ = jar.Get("k")
			_ = jar.String()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, jar.Len())
}
