package cookie

import (
	"errors"
	"net/http"
	"time"
)

// Errors.
var (
	ErrMalformed         = errors.New("cookie: malformed assignment")
	ErrUnknownExpiryMode = errors.New("cookie: unknown expiry mode")
)

// Manager writes response cookies with a fixed attribute set.
// Cookies are always HttpOnly; the sentinel is only read server-side.
type Manager struct {
	domain      string
	path        string
	secure      bool
	partitioned bool
	sameSite    http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager with the given options.
// SameSite=None is only honoured by browsers on Secure cookies, so
// selecting it forces the Secure flag on.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sameSite == http.SameSiteNoneMode || m.partitioned {
		m.secure = true
	}
	return m
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// WithPartitioned sets the Partitioned attribute (CHIPS).
// Partitioned cookies are keyed by the top-level site, which lets a
// cross-site frame keep state even when unpartitioned third-party
// cookies are blocked. Implies Secure.
func WithPartitioned(partitioned bool) Option {
	return func(m *Manager) {
		m.partitioned = partitioned
	}
}

// CrossSite returns options suited for cookies written from inside a
// cross-site frame: SameSite=None and Secure.
func CrossSite() []Option {
	return []Option{
		WithSameSite(http.SameSiteNoneMode),
		WithSecure(true),
	}
}

// SetExpires sets a cookie with an absolute expiry.
// An expiry that is not in the future deletes the cookie.
func (m *Manager) SetExpires(w http.ResponseWriter, name, value string, expires, now time.Time) {
	c := m.cookie(name, value)
	if !expires.After(now) {
		c.MaxAge = -1
	}
	c.Expires = expires.UTC()
	http.SetCookie(w, c)
}

// cookie creates a cookie with the manager's attributes.
func (m *Manager) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:        name,
		Value:       value,
		Path:        m.path,
		Domain:      m.domain,
		Secure:      m.secure,
		HttpOnly:    true,
		SameSite:    m.sameSite,
		Partitioned: m.partitioned,
	}
}
