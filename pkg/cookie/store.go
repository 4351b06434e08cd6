package cookie

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Store is a cookie store seen from a page: one accessor, one mutator.
//
// Get reports the first value stored under name. Set writes an entry
// that lives until expires; an expiry that is not in the future removes
// the entry.
type Store interface {
	Get(name string) (string, bool)
	Set(name, value string, expires time.Time)
}

// Bind returns a Store scoped to a single request/response pair.
//
// Reads go through Lookup over the request's Cookie headers, so they
// follow the same first-match rules as a page script. Writes become
// Set-Cookie headers carrying the manager's attributes, with the value
// percent-encoded. Values written during the request shadow the
// request's own cookies for later reads.
func (m *Manager) Bind(w http.ResponseWriter, r *http.Request) Store {
	return &boundStore{
		m:       m,
		w:       w,
		raw:     strings.Join(r.Header.Values("Cookie"), "; "),
		now:     time.Now,
		written: make(map[string]*string),
	}
}

type boundStore struct {
	m       *Manager
	w       http.ResponseWriter
	now     func() time.Time
	written map[string]*string // nil value = deleted
	raw     string
	mu      sync.Mutex
}

func (s *boundStore) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.written[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return Lookup(s.raw, name)
}

func (s *boundStore) Set(name, value string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.m.SetExpires(s.w, name, encodeValue(value), expires, now)

	if !expires.After(now) {
		s.written[name] = nil
		return
	}
	s.written[name] = &value
}

var _ Store = (*boundStore)(nil)
