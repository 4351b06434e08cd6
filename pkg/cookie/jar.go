package cookie

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Jar is an in-memory cookie store that behaves like a page's
// document cookie: it is read as one "k1=v1; k2=v2" string and written
// one assignment at a time.
//
// Entries are keyed by name and path and keep insertion order, so two
// entries with the same name on different paths both appear in String
// and Get returns the first one. Expired entries are dropped lazily.
// Jar is safe for concurrent use.
type Jar struct {
	now     func() time.Time
	entries []jarEntry
	mu      sync.Mutex
}

type jarEntry struct {
	expires time.Time // zero = session cookie
	name    string
	value   string
	path    string
}

// JarOption configures a Jar.
type JarOption func(*Jar)

// WithClock sets the time source used for expiry checks.
// Default: time.Now.
func WithClock(now func() time.Time) JarOption {
	return func(j *Jar) {
		if now != nil {
			j.now = now
		}
	}
}

// NewJar creates an empty Jar.
func NewJar(opts ...JarOption) *Jar {
	j := &Jar{now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Load adds every "name=value" pair of a document-style cookie string
// as a session cookie on path "/". Segments without '=' are skipped.
func (j *Jar) Load(raw string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for segment := range strings.SplitSeq(raw, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(segment), "=")
		if !ok || name == "" {
			continue
		}
		j.upsert(jarEntry{name: name, value: value, path: defaultPath})
	}
}

// Assign applies one document-style assignment, for example
//
//	theme=dark;expires=Fri, 01 Jan 2100 00:00:00 GMT;path=/
//
// Recognised attributes are expires, max-age (which wins over expires)
// and path. Unknown attributes and unparsable dates are ignored, as a
// browser would. An expiry that is not in the future deletes the entry.
func (j *Jar) Assign(assignment string) error {
	parts := strings.Split(assignment, ";")
	name, value, ok := strings.Cut(strings.TrimSpace(parts[0]), "=")
	if !ok || name == "" {
		return errors.Join(ErrMalformed, errors.New(assignment))
	}

	e := jarEntry{name: name, value: value, path: defaultPath}
	now := j.now()
	var (
		maxAge    int
		hasMaxAge bool
	)

	for _, attr := range parts[1:] {
		key, val, _ := strings.Cut(strings.TrimSpace(attr), "=")
		switch strings.ToLower(key) {
		case "expires":
			if t, err := http.ParseTime(val); err == nil {
				e.expires = t
			}
		case "max-age":
			if n, err := strconv.Atoi(val); err == nil {
				maxAge, hasMaxAge = n, true
			}
		case "path":
			if strings.HasPrefix(val, "/") {
				e.path = val
			}
		}
	}

	if hasMaxAge {
		e.expires = now.Add(time.Duration(maxAge) * time.Second)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if !e.expires.IsZero() && !e.expires.After(now) {
		j.remove(e.name, e.path)
		return nil
	}
	j.upsert(e)
	return nil
}

// String renders the live entries as "k1=v1; k2=v2".
func (j *Jar) String() string {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.purge()

	var b strings.Builder
	for i, e := range j.entries {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.name)
		b.WriteByte('=')
		b.WriteString(e.value)
	}
	return b.String()
}

// Len returns the number of live entries.
func (j *Jar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.purge()
	return len(j.entries)
}

// Get implements Store.
func (j *Jar) Get(name string) (string, bool) {
	return Lookup(j.String(), name)
}

// Set implements Store on path "/".
func (j *Jar) Set(name, value string, expires time.Time) {
	// Format always yields name=..., so Assign cannot fail here
	// unless name is empty, which a Store never writes.
	_ = j.Assign(Format(name, value, expires, defaultPath))
}

// upsert replaces an entry in place or appends it.
// Caller must hold the mutex.
func (j *Jar) upsert(e jarEntry) {
	for i := range j.entries {
		if j.entries[i].name == e.name && j.entries[i].path == e.path {
			j.entries[i] = e
			return
		}
	}
	j.entries = append(j.entries, e)
}

// remove deletes the entry with the given name and path.
// Caller must hold the mutex.
func (j *Jar) remove(name, path string) {
	for i := range j.entries {
		if j.entries[i].name == name && j.entries[i].path == path {
			j.entries = append(j.entries[:i], j.entries[i+1:]...)
			return
		}
	}
}

// purge drops expired entries.
// Caller must hold the mutex.
func (j *Jar) purge() {
	now := j.now()
	live := j.entries[:0]
	for _, e := range j.entries {
		if e.expires.IsZero() || e.expires.After(now) {
			live = append(live, e)
		}
	}
	j.entries = live
}

var _ Store = (*Jar)(nil)
