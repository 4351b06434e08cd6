package results

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// entry holds a stored result with its expiration time.
type entry struct {
	expiresAt time.Time // zero value = never expires
	result    Result
}

// Memory is an in-memory result store with TTL expiration and LRU
// eviction once the configured entry limit is reached.
//
// The most recently saved or read results are at the front of the
// eviction list; the least recently used are at the back.
type Memory struct {
	items    map[string]*list.Element
	eviction *list.List
	opts     *memoryOptions
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
}

// NewMemory creates an in-memory result store.
//
// Example:
//
//	s := results.NewMemory(
//	    results.WithTTL(30 * time.Minute),
//	    results.WithMaxEntries(50000),
//	)
//	defer s.Close()
func NewMemory(opts ...MemoryOption) *Memory {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		opts:     o,
		done:     make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// Save stores r under r.ID.
func (m *Memory) Save(_ context.Context, r Result) error {
	if r.ID == "" {
		return ErrEmptyID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	var expiresAt time.Time
	if m.opts.ttl > 0 {
		expiresAt = m.opts.now().Add(m.opts.ttl)
	}

	if elem, ok := m.items[r.ID]; ok {
		e := elem.Value.(*entry)
		e.result = r
		e.expiresAt = expiresAt
		m.eviction.MoveToFront(elem)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		if oldest := m.eviction.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}

	m.items[r.ID] = m.eviction.PushFront(&entry{result: r, expiresAt: expiresAt})
	return nil
}

// Get returns the result for id.
// Returns ErrNotFound if it does not exist or has expired.
func (m *Memory) Get(_ context.Context, id string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Result{}, ErrClosed
	}

	elem, ok := m.items[id]
	if !ok {
		return Result{}, ErrNotFound
	}

	e := elem.Value.(*entry)
	if m.expired(e, m.opts.now()) {
		m.removeElement(elem)
		return Result{}, ErrNotFound
	}

	m.eviction.MoveToFront(elem)
	return e.result, nil
}

// Delete removes the result for id.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[id]; ok {
		m.removeElement(elem)
	}
	return nil
}

// Len returns the number of stored results, expired ones included
// until the janitor or a read removes them.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor and marks the store as closed.
// Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)
	return nil
}

// janitor periodically removes expired results.
func (m *Memory) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

// deleteExpired removes expired results from back to front.
func (m *Memory) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.now()
	for elem := m.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		if m.expired(elem.Value.(*entry), now) {
			m.removeElement(elem)
		}
		elem = prev
	}
}

func (m *Memory) expired(e *entry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// removeElement removes elem from both indexes.
// Caller must hold the mutex.
func (m *Memory) removeElement(elem *list.Element) {
	m.eviction.Remove(elem)
	delete(m.items, elem.Value.(*entry).result.ID)
}

var _ Store = (*Memory)(nil)
