// Package ocrcache provides a thread-safe in-memory memoization cache
// with per-entry TTL, used to avoid re-running OCR and region extraction
// for identical images. Entries live only for the process lifetime; there
// is no persistence.
//
// A Cache is constructed once during process startup and passed by handle
// to every caller that needs it. Key construction (typically a hash of
// the image bytes) is the caller's responsibility.
package ocrcache

import (
	"errors"
	"sync"
	"time"
)

// DefaultTTL is the entry lifetime used when callers have no better idea.
const DefaultTTL = 15 * time.Minute

var (
	// ErrEmptyKey is returned by Put for an empty cache key.
	ErrEmptyKey = errors.New("cache key cannot be empty")

	// ErrNegativeTTL is returned by Put for a negative ttl.
	ErrNegativeTTL = errors.New("ttl cannot be negative")
)

// Stats reports cache metrics. ExpiredEntries is a best-effort count:
// entries are only evicted on Put or Get, so Stats can observe expired
// entries that have not been swept yet.
type Stats struct {
	TotalEntries   int
	ExpiredEntries int
}

type entry[V any] struct {
	value  V
	expiry time.Time
}

// Cache is a TTL-bounded key/value store. A single mutex covers both the
// map mutation and the expiry sweep, so concurrent Put/Get/Clear calls
// are linearizable. The zero value is not usable; call New.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	now     func() time.Time // Overridable clock for tests
}

// New creates an empty cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Put stores value under key for ttl. It rejects empty keys and negative
// ttls. Every Put also sweeps all entries whose expiry has passed, under
// the same critical section.
func (c *Cache[V]) Put(key string, value V, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if ttl < 0 {
		return ErrNegativeTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key] = entry[V]{value: value, expiry: now.Add(ttl)}

	for k, e := range c.entries {
		if now.After(e.expiry) {
			delete(c.entries, k)
		}
	}

	return nil
}

// Get returns the value stored under key. An entry past its expiry is
// evicted and reported as absent.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().After(e.expiry) {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Clear removes all entries unconditionally.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Stats returns the current entry counts.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := Stats{TotalEntries: len(c.entries)}
	for _, e := range c.entries {
		if now.After(e.expiry) {
			stats.ExpiredEntries++
		}
	}
	return stats
}
