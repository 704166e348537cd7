package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the time-to-live used by [NewExpiring] callers that have no
// configured value.
const DefaultTTL = 5 * time.Minute

// entry holds a cached value together with its deadline.
// expiresAt is computed once when the entry is stored and never changes.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Expiring is an in-memory key/value cache where every entry carries its own
// expiration deadline.
//
// Expiration is lazy: an expired entry is removed when [Expiring.Get] observes
// it or when [Expiring.CleanupExpired] is called. Nothing runs in the
// background, so callers that want periodic purging schedule CleanupExpired
// themselves.
//
// A disabled cache stores nothing: Set is a no-op and Get always misses.
// Clear works regardless of the enabled flag.
//
// All methods are safe for concurrent use. A single mutex guards the map and
// is held only for the map access. Concurrent Set calls on the same key are
// last-write-wins in lock acquisition order.
//
// The zero value is not usable; construct with [NewExpiring].
type Expiring[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	enabled bool
	ttl     time.Duration
	now     func() time.Time
}

// Option configures an [Expiring] cache.
type Option func(*options)

type options struct {
	enabled bool
	now     func() time.Time
}

// WithEnabled turns the cache on or off. Caches are enabled by default.
func WithEnabled(enabled bool) Option {
	return func(o *options) { o.enabled = enabled }
}

// WithClock replaces time.Now as the source of the current time.
// Intended for tests that need to control expiration precisely.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewExpiring creates a cache whose entries live for ttl unless a different
// TTL is passed to [Expiring.SetWithTTL].
func NewExpiring[V any](ttl time.Duration, opts ...Option) *Expiring[V] {
	o := options{enabled: true, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Expiring[V]{
		entries: make(map[string]entry[V]),
		enabled: o.enabled,
		ttl:     ttl,
		now:     o.now,
	}
}

// Enabled reports whether the cache stores values.
func (c *Expiring[V]) Enabled() bool { return c.enabled }

// TTL returns the default time-to-live applied by [Expiring.Set].
func (c *Expiring[V]) TTL() time.Duration { return c.ttl }

// Get returns the value stored under key.
//
// The boolean is false when the key is absent, when the entry has expired, or
// when the cache is disabled. An expired entry is deleted before returning.
// Entries whose deadline equals the current instant are still returned.
func (c *Expiring[V]) Get(key string) (V, bool) {
	var zero V
	if !c.enabled {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key using the cache's default TTL.
func (c *Expiring[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key, overwriting any existing entry.
// A zero or negative ttl is accepted and yields an entry that the next read
// after the current instant treats as expired.
func (c *Expiring[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Clear removes every entry. It is safe to call on a disabled cache.
func (c *Expiring[V]) Clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// CleanupExpired removes every entry whose deadline is strictly before the
// time the scan starts and returns how many entries were removed.
func (c *Expiring[V]) CleanupExpired() int {
	if !c.enabled {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if e.expiresAt.Before(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, including expired entries that
// have not been observed yet.
func (c *Expiring[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the keys of all stored entries in no particular order.
func (c *Expiring[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}
