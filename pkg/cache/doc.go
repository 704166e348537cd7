// Package cache provides the response caches used by the registry client.
//
// # In-memory cache
//
// [Expiring] is a generic, mutex-guarded map where each entry has its own
// deadline computed once at insertion. Expired entries are dropped lazily by
// [Expiring.Get] or in bulk by [Expiring.CleanupExpired]; no goroutine is
// started. A disabled cache never stores or returns anything.
//
//	c := cache.NewExpiring[string](5 * time.Minute)
//	c.Set(cache.SearchKey("  GitHub "), "result")
//	v, ok := c.Get(cache.SearchKey("github")) // same slot
//
// # Keys
//
// [SearchKey], [ServerKey] and [ServerByNameKey] derive deterministic keys for
// each query kind. Names are lower-cased and trimmed.
//
// # Persistent stores
//
// A [Store] keeps encoded results across processes:
//
//   - [NullStore]: stores nothing (default)
//   - [FileStore]: one msgpack file per key under a cache directory
//   - [RedisStore]: Redis keys with native TTLs
//
// [ScopedStore] prefixes keys so several registries can share a backend.
// Values are serialized with [Encode] and [Decode] (msgpack).
package cache
