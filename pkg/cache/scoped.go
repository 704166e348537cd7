package cache

import (
	"context"
	"time"
)

// ScopedStore wraps a Store with a key prefix so that several logical caches
// can share one backend. The registry client scopes its store by base URL so
// that results from different registries never collide.
//
// Example usage:
//
//	shared, _ := cache.NewFileStore(dir)
//	prod := cache.NewScopedStore(shared, "registry.modelcontextprotocol.io:")
//	staging := cache.NewScopedStore(shared, "staging.example.com:")
//
// Clear and Close are forwarded to the inner store unchanged, so clearing a
// scoped view clears the whole backend.
type ScopedStore struct {
	inner  Store
	prefix string
}

// NewScopedStore creates a store that prefixes every key with prefix.
// A nil inner store is replaced by a [NullStore].
func NewScopedStore(inner Store, prefix string) Store {
	if inner == nil {
		inner = NewNullStore()
	}
	return &ScopedStore{inner: inner, prefix: prefix}
}

// Get retrieves the prefixed key from the inner store.
func (s *ScopedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores the prefixed key in the inner store.
func (s *ScopedStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes the prefixed key from the inner store.
func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Clear clears the inner store.
func (s *ScopedStore) Clear(ctx context.Context) (int, error) {
	return s.inner.Clear(ctx)
}

// Close closes the inner store.
func (s *ScopedStore) Close() error {
	return s.inner.Close()
}

// Prune forwards to the inner store when it supports pruning.
func (s *ScopedStore) Prune(ctx context.Context) (int, error) {
	if p, ok := s.inner.(Pruner); ok {
		return p.Prune(ctx)
	}
	return 0, nil
}
