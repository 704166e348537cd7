package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented cache backend that outlives a single process.
//
// Stores back the in-memory [Expiring] cache so that results survive between
// CLI invocations. Implementations must treat an expired entry as a miss and
// must be safe for concurrent use.
type Store interface {
	// Get returns the data stored under key. The boolean is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key for ttl. A non-positive ttl stores nothing.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by the store and reports how many
	// entries were removed.
	Clear(ctx context.Context) (int, error)

	// Close releases resources held by the store.
	Close() error
}

// Pruner is implemented by stores that can drop expired entries eagerly.
type Pruner interface {
	Prune(ctx context.Context) (int, error)
}
