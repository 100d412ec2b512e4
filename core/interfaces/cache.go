// ABOUTME: Cache interface for key-value storage with TTL support
// ABOUTME: Allows swapping between memory, Redis and SQLite backends

package interfaces

import (
	"context"
	"time"
)

// Cache defines the interface for cache operations.
// Implementations must be safe for concurrent use; a miss is reported
// as an error so callers can fall through to a fresh computation.
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns the cached data as []byte or an error if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
