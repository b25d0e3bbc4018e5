package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("storage: not found")

// KVStore is the narrow contract the arena needs from its state store: an
// expiring write, a read, a delete, and an atomic counter. The store is the
// lifetime owner of all persisted state between requests.
type KVStore interface {
	// Put writes value under key. A zero ttl means no expiry.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns the value under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
	// Incr atomically increments the integer at key and returns the result.
	// A positive ttl is applied when the increment creates the key, so
	// counters expire on their own.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
