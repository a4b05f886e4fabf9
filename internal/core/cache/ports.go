package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Cache defines the key-value operations the application needs from a
// cache backend. It is a port that can be implemented by different
// providers (Redis in production, miniredis in tests).
type Cache interface {
	// Get retrieves a value by key. Wraps ErrKeyNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key with the given TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys matching a glob pattern (e.g. "snapshot:*").
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Ping checks if the cache backend is reachable.
	Ping(ctx context.Context) error

	// Close closes the connection.
	Close() error
}
