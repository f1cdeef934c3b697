// Package cache provides TTL caching for fetched log payloads.
//
// Two backends are available: an in-process memory cache for single
// invocations, and a Redis cache that shares fetched logs across CLI runs
// so repeated lookups of the same event don't hit the gateway again.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores opaque byte payloads with a per-store TTL.
type Cache interface {
	// Get returns the payload for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the payload under key for the cache's TTL.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// keyPrefix namespaces cache keys in shared backends.
const keyPrefix = "logsleuth:log:"

// DefaultTTL is used when a non-positive TTL is configured.
const DefaultTTL = 5 * time.Minute

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
