// Package cache provides the byte cache used to memoize pairwise comparator
// results.
//
// Comparisons against the remote model are expensive and pure, so every
// result is cached under a key derived from the unordered token pair (see
// pkg/compare). The cache is deliberately value-agnostic: backends store
// opaque bytes with an optional TTL, and the same interface serves a local
// file tree, Redis, or MongoDB depending on deployment.
//
// Lifecycle is explicit: callers construct a Cache, hand it to whatever
// needs one, and Close it when done. There is no package-level default
// instance.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
// Implementations must treat an expired or missing key as a miss, never an
// error. All implementations are safe for sequential use; backends that
// talk to a server are additionally safe for concurrent use.
type Cache interface {
	// Get returns the value for key. The boolean reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
