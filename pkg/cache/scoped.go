package cache

import (
	"context"
	"time"
)

// Scoped wraps a Cache with a key prefix, isolating namespaces that share
// one backend — for example, comparator results from different model
// versions living in the same Redis instance.
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a cache whose keys are all prefixed.
// Closing the scoped cache closes the inner one.
func NewScoped(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Get reads the prefixed key from the inner cache.
func (c *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set writes the prefixed key to the inner cache.
func (c *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete removes the prefixed key from the inner cache.
func (c *Scoped) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the inner cache.
func (c *Scoped) Close() error { return c.inner.Close() }

var _ Cache = (*Scoped)(nil)
