package compare

import (
	"context"
	"encoding/json"
	"time"

	"attrsort/pkg/cache"
	"attrsort/pkg/observability"
	"attrsort/pkg/token"
)

// keyType labels comparator entries in cache hook events.
const keyType = "compare"

// cacheEntry is the stored form of one pairwise result. Scores are oriented
// to the lexicographically smaller token of the pair, so that both (a,b) and
// (b,a) lookups resolve to the same entry.
type cacheEntry struct {
	Low  float64 `json:"low"`  // win weight of the smaller token over the larger
	High float64 `json:"high"` // win weight of the larger token over the smaller
}

// Cached wraps a Comparator with a byte cache so each unordered pair is
// scored at most once per TTL. The zero value is not usable; construct with
// [NewCached].
type Cached struct {
	inner Comparator
	cache cache.Cache
	ttl   time.Duration
}

// NewCached creates a caching comparator. A nil backend disables caching by
// falling back to [cache.NullCache]. A non-positive ttl stores entries
// without expiry.
func NewCached(inner Comparator, backend cache.Cache, ttl time.Duration) *Cached {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Cached{inner: inner, cache: backend, ttl: ttl}
}

// Compare returns the signed preference scalar derived from the cached (or
// freshly computed) win weights: ba−ab, negative when a should come first.
func (c *Cached) Compare(ctx context.Context, a, b token.Token) (float64, error) {
	ab, ba, err := c.RawCompare(ctx, a, b)
	if err != nil {
		return 0, err
	}
	return ba - ab, nil
}

// RawCompare returns the directional win weights for the pair, consulting
// the cache first. Cache read or write failures are ignored; the comparator
// result always wins.
func (c *Cached) RawCompare(ctx context.Context, a, b token.Token) (float64, float64, error) {
	low, high := a, b
	if high < low {
		low, high = high, low
	}
	key := cache.Key(keyType, low, high)

	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		var entry cacheEntry
		if err := json.Unmarshal(data, &entry); err == nil {
			observability.Cache().OnCacheHit(ctx, keyType)
			return orient(entry, a == low)
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyType)

	ab, ba, err := c.inner.RawCompare(ctx, a, b)
	if err != nil {
		return 0, 0, err
	}

	entry := cacheEntry{Low: ab, High: ba}
	if a != low {
		entry = cacheEntry{Low: ba, High: ab}
	}
	// NaN scores are not representable in JSON; such pairs are simply
	// recomputed on every call.
	if data, err := json.Marshal(entry); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, keyType, len(data))
		}
	}
	return ab, ba, nil
}

// orient maps a stored entry back into (ab, ba) order for the caller's pair.
func orient(entry cacheEntry, aIsLow bool) (float64, float64, error) {
	if aIsLow {
		return entry.Low, entry.High, nil
	}
	return entry.High, entry.Low, nil
}
