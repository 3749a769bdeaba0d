// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about sort runs, comparator calls, and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSortHooks(&mySortHooks{})
//	    observability.SetCompareHooks(&myCompareHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Sort().OnSortStart(ctx, mode, len(tokens))
//	// ... run the sort ...
//	observability.Sort().OnSortComplete(ctx, mode, len(tokens), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Sort Hooks
// =============================================================================

// SortHooks receives events from the ordering pipeline.
type SortHooks interface {
	// OnSortStart records the beginning of one sort run.
	OnSortStart(ctx context.Context, mode string, tokenCount int)

	// OnSortComplete records the end of one sort run.
	OnSortComplete(ctx context.Context, mode string, tokenCount int, duration time.Duration, err error)

	// OnRankStart records the beginning of a pairwise ranking pass.
	OnRankStart(ctx context.Context, tokenCount int)

	// OnRankComplete records the end of a pairwise ranking pass.
	OnRankComplete(ctx context.Context, tokenCount int, duration time.Duration, err error)
}

// =============================================================================
// Compare Hooks
// =============================================================================

// CompareHooks receives events from pairwise comparator calls.
type CompareHooks interface {
	// OnCompare records one comparator invocation against the backing model.
	OnCompare(ctx context.Context, a, b string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSortHooks is a no-op implementation of SortHooks.
type NoopSortHooks struct{}

func (NoopSortHooks) OnSortStart(context.Context, string, int)                              {}
func (NoopSortHooks) OnSortComplete(context.Context, string, int, time.Duration, error)     {}
func (NoopSortHooks) OnRankStart(context.Context, int)                                      {}
func (NoopSortHooks) OnRankComplete(context.Context, int, time.Duration, error)             {}

// NoopCompareHooks is a no-op implementation of CompareHooks.
type NoopCompareHooks struct{}

func (NoopCompareHooks) OnCompare(context.Context, string, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sortHooks    SortHooks    = NoopSortHooks{}
	compareHooks CompareHooks = NoopCompareHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetSortHooks registers custom sort hooks.
// This should be called once at application startup before any sorting.
func SetSortHooks(h SortHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sortHooks = h
	}
}

// SetCompareHooks registers custom comparator hooks.
// This should be called once at application startup before any comparisons.
func SetCompareHooks(h CompareHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		compareHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache use.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Sort returns the registered sort hooks.
func Sort() SortHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sortHooks
}

// Compare returns the registered comparator hooks.
func Compare() CompareHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return compareHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sortHooks = NoopSortHooks{}
	compareHooks = NoopCompareHooks{}
	cacheHooks = NoopCacheHooks{}
}
