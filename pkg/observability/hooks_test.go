package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Sort hooks
	s := NoopSortHooks{}
	s.OnSortStart(ctx, "stabilized", 8)
	s.OnSortComplete(ctx, "stabilized", 8, time.Second, nil)
	s.OnRankStart(ctx, 8)
	s.OnRankComplete(ctx, 8, time.Second, nil)

	// Compare hooks
	cmp := NoopCompareHooks{}
	cmp.OnCompare(ctx, "class", "id", time.Millisecond, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "compare")
	c.OnCacheMiss(ctx, "compare")
	c.OnCacheSet(ctx, "compare", 64)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Sort().(NoopSortHooks); !ok {
		t.Error("Sort() should return NoopSortHooks by default")
	}
	if _, ok := Compare().(NoopCompareHooks); !ok {
		t.Error("Compare() should return NoopCompareHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customSort := &testSortHooks{}
	SetSortHooks(customSort)
	if Sort() != customSort {
		t.Error("SetSortHooks should set custom hooks")
	}

	customCompare := &testCompareHooks{}
	SetCompareHooks(customCompare)
	if Compare() != customCompare {
		t.Error("SetCompareHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Sort().(NoopSortHooks); !ok {
		t.Error("Reset() should restore NoopSortHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSortHooks{}
	SetSortHooks(custom)

	// Setting nil should be ignored
	SetSortHooks(nil)

	if Sort() != custom {
		t.Error("SetSortHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSortHooks struct{ NoopSortHooks }
type testCompareHooks struct{ NoopCompareHooks }
type testCacheHooks struct{ NoopCacheHooks }
