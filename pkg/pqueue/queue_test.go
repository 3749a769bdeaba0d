package pqueue

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func intCompare(_ context.Context, a, b int) (int, error) { return a - b, nil }

func TestQueuePopOrder(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(intCompare)

	input := []int{5, 3, 8, 1, 9, 2, 7}
	for _, v := range input {
		if err := q.Push(ctx, v); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	if q.Len() != len(input) {
		t.Fatalf("Len = %d, want %d", q.Len(), len(input))
	}

	prev := -1
	for {
		v, ok, err := q.Pop(ctx)
		if err != nil {
			t.Fatalf("Pop: %v", err)
		}
		if !ok {
			break
		}
		if v < prev {
			t.Errorf("popped %d after %d, order not non-decreasing", v, prev)
		}
		prev = v
	}
	if q.Len() != 0 {
		t.Errorf("Len after draining = %d", q.Len())
	}
}

func TestQueueRandomized(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))
	q := NewQueue(intCompare)

	pushes := 0
	for i := 0; i < 500; i++ {
		if rng.Intn(3) < 2 {
			if err := q.Push(ctx, rng.Intn(100)); err != nil {
				t.Fatalf("Push: %v", err)
			}
			pushes++
		} else {
			before := q.Len()
			_, ok, err := q.Pop(ctx)
			if err != nil {
				t.Fatalf("Pop: %v", err)
			}
			if ok != (before > 0) {
				t.Fatalf("Pop ok=%v with len=%d", ok, before)
			}
			if ok {
				pushes--
			}
		}
		if q.Len() != pushes {
			t.Fatalf("Len = %d, want %d", q.Len(), pushes)
		}
	}
}

func TestQueueEmpty(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(intCompare)

	if _, ok, err := q.Pop(ctx); ok || err != nil {
		t.Errorf("Pop on empty: ok=%v err=%v", ok, err)
	}
	if _, ok := q.Peek(); ok {
		t.Error("Peek on empty should report false")
	}
}

func TestQueuePeekDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(intCompare)
	for _, v := range []int{4, 2, 6} {
		if err := q.Push(ctx, v); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	v, ok := q.Peek()
	if !ok || v != 2 {
		t.Fatalf("Peek = %d, %v; want 2, true", v, ok)
	}
	if q.Len() != 3 {
		t.Errorf("Peek consumed an item: len=%d", q.Len())
	}
}

func TestQueueComparatorError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	q := NewQueue(func(context.Context, int, int) (int, error) { return 0, boom })

	if err := q.Push(ctx, 1); err != nil {
		t.Fatalf("first push needs no comparison: %v", err)
	}
	if err := q.Push(ctx, 2); !errors.Is(err, boom) {
		t.Errorf("Push error = %v, want %v", err, boom)
	}
}

func TestMultiViewPopSkipsDeleted(t *testing.T) {
	ctx := context.Background()
	const (
		asc View = iota
		desc
	)
	m := NewMultiView([]ViewSpec[int]{
		{View: asc, Compare: func(_ context.Context, a, b Item[int]) (int, error) { return a.Payload - b.Payload, nil }},
		{View: desc, Compare: func(_ context.Context, a, b Item[int]) (int, error) { return b.Payload - a.Payload, nil }},
	})

	var items []Item[int]
	for _, v := range []int{10, 30, 20} {
		it, err := m.Push(ctx, v)
		if err != nil {
			t.Fatalf("Push: %v", err)
		}
		items = append(items, it)
	}
	if m.Len() != 3 {
		t.Fatalf("Len = %d, want 3", m.Len())
	}

	// Delete the ascending minimum; both views must skip it.
	m.Delete(items[0].ID)
	if m.Len() != 2 {
		t.Fatalf("Len after delete = %d, want 2", m.Len())
	}

	v, ok, err := m.Pop(ctx, asc)
	if err != nil || !ok || v != 20 {
		t.Fatalf("Pop(asc) = %d, %v, %v; want 20", v, ok, err)
	}

	// The item popped through asc is gone from desc as well.
	v, ok, err = m.Pop(ctx, desc)
	if err != nil || !ok || v != 30 {
		t.Fatalf("Pop(desc) = %d, %v, %v; want 30", v, ok, err)
	}

	if _, ok, _ := m.Pop(ctx, asc); ok {
		t.Error("queue should be exhausted")
	}
}

func TestMultiViewPeek(t *testing.T) {
	ctx := context.Background()
	const asc View = 0
	m := NewMultiView([]ViewSpec[int]{
		{View: asc, Compare: func(_ context.Context, a, b Item[int]) (int, error) { return a.Payload - b.Payload, nil }},
	})

	first, err := m.Push(ctx, 1)
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if _, err := m.Push(ctx, 2); err != nil {
		t.Fatalf("Push: %v", err)
	}

	m.Delete(first.ID)
	v, ok, err := m.Peek(ctx, asc)
	if err != nil || !ok || v != 2 {
		t.Fatalf("Peek = %d, %v, %v; want 2", v, ok, err)
	}
	// Peek never consumes the live top.
	if m.Len() != 1 {
		t.Errorf("Len after peek = %d, want 1", m.Len())
	}
	if v, ok, _ := m.Pop(ctx, asc); !ok || v != 2 {
		t.Errorf("Pop after peek = %d, %v; want 2", v, ok)
	}
}

func TestMultiViewUnknownView(t *testing.T) {
	ctx := context.Background()
	m := NewMultiView[int](nil)
	if _, _, err := m.Pop(ctx, View(99)); !errors.Is(err, ErrUnknownView) {
		t.Errorf("Pop unknown view: %v", err)
	}
	if _, _, err := m.Peek(ctx, View(99)); !errors.Is(err, ErrUnknownView) {
		t.Errorf("Peek unknown view: %v", err)
	}
}
