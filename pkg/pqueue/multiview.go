package pqueue

import (
	"context"
	"errors"
)

// ErrUnknownView is returned when a pop or peek names a view that was not
// declared at construction time. The view set is closed; it never grows
// after NewMultiView.
var ErrUnknownView = errors.New("unknown view")

// View identifies one priority ordering of a MultiView. Callers define
// their own View constants alongside the comparators they register.
type View int

// Item wraps a payload with the unique, monotonically increasing ID the
// MultiView assigned on push. Items are shared between all per-view heaps
// and are never mutated after creation; view comparators may use the ID as
// a final deterministic tie-break.
type Item[T any] struct {
	ID      uint64
	Payload T
}

// ViewSpec declares one view and the comparator that orders it.
type ViewSpec[T any] struct {
	View    View
	Compare CompareFunc[Item[T]]
}

// MultiView presents one logical item set through several independent
// priority orderings. Deleting an item is O(1): the ID is only struck from
// the liveness set, and each view's heap discards the stale wrapper the
// next time it surfaces.
type MultiView[T any] struct {
	queues map[View]*Queue[Item[T]]
	live   map[uint64]struct{}
	nextID uint64
}

// NewMultiView creates a multi-view queue with the given fixed view set.
func NewMultiView[T any](views []ViewSpec[T]) *MultiView[T] {
	m := &MultiView[T]{
		queues: make(map[View]*Queue[Item[T]], len(views)),
		live:   make(map[uint64]struct{}),
	}
	for _, v := range views {
		m.queues[v.View] = NewQueue(v.Compare)
	}
	return m
}

// Len returns the number of live items.
func (m *MultiView[T]) Len() int { return len(m.live) }

// Push wraps the payload in a fresh item, marks it live, and pushes it into
// every view. Cost is O(views · log n) comparator calls.
func (m *MultiView[T]) Push(ctx context.Context, payload T) (Item[T], error) {
	item := Item[T]{ID: m.nextID, Payload: payload}
	m.nextID++
	m.live[item.ID] = struct{}{}
	for _, q := range m.queues {
		if err := q.Push(ctx, item); err != nil {
			return Item[T]{}, err
		}
	}
	return item, nil
}

// Pop removes and returns the live minimum of the chosen view. Stale
// wrappers left behind by deletions or pops through other views are
// discarded along the way. The boolean is false when the view holds no
// live item.
func (m *MultiView[T]) Pop(ctx context.Context, v View) (T, bool, error) {
	var zero T
	q, ok := m.queues[v]
	if !ok {
		return zero, false, ErrUnknownView
	}
	for {
		item, ok, err := q.Pop(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			return zero, false, nil
		}
		if _, alive := m.live[item.ID]; !alive {
			continue
		}
		delete(m.live, item.ID)
		return item.Payload, true, nil
	}
}

// Peek returns the live minimum of the chosen view without consuming it.
// Dead wrappers found on top are physically removed from this view; the
// first live one stays in place.
func (m *MultiView[T]) Peek(ctx context.Context, v View) (T, bool, error) {
	var zero T
	q, ok := m.queues[v]
	if !ok {
		return zero, false, ErrUnknownView
	}
	for {
		item, ok := q.Peek()
		if !ok {
			return zero, false, nil
		}
		if _, alive := m.live[item.ID]; alive {
			return item.Payload, true, nil
		}
		if _, _, err := q.Pop(ctx); err != nil {
			return zero, false, err
		}
	}
}

// Delete marks the ID as not live. No heap is touched; each view drops the
// stale wrapper lazily. Deleting an unknown or already-dead ID is a no-op.
func (m *MultiView[T]) Delete(id uint64) {
	delete(m.live, id)
}
