// Package pqueue provides the comparator-driven priority queues behind the
// ordering engine.
//
// Two containers live here:
//
//   - Queue: a binary min-heap whose ordering is decided by an injected
//     three-way comparator. The comparator receives a context and may fail,
//     which allows orderings that consult a remote model mid-sift.
//   - MultiView: several queues over one logical item set, sharing a
//     liveness set so that deleting an item is O(1) and stale heap entries
//     are reconciled lazily on later pops and peeks.
//
// Neither container is safe for concurrent use. A comparator error aborts
// the surrounding operation and may leave the heap partially sifted; the
// instance must be discarded afterwards.
package pqueue

import "context"

// CompareFunc is a three-way comparator: negative if a sorts before b,
// positive for the reverse, zero for either order. It may block (for
// example on a remote model call) and may fail.
type CompareFunc[T any] func(ctx context.Context, a, b T) (int, error)

// Queue is a binary min-heap under an injected comparator.
// The zero value is not usable; create instances with NewQueue.
type Queue[T any] struct {
	items []T
	cmp   CompareFunc[T]
}

// NewQueue creates an empty queue ordered by cmp.
func NewQueue[T any](cmp CompareFunc[T]) *Queue[T] {
	return &Queue[T]{cmp: cmp}
}

// Len returns the number of items currently held.
func (q *Queue[T]) Len() int { return len(q.items) }

// Push appends the item and sifts it up to its heap position.
// The comparator is invoked once per level traversed.
func (q *Queue[T]) Push(ctx context.Context, item T) error {
	q.items = append(q.items, item)
	return q.siftUp(ctx, len(q.items)-1)
}

// Pop removes and returns the minimum item. The boolean is false when the
// queue is empty.
func (q *Queue[T]) Pop(ctx context.Context) (T, bool, error) {
	var zero T
	n := len(q.items)
	if n == 0 {
		return zero, false, nil
	}
	top := q.items[0]
	q.items[0] = q.items[n-1]
	q.items[n-1] = zero
	q.items = q.items[:n-1]
	if len(q.items) > 0 {
		if err := q.siftDown(ctx, 0); err != nil {
			return zero, false, err
		}
	}
	return top, true, nil
}

// Peek returns the minimum item without removing it. The boolean is false
// when the queue is empty. Peek never invokes the comparator.
func (q *Queue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

func (q *Queue[T]) siftUp(ctx context.Context, i int) error {
	for i > 0 {
		parent := (i - 1) / 2
		c, err := q.cmp(ctx, q.items[i], q.items[parent])
		if err != nil {
			return err
		}
		if c >= 0 {
			return nil
		}
		q.items[i], q.items[parent] = q.items[parent], q.items[i]
		i = parent
	}
	return nil
}

func (q *Queue[T]) siftDown(ctx context.Context, i int) error {
	n := len(q.items)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n {
			c, err := q.cmp(ctx, q.items[left], q.items[smallest])
			if err != nil {
				return err
			}
			if c < 0 {
				smallest = left
			}
		}
		if right < n {
			c, err := q.cmp(ctx, q.items[right], q.items[smallest])
			if err != nil {
				return err
			}
			if c < 0 {
				smallest = right
			}
		}
		if smallest == i {
			return nil
		}
		q.items[i], q.items[smallest] = q.items[smallest], q.items[i]
		i = smallest
	}
}
