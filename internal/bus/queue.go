// Package bus provides the ordered, unbounded queue that carries actions from
// many producers (input adapter, ticker, background tasks) to the single
// dispatch loop.
package bus

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Send after Close. Producers treat it as a shutdown
// race: the item is dropped and never retried.
var ErrClosed = errors.New("bus: queue closed")

// Queue is a multi-producer, single-consumer FIFO with no capacity limit.
// Items are delivered strictly in the order Send accepted them.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	head   int
	closed bool

	ready chan struct{}
	done  chan struct{}
}

// New returns an empty, open queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Send appends v to the tail of the queue. It never blocks.
func (q *Queue[T]) Send(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return nil
}

// TryNext removes and returns the head item without blocking.
func (q *Queue[T]) TryNext() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

// Next blocks until an item is available, the queue is closed and drained, or
// ctx is done.
func (q *Queue[T]) Next(ctx context.Context) (T, error) {
	for {
		q.mu.Lock()
		v, ok := q.popLocked()
		closed := q.closed
		q.mu.Unlock()
		if ok {
			return v, nil
		}
		if closed {
			var zero T
			return zero, ErrClosed
		}

		select {
		case <-q.ready:
		case <-q.done:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Len reports the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Close rejects further sends and wakes a blocked consumer. Items already
// queued can still be drained. Close is idempotent.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *Queue[T]) popLocked() (T, bool) {
	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	// Compact once the consumed prefix dominates the backing array.
	if q.head > 32 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return v, true
}
