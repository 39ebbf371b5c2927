// Package queue provides an unbounded FIFO queue for handing values from a
// single producer goroutine to a single consumer.
//
// Push never blocks. The consumer can poll with TryRecv or block with Recv.
// Close is terminal: values already queued are still delivered, after which
// both receive methods report ErrClosed.
package queue

import (
	"errors"
	"sync"
)

var (
	// ErrClosed is returned by Push after Close, and by the receive methods
	// once the queue is closed and drained.
	ErrClosed = errors.New("queue closed")

	// ErrEmpty is returned by TryRecv when nothing is pending.
	ErrEmpty = errors.New("queue empty")
)

// Queue is an unbounded FIFO queue. The zero value is not usable; use New.
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	head   int
	closed bool
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends v to the queue and wakes a blocked receiver.
func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.items = append(q.items, v)
	q.cond.Signal()
	return nil
}

// TryRecv returns the oldest value without blocking.
func (q *Queue[T]) TryRecv() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.pending() == 0 {
		var zero T
		if q.closed {
			return zero, ErrClosed
		}
		return zero, ErrEmpty
	}
	return q.pop(), nil
}

// Recv blocks until a value is available or the queue is closed and drained.
func (q *Queue[T]) Recv() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.pending() == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.pending() == 0 {
		var zero T
		return zero, ErrClosed
	}
	return q.pop(), nil
}

// Drain removes and returns every pending value in order.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.pending()
	if n == 0 {
		return nil
	}
	out := make([]T, n)
	copy(out, q.items[q.head:])
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
	return out
}

// Close marks the queue closed and wakes every blocked receiver.
// Calling Close more than once is a no-op.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of pending values.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending()
}

func (q *Queue[T]) pending() int {
	return len(q.items) - q.head
}

// pop removes the head value. Caller holds mu and has checked pending() > 0.
func (q *Queue[T]) pop() T {
	var zero T
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++

	// Reclaim the backing array once the consumed prefix dominates.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 32 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return v
}
