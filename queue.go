// Package guardedqueue provides a FIFO queue whose accessors demand proof of
// lock ownership. Every operation takes a lock handle previously acquired
// from the same queue instance and validates that the handle belongs to that
// instance, so calling a shared container while holding the wrong mutex, or
// none at all, surfaces as an immediate panic at the call site instead of as
// a data race.
package guardedqueue

import (
	"sync"
	"time"

	"github.com/timzifer/guarded_queue/internal/deque"
	"github.com/timzifer/guarded_queue/internal/telemetry"
)

// Queue is a generic FIFO queue behind a reader/writer mutex. The mutex is
// never exposed; it is reachable only through the handles the queue issues.
//
// Fairness follows sync.RWMutex, which is writer-preferring: once a goroutine
// blocks in AcquireWriteLock, later AcquireReadLock calls wait until that
// writer got its turn, so continuous reader arrivals cannot starve a writer.
type Queue[T any] struct {
	mu    sync.RWMutex
	items *deque.Deque[T]
	opts  options[T]
}

// New creates a queue. Options may seed initial contents and configure
// logging.
func New[T any](opts ...Option[T]) *Queue[T] {
	q := &Queue[T]{
		items: deque.New[T](),
		opts:  defaultOptions[T](),
	}
	for _, opt := range opts {
		opt(&q.opts)
	}
	for _, v := range q.opts.initial {
		q.items.PushBack(v)
	}
	return q
}

// check validates that the handle was issued by this queue and is still held.
func (q *Queue[T]) check(lk Lock) {
	if lk == nil {
		q.fail("nil lock handle")
	}
	switch lk.owner() {
	case &q.mu:
	case nil:
		q.fail("lock handle already released")
	default:
		q.fail("lock handle issued by a different queue")
	}
}

func (q *Queue[T]) fail(msg string) {
	q.opts.logger.Error().Msg(msg)
	panic("guardedqueue: " + msg)
}

// --- read ---

// Front returns the oldest element. Valid under either lock mode; panics on
// an empty queue, so callers check Empty or Size first.
func (q *Queue[T]) Front(lk Lock) T {
	q.check(lk)
	front := q.items.Front()
	if front == nil {
		q.fail("Front called on empty queue")
	}
	return *front
}

// Back returns the newest element. Valid under either lock mode; panics on an
// empty queue.
func (q *Queue[T]) Back(lk Lock) T {
	q.check(lk)
	back := q.items.Back()
	if back == nil {
		q.fail("Back called on empty queue")
	}
	return *back
}

// Empty reports whether the queue holds no elements. Valid under either lock
// mode.
func (q *Queue[T]) Empty(lk Lock) bool {
	q.check(lk)
	return q.items.Len() == 0
}

// Size returns the current number of elements. Valid under either lock mode.
func (q *Queue[T]) Size(lk Lock) int {
	q.check(lk)
	return q.items.Len()
}

// --- write ---

// FrontRef returns a pointer to the oldest element for in-place mutation.
// Requires the write handle; panics on an empty queue. The pointer stays
// valid until the element is popped.
func (q *Queue[T]) FrontRef(lk *WriteLock) *T {
	q.check(lk)
	front := q.items.Front()
	if front == nil {
		q.fail("FrontRef called on empty queue")
	}
	return front
}

// BackRef returns a pointer to the newest element for in-place mutation.
// Requires the write handle; panics on an empty queue.
func (q *Queue[T]) BackRef(lk *WriteLock) *T {
	q.check(lk)
	back := q.items.Back()
	if back == nil {
		q.fail("BackRef called on empty queue")
	}
	return back
}

// Push appends value at the back. Views acquired earlier in the same critical
// section must not be iterated after a Push.
func (q *Queue[T]) Push(value T, lk *WriteLock) {
	q.check(lk)
	q.items.PushBack(value)
}

// Pop removes and returns the front element. Panics on an empty queue.
func (q *Queue[T]) Pop(lk *WriteLock) T {
	q.check(lk)
	value, ok := q.items.PopFront()
	if !ok {
		q.fail("Pop called on empty queue")
	}
	return value
}

// --- locks ---

// AcquireReadLock blocks until the mutex grants shared access and returns a
// handle bound to this queue. Any number of read handles may coexist.
func (q *Queue[T]) AcquireReadLock() *ReadLock {
	finish := telemetry.TraceAcquire(telemetry.ModeRead)
	q.mu.RLock()
	q.warnContention("read", finish())
	return &ReadLock{mu: &q.mu}
}

// AcquireWriteLock blocks until the mutex grants exclusive access and returns
// a handle bound to this queue. While it is held there is no other handle,
// read or write.
func (q *Queue[T]) AcquireWriteLock() *WriteLock {
	finish := telemetry.TraceAcquire(telemetry.ModeWrite)
	q.mu.Lock()
	q.warnContention("write", finish())
	return &WriteLock{mu: &q.mu}
}

// TryAcquireReadLock acquires a read handle without blocking. It returns
// false when the mutex is not immediately available in shared mode.
func (q *Queue[T]) TryAcquireReadLock() (*ReadLock, bool) {
	if !q.mu.TryRLock() {
		return nil, false
	}
	telemetry.TraceAcquire(telemetry.ModeRead)()
	return &ReadLock{mu: &q.mu}, true
}

// TryAcquireWriteLock acquires a write handle without blocking. It returns
// false when the mutex is not immediately available exclusively.
func (q *Queue[T]) TryAcquireWriteLock() (*WriteLock, bool) {
	if !q.mu.TryLock() {
		return nil, false
	}
	telemetry.TraceAcquire(telemetry.ModeWrite)()
	return &WriteLock{mu: &q.mu}, true
}

func (q *Queue[T]) warnContention(mode string, waited time.Duration) {
	if q.opts.contentionWarning <= 0 || waited < q.opts.contentionWarning {
		return
	}
	q.opts.logger.Warn().
		Str("mode", mode).
		Dur("waited", waited).
		Msg("slow lock acquisition")
}
