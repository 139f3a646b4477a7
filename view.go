package guardedqueue

import "iter"

// IterableView is a read-only iteration surface over a queue's live contents.
// It borrows the handle it was acquired with and is valid only while that
// handle stays held; it never outlives the critical section.
type IterableView[T any] struct {
	queue *Queue[T]
	lock  *ReadLock
}

// AcquireIterableView returns a read-only view over the current contents.
// The handle must have been issued by this queue.
func (q *Queue[T]) AcquireIterableView(lk *ReadLock) IterableView[T] {
	q.check(lk)
	return IterableView[T]{queue: q, lock: lk}
}

// Values iterates the live contents front to back, not a copy. The handle
// identity is re-checked when the sequence is produced, so iterating a view
// whose handle was released panics instead of reading unlocked state.
func (v IterableView[T]) Values() iter.Seq[T] {
	v.queue.check(v.lock)
	return v.queue.items.Values()
}

// IterableWriteView is like IterableView but is acquired from a write handle
// and additionally allows mutating the elements in place.
type IterableWriteView[T any] struct {
	queue *Queue[T]
	lock  *WriteLock
}

// AcquireIterableWriteView returns a read-write view over the current
// contents. The handle must have been issued by this queue.
func (q *Queue[T]) AcquireIterableWriteView(lk *WriteLock) IterableWriteView[T] {
	q.check(lk)
	return IterableWriteView[T]{queue: q, lock: lk}
}

// Values iterates the live contents front to back.
func (v IterableWriteView[T]) Values() iter.Seq[T] {
	v.queue.check(v.lock)
	return v.queue.items.Values()
}

// Refs yields pointers to the elements for in-place mutation. The queue must
// not be pushed to or popped from while iterating.
func (v IterableWriteView[T]) Refs() iter.Seq[*T] {
	v.queue.check(v.lock)
	return v.queue.items.Refs()
}
