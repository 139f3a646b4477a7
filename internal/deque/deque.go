package deque

import "iter"

type node[T any] struct {
	value T
	prev  *node[T]
	next  *node[T]
}

// Deque is a doubly linked double-ended queue. It is not safe for concurrent
// use; callers serialise access externally.
type Deque[T any] struct {
	head *node[T]
	tail *node[T]
	len  int
}

func New[T any]() *Deque[T] {
	return &Deque[T]{}
}

func (d *Deque[T]) PushBack(value T) {
	n := &node[T]{value: value}
	if d.len == 0 {
		d.head = n
		d.tail = n
	} else {
		n.prev = d.tail
		d.tail.next = n
		d.tail = n
	}
	d.len++
}

func (d *Deque[T]) PopFront() (zero T, _ bool) {
	if d.len == 0 {
		return zero, false
	}

	current := d.head
	next := current.next
	if next != nil {
		next.prev = nil
	} else {
		d.tail = nil
	}
	d.head = next
	d.len--

	current.next = nil
	current.prev = nil

	return current.value, true
}

// Front returns a pointer to the first element, or nil if the deque is empty.
func (d *Deque[T]) Front() *T {
	if d.head == nil {
		return nil
	}
	return &d.head.value
}

// Back returns a pointer to the last element, or nil if the deque is empty.
func (d *Deque[T]) Back() *T {
	if d.tail == nil {
		return nil
	}
	return &d.tail.value
}

func (d *Deque[T]) Len() int {
	return d.len
}

// Values iterates the live contents front to back. The deque must not be
// mutated while iterating.
func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := d.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Refs is like Values but yields pointers into the element storage so the
// caller can mutate elements in place.
func (d *Deque[T]) Refs() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for n := d.head; n != nil; n = n.next {
			if !yield(&n.value) {
				return
			}
		}
	}
}
