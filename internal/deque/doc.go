// Package deque provides an unsynchronized generic double-ended queue backed
// by a doubly linked list.
//
// The deque performs no locking of its own. It is owned by a guarded queue
// whose reader/writer mutex is the single synchronization point, and it is
// reachable only through accessors that validate a held lock handle first.
// Element storage is per node, so pointers returned by Front and Back stay
// valid until the element they address is popped.
package deque
