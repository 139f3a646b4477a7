package guardedqueue

import "sync"

// noCopy may be embedded into structs which must not be copied after first
// use. go vet's copylocks check reports violations.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Lock is the common interface of ReadLock and WriteLock. Operations that are
// valid under either mode accept it. Only handles issued by this package
// satisfy the interface.
type Lock interface {
	owner() *sync.RWMutex
}

// ReadLock proves that its holder currently holds a queue's mutex in shared
// mode. A handle must not be copied and must not be shared between
// goroutines; each goroutine acquires its own.
type ReadLock struct {
	noCopy noCopy
	mu     *sync.RWMutex
}

func (l *ReadLock) owner() *sync.RWMutex {
	if l == nil {
		return nil
	}
	return l.mu
}

// Release drops the shared hold on the issuing queue's mutex. The handle is
// invalid afterwards; presenting it to any accessor panics.
func (l *ReadLock) Release() {
	if l == nil || l.mu == nil {
		panic("guardedqueue: release of released ReadLock")
	}
	mu := l.mu
	l.mu = nil
	mu.RUnlock()
}

// WriteLock proves that its holder currently holds a queue's mutex
// exclusively. The same copy and sharing rules as for ReadLock apply.
type WriteLock struct {
	noCopy noCopy
	mu     *sync.RWMutex
}

func (l *WriteLock) owner() *sync.RWMutex {
	if l == nil {
		return nil
	}
	return l.mu
}

// Release drops the exclusive hold on the issuing queue's mutex. The handle
// is invalid afterwards; presenting it to any accessor panics.
func (l *WriteLock) Release() {
	if l == nil || l.mu == nil {
		panic("guardedqueue: release of released WriteLock")
	}
	mu := l.mu
	l.mu = nil
	mu.Unlock()
}
