package guardedqueue_test

import (
	"fmt"

	guardedqueue "github.com/timzifer/guarded_queue"
)

func Example() {
	q := guardedqueue.New[string]()

	wl := q.AcquireWriteLock()
	q.Push("first", wl)
	q.Push("second", wl)
	wl.Release()

	rl := q.AcquireReadLock()
	fmt.Println(q.Size(rl), q.Front(rl))
	rl.Release()

	// Output:
	// 2 first
}

func ExampleQueue_AcquireIterableView() {
	q := guardedqueue.New(guardedqueue.WithInitial(1, 2, 3))

	rl := q.AcquireReadLock()
	defer rl.Release()

	view := q.AcquireIterableView(rl)
	for v := range view.Values() {
		fmt.Println(v)
	}

	// Output:
	// 1
	// 2
	// 3
}
