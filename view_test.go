package guardedqueue

import "testing"

func TestIterableViewMatchesDrainOrder(t *testing.T) {
	values := []int{4, 8, 15, 16, 23, 42}

	viewed := New(WithInitial(values...))
	drained := New(WithInitial(values...))

	rl := viewed.AcquireReadLock()
	view := viewed.AcquireIterableView(rl)

	var enumerated []int
	for v := range view.Values() {
		enumerated = append(enumerated, v)
	}
	rl.Release()

	wl := drained.AcquireWriteLock()
	var popped []int
	for !drained.Empty(wl) {
		popped = append(popped, drained.Pop(wl))
	}
	wl.Release()

	if len(enumerated) != len(popped) {
		t.Fatalf("view enumerated %v but drain produced %v", enumerated, popped)
	}
	for i, want := range popped {
		if enumerated[i] != want {
			t.Fatalf("unexpected value at %d: view saw %d, drain saw %d", i, enumerated[i], want)
		}
	}
}

func TestIterableViewEarlyStop(t *testing.T) {
	q := New(WithInitial(1, 2, 3, 4))

	rl := q.AcquireReadLock()
	defer rl.Release()

	count := 0
	for range q.AcquireIterableView(rl).Values() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected iteration to stop after 2 values, got %d", count)
	}
}

func TestIterableWriteViewMutatesThroughRefs(t *testing.T) {
	q := New(WithInitial(1, 2, 3))

	wl := q.AcquireWriteLock()
	defer wl.Release()

	view := q.AcquireIterableWriteView(wl)
	for ref := range view.Refs() {
		*ref *= 10
	}

	var got []int
	for v := range view.Values() {
		got = append(got, v)
	}
	expected := []int{10, 20, 30}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i, want := range expected {
		if got[i] != want {
			t.Fatalf("unexpected value at %d: got %d want %d", i, got[i], want)
		}
	}
}

func TestViewAfterHandleReleasePanics(t *testing.T) {
	q := New(WithInitial(1))

	rl := q.AcquireReadLock()
	view := q.AcquireIterableView(rl)
	rl.Release()

	expectPanic(t, "view used after handle release", func() { view.Values() })

	wl := q.AcquireWriteLock()
	writeView := q.AcquireIterableWriteView(wl)
	wl.Release()

	expectPanic(t, "write view used after handle release", func() { writeView.Refs() })
}

func TestViewAcquisitionRejectsForeignHandle(t *testing.T) {
	a := New(WithInitial(1))
	b := New(WithInitial(2))

	rl := a.AcquireReadLock()
	expectPanic(t, "read view from foreign handle", func() { b.AcquireIterableView(rl) })
	rl.Release()

	wl := a.AcquireWriteLock()
	expectPanic(t, "write view from foreign handle", func() { b.AcquireIterableWriteView(wl) })
	wl.Release()
}
