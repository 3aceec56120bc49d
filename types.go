// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nodeq

// Queue is the combined producer-consumer interface satisfied by both
// *MPMC[T] and *MPSC[T].
//
// The interface intentionally excludes length because an accurate count
// in a lock-free linked structure requires expensive cross-core
// synchronization. Cap reports the free list's depth, a hint about
// steady-state allocation pressure, not a queue length.
//
// Example:
//
//	q := nodeq.NewMPMC[int](1024)
//	q.Enqueue(42)
//	v, ok := q.TryDequeue()
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the interface for adding values to a queue.
type Producer[T any] interface {
	// Enqueue adds value to the queue. It never fails: on a free-list
	// miss it allocates a fresh node.
	//
	// Thread safety: multiple producers are always safe, on both MPMC
	// and MPSC.
	Enqueue(value T)
	// TryEnqueue adds value to the queue without allocating. It reports
	// false if the free list is empty, leaving value undelivered — the
	// back-pressure hook for callers avoiding the allocator.
	TryEnqueue(value T) bool
}

// Consumer is the interface for removing values from a queue.
type Consumer[T any] interface {
	// TryDequeue removes and returns the value at the front of the
	// queue. It reports false if the queue was observed empty.
	//
	// Thread safety: MPMC allows multiple consumers; MPSC allows exactly
	// one, and calling TryDequeue from more than one goroutine on an
	// MPSC is undefined behavior.
	TryDequeue() (T, bool)
}

var (
	_ Queue[int] = (*MPMC[int])(nil)
	_ Queue[int] = (*MPSC[int])(nil)
)
