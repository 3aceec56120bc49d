// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nodeq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// DefaultPoolCapacity is the number of nodes NewMPMC/NewMPSC pre-populate
// the free list with when no explicit capacity is given.
const DefaultPoolCapacity = 65536

// MPMC is a Michael–Scott style multi-producer multi-consumer queue: an
// intrusive singly-linked list with separate head and tail atomics, backed
// by a lock-free node pool. Enqueue never fails; TryDequeue reports
// emptiness instead of blocking. The queue has no capacity limit of its
// own — the pool merely recycles node storage to avoid steady-state
// allocation.
type MPMC[T any] struct {
	_    pad
	tail atomix.Pointer[node[T]]
	_    pad
	head atomix.Pointer[node[T]]
	_    pad
	pool freeList[T]
}

// NewMPMC constructs an empty queue with a pre-populated pool. capacity
// defaults to DefaultPoolCapacity when omitted; passing 0 starts with an
// empty pool, with every node allocated lazily on first use. Only the
// first variadic argument is consulted.
func NewMPMC[T any](capacity ...int) *MPMC[T] {
	n := DefaultPoolCapacity
	if len(capacity) > 0 {
		n = capacity[0]
	}
	if n < 0 {
		panic("nodeq: capacity must be >= 0")
	}

	q := &MPMC[T]{}
	dummy := newNode[T]()
	q.head.StoreRelaxed(dummy)
	q.tail.StoreRelaxed(dummy)
	q.pool.grow(n)
	return q
}

// obtain returns a node from the pool, or a freshly allocated one on miss.
func (q *MPMC[T]) obtain() *node[T] {
	if n, ok := q.pool.pop(); ok {
		return n
	}
	return newNode[T]()
}

// link publishes n as the new tail, carrying value. prev is the node that
// was at tail before the exchange, unshared with any other producer
// because the exchange on tail gives each producer a unique prev.
func (q *MPMC[T]) link(n *node[T], value T) {
	n.value = value
	n.next.StoreRelaxed(nil)
	prev := q.tail.SwapAcqRel(n)
	prev.next.StoreRelaxed(n)
}

// Enqueue adds value to the queue. It never fails: on a pool miss it
// allocates a fresh node.
func (q *MPMC[T]) Enqueue(value T) {
	q.link(q.obtain(), value)
}

// TryEnqueue adds value to the queue without allocating. It reports false
// if the pool is empty, leaving value undelivered — the back-pressure hook
// for callers that want to avoid the allocator on the hot path.
func (q *MPMC[T]) TryEnqueue(value T) bool {
	n, ok := q.pool.pop()
	if !ok {
		return false
	}
	q.link(n, value)
	return true
}

// TryDequeue removes and returns the value at the front of the queue. It
// reports false if the queue was observed empty. A concurrent Enqueue that
// has swung tail but not yet linked prev.next can also cause a spurious
// empty observation; the caller's own retry resolves it, as spec'd.
func (q *MPMC[T]) TryDequeue() (T, bool) {
	sw := spin.Wait{}
	for {
		h := q.head.LoadRelaxed()
		t := h.refcnt.LoadRelaxed()
		if t == 0 {
			// h is a ghost mid-recycle elsewhere; wait it out.
			sw.Once()
			continue
		}
		if !h.refcnt.CompareAndSwapRelaxed(t, t+1) {
			continue
		}

		nh := h.next.LoadRelaxed()
		if nh == nil {
			q.pool.releaseRef(h)
			var zero T
			return zero, false
		}

		value := nh.value
		if q.head.CompareAndSwapRelaxed(h, nh) {
			// releaseRef drops our tentative reference; push then drops
			// the reference the queue held on h. Producers never reach h
			// again, but another consumer that bumped h's refcnt before
			// this CAS may still hold a tentative reference: push then
			// only decrements, and that consumer's releaseRef, after its
			// own head CAS fails, is the one that republishes h.
			q.pool.releaseRef(h)
			q.pool.push(h)
			return value, true
		}
		q.pool.releaseRef(h)
		sw.Once()
	}
}

// Cap reports the free list's current depth. It is purely informational —
// Enqueue never blocks on it, the pool grows past it on demand.
func (q *MPMC[T]) Cap() int {
	return q.pool.len()
}

// Close drops the queue's internal references. It is not safe to call
// concurrently with any other operation on the queue; Go's garbage
// collector reclaims an MPMC's storage without it, but Close gives callers
// that want an explicit lifecycle boundary one.
func (q *MPMC[T]) Close() {
	q.pool.top.StoreRelaxed(nil)
	q.head.StoreRelaxed(nil)
	q.tail.StoreRelaxed(nil)
}
