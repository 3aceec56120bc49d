// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nodeq

// MPSC is a multi-producer single-consumer specialization of MPMC. It
// inherits Enqueue/TryEnqueue unchanged — producers are still many and
// unaware of the single-consumer discipline — but its own TryDequeue
// drops the refcount dance entirely, since there is never a second
// goroutine racing to advance head, and it adds Rewind, a consumer-side
// push-back that is unsafe to provide on the general MPMC shape.
//
// Exactly one goroutine may call TryDequeue or Rewind on a given MPSC at
// a time. Violating that is undefined behavior and is not detected.
type MPSC[T any] struct {
	*MPMC[T]
}

// NewMPSC constructs an empty queue with a pre-populated pool. capacity
// defaults to DefaultPoolCapacity when omitted; passing 0 starts with an
// empty pool.
func NewMPSC[T any](capacity ...int) *MPSC[T] {
	return &MPSC[T]{MPMC: NewMPMC[T](capacity...)}
}

// TryDequeue removes and returns the value at the front of the queue. It
// reports false if the queue was observed empty. Because the caller is
// the sole consumer, head is read and written without any refcount
// acquire: no other goroutine can be mid-advance on it.
func (q *MPSC[T]) TryDequeue() (T, bool) {
	h := q.head.LoadRelaxed()
	nh := h.next.LoadRelaxed()
	if nh == nil {
		var zero T
		return zero, false
	}
	value := nh.value
	q.head.StoreRelaxed(nh)
	q.pool.push(h)
	return value, true
}

// Rewind pushes value back onto the front of the queue, so the next
// TryDequeue delivers it. It is a consumer-side operation: the current
// head (the dummy) becomes a live-payload node carrying value, a fresh
// node becomes the new dummy ahead of it. Not safe to call concurrently
// with anything else touching this queue's head.
func (q *MPSC[T]) Rewind(value T) {
	n := q.obtain()
	h := q.head.LoadRelaxed()
	h.value = value
	n.next.StoreRelaxed(h)
	q.head.StoreRelaxed(n)
}
