// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nodeq

import "code.hybscloud.com/atomix"

// node is the intrusive cell shared by the free list and the queue. The
// same cell alternates roles over its lifetime: a queue link while chained
// between a Queue's head and tail, a free-list link while reachable from a
// FreeList's top.
//
// refcnt gates two things at once: whether the node is currently visible
// from a FreeList top (refcnt == 0 only in the momentary ghost window
// inside releaseRef, between the decrement that leaves the caller as sole
// owner and the store of 1 after the republishing CAS), and whether a
// goroutine reading next may trust it to be stable. It must never be
// incremented from zero by anything other than the pusher's own
// CAS-then-store sequence in releaseRef.
type node[T any] struct {
	next   atomix.Pointer[node[T]]
	refcnt atomix.Int32
	value  T
}

// newNode allocates a node with refcnt already set to 1, matching the
// "owned outside the pool" state a freshly constructed node starts in.
func newNode[T any]() *node[T] {
	n := &node[T]{}
	n.refcnt.StoreRelaxed(1)
	return n
}
