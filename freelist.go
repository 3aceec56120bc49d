// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nodeq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// freeList is a lock-free LIFO stack of recycled nodes. Its Pop uses a
// refcount-guarded acquire on the top node to close the classic Treiber
// ABA window without hazard pointers or epochs: once a popper has bumped a
// node's refcnt above one, no concurrent pusher can complete a push of
// that node (a push requires the refcnt to have already hit zero and then
// be observed at 1 again after republication), so the popper's read of
// next is stable for the duration of its critical window.
type freeList[T any] struct {
	_    pad
	top  atomix.Pointer[node[T]]
	_    pad
	size atomix.Int64 // informational depth, see (*freeList[T]).len
}

// releaseRef drops n's reference count. If the count was not 1, some other
// party still holds a reference and n is left alone. Otherwise the caller
// is the sole owner and must republish n to the pool: next is repaired to
// point at the current top before the CAS that makes n visible there again,
// which is safe because n is not visible to anyone else until that CAS
// succeeds.
func (fl *freeList[T]) releaseRef(n *node[T]) {
	if n.refcnt.AddRelaxed(-1) != 0 {
		return
	}
	for {
		t := fl.top.LoadRelaxed()
		n.next.StoreRelaxed(t)
		if fl.top.CompareAndSwapRelease(t, n) {
			n.refcnt.StoreRelaxed(1)
			fl.size.AddRelaxed(1)
			return
		}
	}
}

// push returns n to the pool. Callers must hold the last reference to n
// (refcnt == 1 on entry); push is just releaseRef under another name, kept
// distinct for call-site clarity between "I'm done with my reference" and
// "I'm handing this node back."
func (fl *freeList[T]) push(n *node[T]) {
	fl.releaseRef(n)
}

// pop removes and returns a node from the pool, or reports false if empty.
func (fl *freeList[T]) pop() (*node[T], bool) {
	sw := spin.Wait{}
	for {
		u := fl.top.LoadAcquire()
		if u == nil {
			return nil, false
		}

		t := u.refcnt.LoadRelaxed()
		if t == 0 {
			// u is a ghost: popped by another goroutine, awaiting
			// republication. Wait for that goroutine's releaseRef.
			sw.Once()
			continue
		}

		if !u.refcnt.CompareAndSwapRelaxed(t, t+1) {
			continue
		}

		nv := u.next.LoadRelaxed()
		if fl.top.CompareAndSwapRelaxed(u, nv) {
			fl.size.AddRelaxed(-1)
			fl.releaseRef(u)
			return u, true
		}
		fl.releaseRef(u)
		sw.Once()
	}
}

// grow pre-populates the pool with n freshly allocated nodes.
func (fl *freeList[T]) grow(n int) {
	for i := 0; i < n; i++ {
		fl.push(newNode[T]())
	}
}

// len reports the free list's current depth. Informational only — under
// concurrent push/pop the value can be stale by the time the caller reads
// it.
func (fl *freeList[T]) len() int {
	return int(fl.size.LoadRelaxed())
}
