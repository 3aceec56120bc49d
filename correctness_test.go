// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Lock-free algorithm tests excluded from race detection.
//
// Go's race detector tracks explicit synchronization primitives (mutex,
// channels, WaitGroup) but cannot observe happens-before relationships
// established through atomic memory orderings (acquire-release semantics).
// The free list and MPMC/MPSC dequeue paths rely on exactly that kind of
// ordering between the refcnt and next fields of a node, so the tests in
// this file report false positives under -race and are skipped via
// [nodeq.RaceEnabled]; the algorithms themselves are unaffected.

package nodeq_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/nodeq"
)

// linearizabilityTest enqueues n*producers distinct values from producers
// goroutines and concurrently drains them from the calling goroutine,
// checking each delivered value as it arrives. A queue is linearizable
// under this check if every value appears exactly once and the delivery
// order is consistent with some interleaving of the
// producers' program orders — which for disjoint per-producer ranges
// reduces to: the union is exact, and each producer's own values come out
// increasing.
func linearizabilityTest(t *testing.T, q nodeq.Queue[int], producers, n int) {
	t.Helper()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			base := id * n
			for i := 0; i < n; i++ {
				for !q.TryEnqueue(base + i) {
					// pool momentarily exhausted under contention, spin
				}
			}
		}(p)
	}

	total := producers * n
	seen := make([]bool, total)
	var mu sync.Mutex
	perProducerLast := make([]int, producers)
	for i := range perProducerLast {
		perProducerLast[i] = -1
	}

	deadline := time.Now().Add(30 * time.Second)
	delivered := 0
	for delivered < total {
		v, ok := q.TryDequeue()
		if !ok {
			if time.Now().After(deadline) {
				t.Fatalf("timed out with %d/%d delivered", delivered, total)
			}
			continue
		}
		mu.Lock()
		if v < 0 || v >= total || seen[v] {
			mu.Unlock()
			t.Fatalf("value %d delivered out of range or twice", v)
		}
		seen[v] = true
		owner := v / n
		if v <= perProducerLast[owner] {
			mu.Unlock()
			t.Fatalf("producer %d: value %d delivered out of its own order (last %d)",
				owner, v, perProducerLast[owner])
		}
		perProducerLast[owner] = v
		delivered++
		mu.Unlock()
	}
	wg.Wait()

	for i, ok := range seen {
		if !ok {
			t.Fatalf("value %d never delivered", i)
		}
	}
}

func TestMPMCLinearizability(t *testing.T) {
	if nodeq.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}
	linearizabilityTest(t, nodeq.NewMPMC[int](64), 6, 5000)
}

func TestMPSCLinearizability(t *testing.T) {
	if nodeq.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}
	linearizabilityTest(t, nodeq.NewMPSC[int](64), 6, 5000)
}

// TestMPMCConcurrentABASafety stresses a pool that starts tiny (capacity 2)
// with many producers and consumers so a small set of nodes cycles through
// obtain/link and releaseRef/push thousands of times per second; Enqueue
// allocates a fresh node whenever the pool is empty. If the refcount
// guard ever let a node be handed out while still linked into the chain
// another goroutine is traversing, this manifests as a corrupted value or
// a lost/duplicated delivery.
func TestMPMCConcurrentABASafety(t *testing.T) {
	if nodeq.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}

	q := nodeq.NewMPMC[int64](2)

	const (
		workers  = 16
		duration = 200 * time.Millisecond
	)

	var produced, consumed atomix.Int64
	stop := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				q.Enqueue(1)
				produced.AddRelaxed(1)
			}
		}()
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if v, ok := q.TryDequeue(); ok {
					if v != 1 {
						t.Errorf("dequeued corrupted value %d, want 1", v)
					}
					consumed.AddRelaxed(1)
				}
			}
		}()
	}

	time.Sleep(duration)
	close(stop)
	wg.Wait()

	for {
		if _, ok := q.TryDequeue(); !ok {
			break
		}
		consumed.AddRelaxed(1)
	}

	if produced.LoadRelaxed() != consumed.LoadRelaxed() {
		t.Fatalf("produced %d, consumed %d: lost or duplicated deliveries",
			produced.LoadRelaxed(), consumed.LoadRelaxed())
	}
}
