// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package nodeq provides intrusive, lock-free, linked-list FIFO queues
// for passing values between goroutines.
//
// Two queue shapes are provided:
//
//   - MPMC: Multi-Producer Multi-Consumer
//   - MPSC: Multi-Producer Single-Consumer, with a consumer-side Rewind
//     (push-back) operation MPMC does not offer
//
// Both are unbounded Michael–Scott queues backed by a lock-free node pool:
// steady-state Enqueue/TryDequeue recycle node storage through the pool
// rather than allocating, and the pool itself grows on demand rather than
// imposing a hard capacity.
//
// # Quick Start
//
//	q := nodeq.NewMPMC[Request](4096)
//	q := nodeq.NewMPSC[Event](4096)
//
// Builder API, when the pool depth needs to be a runtime parameter rather
// than a literal:
//
//	q := nodeq.Build[Event](nodeq.New(4096))                     // → MPMC
//	q := nodeq.Build[Event](nodeq.New(4096).SingleConsumer())     // → MPSC
//
// # Basic Usage
//
//	q := nodeq.NewMPMC[int](1024)
//
//	q.Enqueue(42) // never blocks, never fails
//
//	v, ok := q.TryDequeue()
//	if !ok {
//	    // queue observed empty - retry later
//	}
//
// # Common Patterns
//
// Event Aggregation (MPSC):
//
//	q := nodeq.NewMPSC[Event](4096)
//
//	for sensor := range sensors {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Enqueue(ev)
//	        }
//	    }(sensor)
//	}
//
//	go func() { // single aggregator
//	    backoff := iox.Backoff{}
//	    for {
//	        ev, ok := q.TryDequeue()
//	        if !ok {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        aggregate(ev)
//	    }
//	}()
//
// Requeue-on-failure with Rewind (MPSC only):
//
//	ev, ok := q.TryDequeue()
//	if ok && !process(ev) {
//	    q.Rewind(ev) // try again next pass, ahead of newer events
//	}
//
// Worker Pool (MPMC):
//
//	q := nodeq.NewMPMC[Job](4096)
//
//	for range numWorkers {
//	    go func() {
//	        backoff := iox.Backoff{}
//	        for {
//	            job, ok := q.TryDequeue()
//	            if !ok {
//	                backoff.Wait()
//	                continue
//	            }
//	            backoff.Reset()
//	            job.Run()
//	        }
//	    }()
//	}
//
//	func Submit(j Job) { q.Enqueue(j) }
//
// # Back-pressure
//
// Enqueue never fails — on a pool miss it allocates a fresh node, so a
// sustained burst simply grows the pool's working set instead of
// blocking. TryEnqueue is the alternative for callers that want to avoid
// ever calling into the allocator from a producer goroutine:
//
//	backoff := iox.Backoff{}
//	for !q.TryEnqueue(item) {
//	    backoff.Wait()
//	}
//	backoff.Reset()
//
// # Pool Capacity
//
// NewMPMC and NewMPSC accept an optional pool capacity, defaulting to
// [DefaultPoolCapacity] when omitted:
//
//	q := nodeq.NewMPMC[int]()     // pool pre-populated with DefaultPoolCapacity nodes
//	q := nodeq.NewMPMC[int](4)    // pool pre-populated with 4 nodes
//	q := nodeq.NewMPMC[int](0)    // empty pool, every node allocated lazily
//
// Cap reports the free list's current depth. It is informational only —
// it does not bound Enqueue, and under concurrent access the value it
// returns can be stale by the time the caller reads it.
//
// # Thread Safety
//
//   - MPMC: any number of producer and consumer goroutines
//   - MPSC: any number of producer goroutines, exactly one consumer
//     goroutine calling TryDequeue/Rewind at a time
//
// Violating the MPSC single-consumer constraint is undefined behavior and
// is not detected.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives (mutex,
// channel, WaitGroup) but cannot observe happens-before relationships
// established purely through atomic memory orderings. This package's
// concurrent correctness relies on exactly that kind of ordering, so some
// tests report false positives under -race and are skipped via
// [RaceEnabled]; the algorithms themselves are unaffected.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering and [code.hybscloud.com/spin] for the
// bounded busy-wait loops in the free list and MPMC's dequeue path.
package nodeq
