// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nodeq

// Options configures queue creation.
type Options struct {
	singleConsumer bool
	capacity       int
}

// Builder creates queues with fluent configuration.
//
// Builder exists mainly to surface the pool capacity as a tunable rather
// than a hardcoded constant, and to make the MPMC/MPSC choice read as a
// constraint instead of a second constructor name.
//
// Example:
//
//	q := nodeq.Build[Event](nodeq.New(4096))                    // MPMC
//	q := nodeq.BuildMPSC[Event](nodeq.New(4096).SingleConsumer()) // MPSC
type Builder struct {
	opts Options
}

// New creates a queue builder with the given pool capacity. capacity
// feeds the free list's starting depth, not a hard cap — see MPMC.Cap.
//
// Panics if capacity < 0.
func New(capacity int) *Builder {
	if capacity < 0 {
		panic("nodeq: capacity must be >= 0")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleConsumer declares that only one goroutine will call TryDequeue
// (and, for MPSC, Rewind). Selects MPSC in Build.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Build creates a Queue[T], choosing MPMC or MPSC based on whether
// SingleConsumer was declared.
func Build[T any](b *Builder) Queue[T] {
	if b.opts.singleConsumer {
		return NewMPSC[T](b.opts.capacity)
	}
	return NewMPMC[T](b.opts.capacity)
}

// BuildMPSC creates an MPSC queue with compile-time type safety.
// Panics if the builder was not configured with SingleConsumer().
func BuildMPSC[T any](b *Builder) *MPSC[T] {
	if !b.opts.singleConsumer {
		panic("nodeq: BuildMPSC requires SingleConsumer()")
	}
	return NewMPSC[T](b.opts.capacity)
}

// BuildMPMC creates an MPMC queue with compile-time type safety.
// Panics if the builder was configured with SingleConsumer().
func BuildMPMC[T any](b *Builder) *MPMC[T] {
	if b.opts.singleConsumer {
		panic("nodeq: BuildMPMC requires no constraints")
	}
	return NewMPMC[T](b.opts.capacity)
}

// pad is cache line padding to prevent false sharing between the atomic
// fields it separates.
type pad [64]byte
