// Package objects provides pooled object management for allocation-sensitive
// workloads such as simulations, games, and benchmark harnesses.
//
// Instead of allocating and garbage collecting short-lived objects every
// frame, objects are acquired from per-type pools and released back when
// their work is done. Each pool keeps a free list and a used list, growing
// in amortized steps when demand outpaces supply, so steady-state churn
// performs no allocation at all.
//
// # Architecture
//
// The system is built from three layers:
//
// 1. Keyed node lists (pool.KeyedList): doubly linked lists whose nodes are
// cached per object, so membership moves between lists without allocating.
//
// 2. Typed pools (pool.Pool): a free list and a used list of one concrete
// type, with factory-driven expansion when the free list runs dry.
//
// 3. The registry (pool.Registry): a type-keyed collection of pools, created
// lazily on first acquire, so callers never manage pools by hand.
//
// # Quick Start
//
//	import "github.com/martinwells/objects/pkg/pool"
//
//	type Particle struct {
//	    pool.Pooled
//	    X, Y float64
//	}
//
//	registry := pool.NewRegistry(nil)
//
//	// Acquire creates the Particle pool on first use.
//	p, err := pool.Acquire(registry, func() *Particle { return &Particle{} })
//	if err != nil {
//	    return err
//	}
//	p.X, p.Y = 10, 20
//
//	// Release returns the particle to the free list for recycling.
//	if err := pool.Release(registry, p); err != nil {
//	    return err
//	}
//
// # Key Packages
//
//	pkg/pool          - Keyed lists, typed pools, and the type-keyed registry
//	pkg/config        - YAML configuration with environment substitution
//	pkg/logger        - Structured logging built on zap
//	pkg/objerrors     - Structured error handling with stack capture
//	pkg/perf          - Stopwatch and frame timing utilities
//	pkg/sysinfo       - Host capability snapshots for pool sizing
//	pkg/observability - OpenTelemetry tracing for benchmark runs
//
// # Concurrency
//
// Pools, lists, and registries are single-threaded. Callers that share a
// registry across goroutines must provide their own synchronization.
package objects
