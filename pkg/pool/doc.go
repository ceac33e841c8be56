// Package pool provides free-list object pooling for hot paths that must
// avoid allocation and garbage-collection churn, such as a game loop
// creating and destroying many short-lived objects per frame.
//
// Each Pool owns two keyed node lists over instances of one concrete type:
// a free list of constructed-but-idle instances and a used list of
// instances on loan. Objects are constructed exactly once through a factory
// and then recycled indefinitely; a pool never shrinks. When the free list
// runs dry, the pool auto-expands by round(size/5)+1, giving amortized
// geometric growth.
//
// A Registry maps concrete types to their pools, creating each pool lazily
// on first acquisition. Types participate by implementing Poolable, usually
// by embedding Pooled and providing a factory function that resets fields
// after acquisition:
//
//	type Particle struct {
//	    pool.Pooled
//	    X, Y float64
//	}
//
//	func NewParticle(r *pool.Registry, x, y float64) (*Particle, error) {
//	    p, err := pool.Acquire(r, func() *Particle { return &Particle{} })
//	    if err != nil {
//	        return nil, err
//	    }
//	    p.X, p.Y = x, y
//	    return p, nil
//	}
//
//	// ... use p, then hand it back:
//	_ = pool.Release(r, p)
//
// All operations are synchronous and single-threaded by design: there is no
// internal locking because the list surgery is not atomic across steps.
// Concurrent hosts should keep one registry per worker or serialize access
// externally.
package pool
