package pool

import "sync/atomic"

// Keyed is implemented by values that carry a stable per-instance unique
// identifier. The keyed node lists use the identifier to guarantee at most
// one membership per object per list with O(1) lookups.
type Keyed interface {
	PoolID() uint64
}

// Poolable is the contract a type implements to participate in pooling.
// Embedding Pooled satisfies everything except a custom OnRelease.
//
// The destroyed flag tracks pooled identity, not memory: a "destroyed"
// object sits on its pool's free list with its storage retained for reuse.
type Poolable interface {
	Keyed

	// Destroyed reports whether the object is currently released.
	Destroyed() bool
	// SetDestroyed flips the pooled-identity flag; called by the pool on
	// acquire and release.
	SetDestroyed(bool)
	// OnRelease runs before the object re-enters the free list. Override it
	// to drop references and clean up resources held since acquisition.
	OnRelease()
}

// idSeq is the process-wide identity counter. Identifiers start at 1 so the
// zero value of Pooled means "not yet assigned".
var idSeq uint64

// Pooled is an embeddable base supplying the pooled identity for concrete
// types. The identifier is assigned lazily on first use and is stable for
// the life of the instance.
//
//	type Particle struct {
//	    pool.Pooled
//	    X, Y float64
//	}
type Pooled struct {
	id        uint64
	destroyed bool
}

// PoolID returns the instance's stable unique identifier.
func (p *Pooled) PoolID() uint64 {
	if p.id == 0 {
		p.id = atomic.AddUint64(&idSeq, 1)
	}
	return p.id
}

// Destroyed reports whether the object is currently released.
func (p *Pooled) Destroyed() bool {
	return p.destroyed
}

// SetDestroyed flips the pooled-identity flag.
func (p *Pooled) SetDestroyed(destroyed bool) {
	p.destroyed = destroyed
}

// OnRelease is a no-op by default; poolable types override it for cleanup.
func (p *Pooled) OnRelease() {}
