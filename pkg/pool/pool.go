package pool

import (
	"math"

	"go.uber.org/zap"

	"github.com/martinwells/objects/pkg/logger"
	"github.com/martinwells/objects/pkg/objerrors"
)

// growthDivisor sets the auto-expansion step: an empty free list grows the
// pool by round(size/growthDivisor)+1, which yields ~20% amortized geometric
// growth while always making progress from size zero.
const growthDivisor = 5

// Pool owns a free list and a used list of instances of a single concrete
// type. Objects are constructed once through the factory and then recycled
// indefinitely between the two lists; the pool never shrinks.
//
// A Pool is not safe for concurrent use: acquire and release perform
// multi-step list surgery with no internal locking. Multi-threaded hosts
// should run one pool set per worker or serialize access externally.
type Pool[T Poolable] struct {
	name        string
	factory     func() T
	freeList    *KeyedList[T]
	usedList    *KeyedList[T]
	initialSize int
	allocated   int64

	// registry is the owning registry, if any; it receives totalPooled
	// increments on expansion.
	registry *Registry

	metrics bool
	log     *zap.Logger
}

// NewPool creates a standalone pool for one type and seeds it with
// initialSize instances, all placed on the free list.
func NewPool[T Poolable](name string, factory func() T, initialSize int) (*Pool[T], error) {
	return newPool(name, factory, initialSize, nil)
}

func newPool[T Poolable](name string, factory func() T, initialSize int, r *Registry) (*Pool[T], error) {
	if factory == nil {
		return nil, objerrors.New(objerrors.ErrorTypeValidation, "pool factory must not be nil").
			WithDetail("type", name)
	}
	if initialSize < 0 {
		return nil, objerrors.New(objerrors.ErrorTypeValidation, "initial size must not be negative").
			WithDetail("type", name).
			WithDetail("initial_size", initialSize)
	}

	p := &Pool[T]{
		name:        name,
		factory:     factory,
		freeList:    NewKeyedList[T]("free"),
		usedList:    NewKeyedList[T]("used"),
		initialSize: initialSize,
		registry:    r,
		metrics:     true,
		log:         logger.With(zap.String("pool", name)),
	}
	if r != nil {
		p.metrics = r.enableMetrics
	}

	if err := p.Expand(initialSize); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the pooled type's name.
func (p *Pool[T]) Name() string {
	return p.name
}

// Size returns the total number of objects owned by the pool, free or used.
func (p *Pool[T]) Size() int {
	return p.freeList.Count() + p.usedList.Count()
}

// FreeCount returns the number of instances available for handout.
func (p *Pool[T]) FreeCount() int {
	return p.freeList.Count()
}

// UsedCount returns the number of instances currently on loan.
func (p *Pool[T]) UsedCount() int {
	return p.usedList.Count()
}

// Allocated returns the number of instances ever constructed by the pool.
func (p *Pool[T]) Allocated() int64 {
	return p.allocated
}

// InitialSize returns the size requested at construction.
func (p *Pool[T]) InitialSize() int {
	return p.initialSize
}

// Expand constructs n new instances through the factory and adds each to
// the free list. Existing entries are never touched. The owning registry's
// totalPooled counter grows by n.
func (p *Pool[T]) Expand(n int) error {
	for i := 0; i < n; i++ {
		obj := p.factory()
		obj.SetDestroyed(true) // free-list residents carry the destroyed flag
		if err := p.freeList.Add(obj); err != nil {
			return objerrors.Wrap(err, objerrors.ErrorTypeInternal, "could not add new instance to the free list").
				WithDetail("type", p.name)
		}
		p.allocated++
		if p.registry != nil {
			p.registry.totalPooled++
		}
	}

	if p.metrics && n > 0 {
		expansionsTotal.WithLabelValues(p.name).Inc()
		allocatedTotal.WithLabelValues(p.name).Add(float64(n))
		p.observeGauges()
	}
	p.log.Debug("pool expanded",
		zap.Int("added", n),
		zap.Int("size", p.Size()))
	return nil
}

// Acquire hands out a free instance, expanding the pool first when the free
// list is empty. The returned object is exclusively owned by the caller
// until released.
func (p *Pool[T]) Acquire() (T, error) {
	var zero T

	if p.freeList.Count() == 0 {
		if err := p.Expand(p.nextGrowth()); err != nil {
			return zero, err
		}
	}

	obj, ok := p.freeList.First()
	if !ok {
		return zero, objerrors.New(objerrors.ErrorTypeInvariant, "free list is empty after expansion").
			WithDetail("type", p.name)
	}
	p.freeList.Remove(obj)
	obj.SetDestroyed(false)

	if err := p.usedList.Add(obj); err != nil {
		return zero, objerrors.Wrap(err, objerrors.ErrorTypeInternal, "could not move acquired object to the used list").
			WithDetail("type", p.name).
			WithDetail("object_id", obj.PoolID())
	}

	if p.metrics {
		acquiresTotal.WithLabelValues(p.name).Inc()
		p.observeGauges()
	}
	return obj, nil
}

// Release returns obj to the free list and marks its pooled identity
// destroyed. Releasing an object that is not on the used list is tolerated
// on the used side, but a second release of the same object fails with a
// duplicate membership error from the free list rather than silently
// corrupting both lists.
func (p *Pool[T]) Release(obj T) error {
	p.usedList.Remove(obj)
	obj.SetDestroyed(true)

	if err := p.freeList.Add(obj); err != nil {
		return objerrors.Wrap(err, objerrors.ErrorTypeDuplicate, "object released twice").
			WithDetail("type", p.name).
			WithDetail("object_id", obj.PoolID())
	}

	if p.metrics {
		releasesTotal.WithLabelValues(p.name).Inc()
		p.observeGauges()
	}
	return nil
}

// nextGrowth returns the auto-expansion step for the current size; always
// at least 1 so acquisition makes progress even from an empty pool.
func (p *Pool[T]) nextGrowth() int {
	return int(math.Round(float64(p.Size())/growthDivisor)) + 1
}

// Dump logs the pool's lists for debugging. Not part of the functional
// contract.
func (p *Pool[T]) Dump(label string) {
	p.log.Info("pool dump",
		zap.String("label", label),
		zap.Int("size", p.Size()),
		zap.Int64("allocated", p.allocated),
		zap.String("free", p.freeList.Dump()),
		zap.String("used", p.usedList.Dump()))
}

func (p *Pool[T]) observeGauges() {
	poolObjects.WithLabelValues(p.name, "free").Set(float64(p.freeList.Count()))
	poolObjects.WithLabelValues(p.name, "used").Set(float64(p.usedList.Count()))
}
