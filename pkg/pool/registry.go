package pool

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/martinwells/objects/pkg/config"
	"github.com/martinwells/objects/pkg/logger"
	"github.com/martinwells/objects/pkg/objerrors"
)

// pooler is the type-erased view of a Pool held by the registry.
type pooler interface {
	Name() string
	Size() int
	FreeCount() int
	UsedCount() int
	Allocated() int64
	Dump(label string)
}

// Registry maps a type key to its pool, constructing pools lazily on first
// acquisition. One registry holds at most one pool per distinct type. Thread
// it explicitly from the application's composition root; for convenience a
// process-wide instance is available behind InitDefault/Default.
//
// Like the pools it owns, a Registry is not safe for concurrent use without
// external mutual exclusion.
type Registry struct {
	pools map[string]any
	keys  []string // registration order, for deterministic stats/dump

	initialSize   int
	enableMetrics bool

	// totalPooled counts all objects ever constructed across all pools;
	// it only grows.
	totalPooled int64

	log *zap.Logger
}

// NewRegistry creates a registry. A nil config selects the defaults
// (initial pool size 1, metrics enabled).
func NewRegistry(cfg *config.PoolConfig) *Registry {
	initialSize := config.DefaultInitialPoolSize
	enableMetrics := true
	if cfg != nil {
		if cfg.InitialSize > 0 {
			initialSize = cfg.InitialSize
		}
		enableMetrics = cfg.EnableMetrics
	}

	return &Registry{
		pools:         make(map[string]any),
		initialSize:   initialSize,
		enableMetrics: enableMetrics,
		log:           logger.With(zap.String("component", "pool_registry")),
	}
}

// typeKey derives the registry key for a pooled type from its Go type.
func typeKey[T any]() string {
	return reflect.TypeFor[T]().String()
}

// Acquire hands out an instance of T from r, creating T's pool on first use
// with the registry's initial size. The factory is the participating type's
// zero-argument constructor; it is only invoked for expansion, never to
// reset state. Callers apply their own field resets after acquisition, which
// is what poolable types' factory functions are for:
//
//	func NewParticle(r *pool.Registry, x, y float64) (*Particle, error) {
//	    p, err := pool.Acquire(r, func() *Particle { return &Particle{} })
//	    if err != nil {
//	        return nil, err
//	    }
//	    p.X, p.Y = x, y
//	    return p, nil
//	}
func Acquire[T Poolable](r *Registry, factory func() T) (T, error) {
	key := typeKey[T]()

	if existing, ok := r.pools[key]; ok {
		return existing.(*Pool[T]).Acquire()
	}

	p, err := newPool(key, factory, r.initialSize, r)
	if err != nil {
		var zero T
		return zero, err
	}
	r.pools[key] = p
	r.keys = append(r.keys, key)
	r.log.Debug("pool created",
		zap.String("type", key),
		zap.Int("initial_size", r.initialSize))

	return p.Acquire()
}

// Release returns obj to its type's pool. Releasing an object whose type
// has no pool fails with an unknown pool error: the object cannot have come
// from Acquire. The object's OnRelease hook runs before it re-enters the
// free list.
func Release[T Poolable](r *Registry, obj T) error {
	key := typeKey[T]()

	existing, ok := r.pools[key]
	if !ok {
		return objerrors.New(objerrors.ErrorTypeUnknownPool, "no pool exists for released object").
			WithDetail("type", key).
			WithDetail("object_id", obj.PoolID())
	}

	obj.OnRelease()
	return existing.(*Pool[T]).Release(obj)
}

// PoolOf returns T's pool within r, if one has been created.
func PoolOf[T Poolable](r *Registry) (*Pool[T], bool) {
	existing, ok := r.pools[typeKey[T]()]
	if !ok {
		return nil, false
	}
	return existing.(*Pool[T]), true
}

// TotalPooled returns the number of objects ever constructed across all of
// the registry's pools.
func (r *Registry) TotalPooled() int64 {
	return r.totalPooled
}

// PoolCount returns the number of pools the registry has created.
func (r *Registry) PoolCount() int {
	return len(r.pools)
}

// Size returns the total object count across all pools, free and used.
func (r *Registry) Size() int {
	total := 0
	for _, key := range r.keys {
		total += r.pools[key].(pooler).Size()
	}
	return total
}

// Stats describes one pool's counts for reporting.
type Stats struct {
	Size      int   `json:"size"`
	Free      int   `json:"free"`
	Used      int   `json:"used"`
	Allocated int64 `json:"allocated"`
}

// StatsByType returns per-type pool statistics keyed by type name.
func (r *Registry) StatsByType() map[string]Stats {
	stats := make(map[string]Stats, len(r.pools))
	for _, key := range r.keys {
		p := r.pools[key].(pooler)
		stats[key] = Stats{
			Size:      p.Size(),
			Free:      p.FreeCount(),
			Used:      p.UsedCount(),
			Allocated: p.Allocated(),
		}
	}
	return stats
}

// Dump logs every pool's lists for debugging.
func (r *Registry) Dump(label string) {
	r.log.Info("registry dump",
		zap.String("label", label),
		zap.Int("pools", len(r.pools)),
		zap.Int64("total_pooled", r.totalPooled))
	for _, key := range r.keys {
		r.pools[key].(pooler).Dump(label)
	}
}

// defaultRegistry is the optional process-wide instance. Prefer an explicit
// registry owned by the composition root.
var defaultRegistry *Registry

// InitDefault installs a process-wide registry built from cfg, replacing
// any previous instance.
func InitDefault(cfg *config.PoolConfig) {
	defaultRegistry = NewRegistry(cfg)
}

// Default returns the process-wide registry, creating one with defaults on
// first use.
func Default() *Registry {
	if defaultRegistry == nil {
		defaultRegistry = NewRegistry(nil)
	}
	return defaultRegistry
}

// ResetDefault tears down the process-wide registry. Objects acquired from
// it must not be released afterwards.
func ResetDefault() {
	defaultRegistry = nil
}
