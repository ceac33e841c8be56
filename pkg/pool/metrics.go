package pool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pool metrics follow the free/used split: the gauge tracks both list sizes
// per pooled type, the counters are monotonic operation totals.
var (
	// poolObjects tracks the current number of pooled objects by list state.
	// Labels: type (pooled type name), state (free/used)
	poolObjects = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "objects_pool_objects",
			Help: "Current number of pooled objects by list state",
		},
		[]string{"type", "state"},
	)

	// acquiresTotal counts acquire operations per pooled type.
	acquiresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objects_pool_acquires_total",
			Help: "Total number of acquire operations",
		},
		[]string{"type"},
	)

	// releasesTotal counts release operations per pooled type.
	releasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objects_pool_releases_total",
			Help: "Total number of release operations",
		},
		[]string{"type"},
	)

	// expansionsTotal counts expansion events per pooled type. A single
	// event may construct several instances; see allocatedTotal.
	expansionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objects_pool_expansions_total",
			Help: "Total number of pool expansion events",
		},
		[]string{"type"},
	)

	// allocatedTotal counts instances ever constructed per pooled type.
	// Pools never shrink, so this only grows.
	allocatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objects_pool_allocated_total",
			Help: "Total number of instances constructed by pools",
		},
		[]string{"type"},
	)
)
