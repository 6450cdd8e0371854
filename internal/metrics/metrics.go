package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_product_cache_hits_total",
		Help: "Product list reads served from the cache.",
	})

	ProductCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_product_cache_misses_total",
		Help: "Product list reads that fell through to the store.",
	})

	ProductCacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_product_cache_invalidations_total",
		Help: "Product cache invalidations triggered by catalog writes.",
	})

	ProductCacheStalePopulates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_product_cache_stale_populates_total",
		Help: "Populate attempts discarded because a newer invalidation happened.",
	})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_events_published_total",
		Help: "Events published on the bus, by kind.",
	},
		[]string{"kind"},
	)

	EventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_events_dropped_total",
		Help: "Events dropped for a subscriber whose buffer was full, by kind.",
	},
		[]string{"kind"},
	)

	RealtimeSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_realtime_subscribers",
		Help: "Currently connected real-time subscribers.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_operation_errors_total",
		Help: "Errors returned by service operations, by operation and error kind.",
	},
		[]string{"operation", "kind"},
	)
)
