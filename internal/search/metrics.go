package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "waypoint",
			Subsystem: "search",
			Name:      "dispatched_total",
			Help:      "Debounced queries sent to the place search provider.",
		},
		[]string{"mode"},
	)

	suppressedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waypoint",
		Subsystem: "search",
		Name:      "suppressed_total",
		Help:      "Debounced queries dropped because they matched the last dispatched query.",
	})

	staleTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waypoint",
		Subsystem: "search",
		Name:      "stale_results_total",
		Help:      "Search results discarded because a newer query superseded them.",
	})
)
