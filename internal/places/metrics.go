package places

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pkordes/waypoint/internal/domain"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "waypoint",
			Subsystem: "places",
			Name:      "requests_total",
			Help:      "Place search calls by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "waypoint",
			Subsystem: "places",
			Name:      "request_duration_seconds",
			Help:      "Latency of place search calls that reached the provider.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "upstream"
	}
}
