// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_requests_total",
			Help: "Total number of quote requests by terminal outcome",
		},
		[]string{"outcome"},
	)

	ClarificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_clarifications_total",
			Help: "Total number of clarification requests emitted, by first missing field",
		},
		[]string{"missing_field"},
	)

	ExtractorFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_extractor_fallback_total",
			Help: "Times the lexical fallback matcher replaced the interpretive extractor",
		},
		[]string{"reason"},
	)

	DistanceLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_distance_lookups_total",
			Help: "Distance-matrix lookups by result (ok, cache_hit, fallback, skipped)",
		},
		[]string{"result"},
	)

	QuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "quote_request_duration_seconds",
			Help: "Duration of quote request processing in seconds",
		},
		[]string{"outcome"},
	)
)
