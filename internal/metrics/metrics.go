package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TripRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripsync_trip_requests_total",
			Help: "Trip generation requests by outcome",
		},
		[]string{"outcome"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripsync_cache_lookups_total",
			Help: "Response cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	CandidateDropoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripsync_candidate_dropouts_total",
			Help: "Trip candidates removed before the response, by reason",
		},
		[]string{"reason"},
	)

	PriceAnomaliesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tripsync_price_anomalies_total",
			Help: "Candidates whose cost components do not add up to the stated total",
		},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripsync_upstream_duration_seconds",
			Help:    "Text generation call latency",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60},
		},
		[]string{"provider", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripsync_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeCached  = "cached"
	OutcomeError   = "error"

	DropoutTruncated   = "truncated"
	DropoutDestination = "destination_mismatch"
	DropoutTotalFloor  = "below_total_floor"
	DropoutZeroFlight  = "zero_flight"
	DropoutSchema      = "schema_invalid"
)
