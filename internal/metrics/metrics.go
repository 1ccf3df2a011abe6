package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts API requests by endpoint and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yield_tracker_http_requests_total",
			Help: "Total number of HTTP requests processed, by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	// SnapshotBuildDuration observes how long one portfolio snapshot takes
	// end to end, cache misses only.
	SnapshotBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "yield_tracker_snapshot_build_duration_seconds",
			Help:    "Time to assemble and value one portfolio snapshot.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// UpstreamErrorsTotal counts degraded upstream calls by source name.
	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yield_tracker_upstream_errors_total",
			Help: "Total number of upstream source failures, by source.",
		},
		[]string{"source"},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		SnapshotBuildDuration,
		UpstreamErrorsTotal,
	)
}
