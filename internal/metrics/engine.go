package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search engine and enrichment Prometheus metrics.
var (
	EngineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "autospecs",
			Name:      "engine_requests_total",
			Help:      "Total number of search engine requests",
		},
		[]string{"index", "status"},
	)

	EngineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "autospecs",
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"index"},
	)

	EnrichmentFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "autospecs",
			Name:      "enrichment_failures_total",
			Help:      "Instance count lookups that failed and left counts unknown",
		},
	)

	OptionCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "autospecs",
			Name:      "option_cache_total",
			Help:      "Filter option cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers the engine, enrichment and cache metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(EngineRequestsTotal)
	prometheus.MustRegister(EngineRequestDuration)
	prometheus.MustRegister(EnrichmentFailuresTotal)
	prometheus.MustRegister(OptionCacheTotal)
	engineMetricsRegistered = true
}
