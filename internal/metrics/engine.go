package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "companysearch"

// Engine call metrics, labeled by operation (search, aggregate).
var (
	EngineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine call duration in seconds, retries included",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation", "status"},
	)

	EngineRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_retries_total",
			Help:      "Search engine call retries after transport failures",
		},
		[]string{"operation"},
	)

	EngineFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_failures_total",
			Help:      "Search engine calls that failed after all attempts",
		},
		[]string{"operation", "reason"}, // "unavailable" / "rejected"
	)
)

var registerEngineOnce sync.Once

// RegisterEngineMetrics registers engine metrics with the default registry. Safe to call repeatedly.
func RegisterEngineMetrics() {
	registerEngineOnce.Do(func() {
		prometheus.MustRegister(EngineRequestDuration)
		prometheus.MustRegister(EngineRetriesTotal)
		prometheus.MustRegister(EngineFailuresTotal)
	})
}
