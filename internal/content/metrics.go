package content

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK       = "ok"
	outcomeFallback = "fallback"
	outcomeEmpty    = "empty"
)

var (
	// Registry holds the content gateway collectors; the API exposes it on /metrics.
	Registry = prometheus.NewRegistry()

	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quaresma",
			Subsystem: "content",
			Name:      "fetch_total",
			Help:      "Content fetches by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "quaresma",
			Subsystem: "content",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of content generation calls.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(fetchTotal, fetchDuration)
}

func recordFetch(kind Kind, outcome string, elapsed time.Duration) {
	fetchTotal.WithLabelValues(string(kind), outcome).Inc()
	fetchDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}
