// Package metrics holds the latency and error series of the view endpoints.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ViewLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "riskview",
			Subsystem: "view",
			Name:      "latency_seconds",
			Help:      "Latency of view endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ViewErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskview",
			Subsystem: "view",
			Name:      "errors_total",
			Help:      "Errors by view endpoint and code",
		},
		[]string{"endpoint", "code"},
	)
)

// Register adds the view series to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(ViewLatency, ViewErrors)
	})
}
