package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchTotal   *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	renders      *prometheus.CounterVec
	stale        *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
}

var (
	defaultOnce     sync.Once
	defaultRecorder *Recorder
)

// New returns the process-wide recorder registered with the default Prometheus registry.
func New() *Recorder {
	defaultOnce.Do(func() {
		defaultRecorder = NewWithRegisterer(prometheus.DefaultRegisterer)
	})
	return defaultRecorder
}

// NewWithRegisterer creates a recorder registered with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		fetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskview_backend_requests_total",
				Help: "Backend API requests by endpoint and result",
			},
			[]string{"endpoint", "result"},
		),
		fetchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskview_backend_request_duration_seconds",
				Help:    "Backend API request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskview_view_renders_total",
				Help: "Rendered views by kind",
			},
			[]string{"view"},
		),
		stale: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskview_view_stale_responses_total",
				Help: "Backend responses discarded because a newer load was issued",
			},
			[]string{"view"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskview_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
	reg.MustRegister(r.fetchTotal, r.fetchLatency, r.renders, r.stale, r.errorsTotal)
	return r
}

// RecordFetch records one backend request.
func (r *Recorder) RecordFetch(endpoint string, seconds float64, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.fetchTotal.WithLabelValues(endpoint, result).Inc()
	r.fetchLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordRender counts a displayed view.
func (r *Recorder) RecordRender(view string) {
	r.renders.WithLabelValues(view).Inc()
}

// RecordStale counts a discarded out-of-date response.
func (r *Recorder) RecordStale(view string) {
	r.stale.WithLabelValues(view).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
