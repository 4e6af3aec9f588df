// Package metrics exposes Prometheus instrumentation for upstream dog API calls.
// Metrics are scraped from /-/metrics alongside the Go runtime collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultNamespace = "dogproxy"

	// OutcomeSuccess labels calls that returned usable data.
	OutcomeSuccess = "success"
)

// Option configures a Recorder.
type Option func(*Recorder)

// WithRegistry registers the collectors on r instead of the default registerer.
func WithRegistry(r prometheus.Registerer) Option {
	return func(rec *Recorder) {
		if r != nil {
			rec.registry = r
		}
	}
}

// WithNamespace overrides the metric namespace.
func WithNamespace(namespace string) Option {
	return func(rec *Recorder) {
		if namespace != "" {
			rec.namespace = namespace
		}
	}
}

// WithBuckets sets the latency histogram buckets, in seconds.
func WithBuckets(buckets []float64) Option {
	return func(rec *Recorder) {
		if len(buckets) > 0 {
			rec.buckets = buckets
		}
	}
}

// Recorder records upstream request counts and latencies.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  prometheus.Registerer

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewRecorder creates the upstream collectors and registers them.
// It panics if the collectors are already registered on the target registry.
func NewRecorder(opts ...Option) *Recorder {
	rec := &Recorder{
		namespace: defaultNamespace,
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(rec)
	}

	auto := promauto.With(rec.registry)

	rec.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: rec.namespace,
		Name:      "upstream_requests_total",
		Help:      "Upstream dog API requests by operation and outcome.",
	}, []string{"operation", "outcome"})

	rec.upstreamDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: rec.namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Upstream dog API request latency.",
		Buckets:   rec.buckets,
	}, []string{"operation"})

	return rec
}

// ObserveUpstream records one finished upstream call.
// A nil Recorder is a no-op so callers can leave metrics unwired in tests.
func (r *Recorder) ObserveUpstream(operation, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}

	r.upstreamRequests.WithLabelValues(operation, outcome).Inc()
	r.upstreamDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
