// Package metrics declares the prometheus instrumentation around the
// builder's setup passes. A pipeline consumer registers these against its
// own registry (or prometheus.DefaultRegisterer via promauto) and exposes
// them however it exposes the rest of its metrics; this package has no
// opinion on transport.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registerer is satisfied by prometheus.Registry and
// prometheus.DefaultRegisterer; it lets New bind these metrics to a
// caller-supplied registry instead of always reaching for the global one.
type Registerer = prometheus.Registerer

// Metrics bundles every counter and histogram the setup orchestration
// updates. A nil *Metrics is valid and every method on it is a no-op, so
// callers that don't want metrics can skip New entirely.
type Metrics struct {
	setupTotal    *prometheus.CounterVec
	setupDuration *prometheus.HistogramVec
	passFailures  *prometheus.CounterVec
}

// New registers and returns a fresh Metrics bundle against reg.
func New(reg Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		setupTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pipelinegrid_setup_pipeline_total",
			Help: "Total setup_pipeline invocations by terminal outcome.",
		}, []string{"outcome"}),
		setupDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipelinegrid_setup_pass_duration_seconds",
			Help:    "Duration of each setup pass.",
			Buckets: prometheus.DefBuckets,
		}, []string{"pass"}),
		passFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pipelinegrid_setup_pass_failures_total",
			Help: "Setup pass failures by pass name and error kind.",
		}, []string{"pass", "kind"}),
	}
}

// ObservePass records the duration of one setup pass, and, on failure,
// increments the pass-failure counter tagged with kind (an error-sentinel
// label supplied by the caller, e.g. "NotADAG").
func (m *Metrics) ObservePass(pass string, seconds float64, failureKind string) {
	if m == nil {
		return
	}
	m.setupDuration.WithLabelValues(pass).Observe(seconds)
	if failureKind != "" {
		m.passFailures.WithLabelValues(pass, failureKind).Inc()
	}
}

// ObserveSetup increments the terminal setup_pipeline outcome counter,
// outcome being "ready" or "failed".
func (m *Metrics) ObserveSetup(outcome string) {
	if m == nil {
		return
	}
	m.setupTotal.WithLabelValues(outcome).Inc()
}
