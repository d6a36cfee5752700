package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/trustproof/internal/pipeline"
)

// Metrics collects stage and run level counters for the /metrics endpoint.
type Metrics struct {
	registry      *prometheus.Registry
	stageDuration *prometheus.HistogramVec
	stageTotal    *prometheus.CounterVec
	runsTotal     *prometheus.CounterVec
}

// NewMetrics creates a Metrics backed by its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trustproof_stage_duration_seconds",
			Help:    "Wall-clock duration of each pipeline stage.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		stageTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trustproof_stage_total",
			Help: "Terminal stage statuses by stage and status.",
		}, []string{"stage", "status"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trustproof_runs_total",
			Help: "Completed verification runs by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.stageDuration, m.stageTotal, m.runsTotal)
	return m
}

// ObserveEvent records a stage transition; only terminal statuses count.
func (m *Metrics) ObserveEvent(ev pipeline.Event) {
	if !ev.Status.Terminal() {
		return
	}
	m.stageTotal.WithLabelValues(string(ev.Stage), string(ev.Status)).Inc()
	m.stageDuration.WithLabelValues(string(ev.Stage)).Observe(float64(ev.ElapsedMillis) / 1000.0)
}

// ObserveRun records a completed run outcome.
func (m *Metrics) ObserveRun(outcome string) {
	m.runsTotal.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
