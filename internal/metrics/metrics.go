// Package metrics exposes arcade counters in Prometheus format. Labels are
// bounded: game slugs come from the registry and phases from core.Phase.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the arcade collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	tickDuration prometheus.Histogram
	ticks        prometheus.Counter
	dropped      prometheus.Counter
	runs         *prometheus.CounterVec
	newBests     *prometheus.CounterVec
	sessions     prometheus.Gauge
	rejected     *prometheus.CounterVec
}

// New creates a Metrics instance backed by its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "arcade_tick_duration_seconds",
			Help:    "Time spent in one simulation step",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "arcade_ticks_total",
			Help: "Simulation steps executed",
		}),
		dropped: f.NewCounter(prometheus.CounterOpts{
			Name: "arcade_ticks_dropped_total",
			Help: "Ticks skipped while the loop was paused",
		}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_runs_total",
			Help: "Finished runs by game and result",
		}, []string{"game", "result"}),
		newBests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_new_best_total",
			Help: "Runs that improved the stored best",
		}, []string{"game"}),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "arcade_sessions_active",
			Help: "Currently connected SSH sessions",
		}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_http_rejected_total",
			Help: "HTTP requests rejected before reaching a handler",
		}, []string{"reason"}),
	}
}

// ObserveTick records one executed step.
func (m *Metrics) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.tickDuration.Observe(d.Seconds())
}

// TickDropped records a tick discarded while paused.
func (m *Metrics) TickDropped() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}

// RunFinished records a run that reached a terminal phase.
func (m *Metrics) RunFinished(game, result string, newBest bool) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(game, result).Inc()
	if newBest {
		m.newBests.WithLabelValues(game).Inc()
	}
}

// SessionStarted increments the active session gauge.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

// SessionEnded decrements the active session gauge.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}

// Rejected records a request refused for reason, e.g. "rate_limit".
func (m *Metrics) Rejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
