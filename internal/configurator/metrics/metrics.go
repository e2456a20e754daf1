package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ============================================================
// Prometheus Recorder
// ============================================================

// Metrics считает действия Module Store и число активных сессий.
type Metrics struct {
	registry *prometheus.Registry
	actions  *prometheus.CounterVec
	sessions prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "configurator_store_actions_total",
			Help: "Module store actions by type and result.",
		}, []string{"action", "result"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "configurator_sessions",
			Help: "Active configurator sessions.",
		}),
	}
	m.registry.MustRegister(m.actions, m.sessions)
	return m
}

// Observe реализует store.Recorder.
func (m *Metrics) Observe(action string, success bool) {
	result := "ok"
	if !success {
		result = "error"
	}
	m.actions.WithLabelValues(action, result).Inc()
}

func (m *Metrics) SetSessions(count int) {
	m.sessions.Set(float64(count))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler отдаёт метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
