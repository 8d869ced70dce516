package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for the folder engine.
type Metrics struct {
	// Store calls
	RemoteCallsTotal *prometheus.CounterVec

	// Cascades
	CascadesTotal       *prometheus.CounterVec
	CascadeSteps        *prometheus.HistogramVec
	TornCascadesTotal   *prometheus.CounterVec
	ReloadsAbortedTotal prometheus.Counter

	// Sessions
	ActiveSessions prometheus.Gauge
}

// NewMetrics creates and registers Prometheus metrics once per process.
//
// Metrics:
//   - mdvault_remote_calls_total{op,outcome} - document store calls
//   - mdvault_cascades_total{kind,outcome} - rename/unsort cascades
//   - mdvault_cascade_steps{kind} - documents touched per cascade
//   - mdvault_torn_cascades_total{kind} - cascades that stopped part way
//   - mdvault_reloads_aborted_total - document list reloads that failed
//   - mdvault_active_sessions - open sessions
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			RemoteCallsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "mdvault_remote_calls_total",
					Help: "Total number of document store calls",
				},
				[]string{"op", "outcome"}, // list/update/delete, ok/error
			),
			CascadesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "mdvault_cascades_total",
					Help: "Total number of folder cascades executed",
				},
				[]string{"kind", "outcome"},
			),
			CascadeSteps: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "mdvault_cascade_steps",
					Help:    "Number of documents affected by a cascade",
					Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
				},
				[]string{"kind"},
			),
			TornCascadesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "mdvault_torn_cascades_total",
					Help: "Total number of cascades that stopped after a partial update",
				},
				[]string{"kind"},
			),
			ReloadsAbortedTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "mdvault_reloads_aborted_total",
					Help: "Total number of document list reloads that failed",
				},
			),
			ActiveSessions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "mdvault_active_sessions",
					Help: "Number of open folder sessions",
				},
			),
		}
	})
	return globalMetrics
}

// RecordRemoteCall counts one store call. Safe on a nil receiver.
func (m *Metrics) RecordRemoteCall(op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.RemoteCallsTotal.WithLabelValues(op, outcome).Inc()
}

// RecordCascade counts one finished cascade. Safe on a nil receiver.
func (m *Metrics) RecordCascade(kind string, steps int, applied int, failed bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "error"
		if applied > 0 {
			m.TornCascadesTotal.WithLabelValues(kind).Inc()
		}
	}
	m.CascadesTotal.WithLabelValues(kind, outcome).Inc()
	m.CascadeSteps.WithLabelValues(kind).Observe(float64(steps))
}

// RecordReloadAborted counts a failed reload. Safe on a nil receiver.
func (m *Metrics) RecordReloadAborted() {
	if m == nil {
		return
	}
	m.ReloadsAbortedTotal.Inc()
}

// SessionOpened and SessionClosed track the active session gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionClosed(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Sub(float64(n))
}
