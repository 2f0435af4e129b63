package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the host's Prometheus collectors.
type Metrics struct {
	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
	messagesTotal  *prometheus.CounterVec
	hookErrors     *prometheus.CounterVec
	hookOutcomes   *prometheus.CounterVec
	patchesSent    prometheus.Counter
	queueFull      prometheus.Counter
}

// NewMetrics registers the collectors with reg under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of connected hook sessions",
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of hook sessions opened",
		}),
		messagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Client messages received by type",
		}, []string{"type"}),
		hookErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hook_errors_total",
			Help:      "Errors returned by hooks or the protocol, by code",
		}, []string{"hook", "code"}),
		hookOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hook_outcomes_total",
			Help:      "Named outcomes reported by hooks, such as datepicker reconcile results",
		}, []string{"hook", "outcome"}),
		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patches_sent_total",
			Help:      "Total number of DOM patches sent to clients",
		}),
		queueFull: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_full_total",
			Help:      "Client messages dropped because a session queue was full",
		}),
	}
}

// The recorders below accept a nil receiver so sessions can run without
// metrics.

func (m *Metrics) sessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
	m.sessionsTotal.Inc()
}

func (m *Metrics) sessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

func (m *Metrics) message(kind string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) hookError(hook, code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "internal"
	}
	m.hookErrors.WithLabelValues(hook, code).Inc()
}

func (m *Metrics) outcome(hook, outcome string) {
	if m == nil {
		return
	}
	m.hookOutcomes.WithLabelValues(hook, outcome).Inc()
}

func (m *Metrics) patches(n int) {
	if m == nil || n == 0 {
		return
	}
	m.patchesSent.Add(float64(n))
}

func (m *Metrics) dropped() {
	if m == nil {
		return
	}
	m.queueFull.Inc()
}
