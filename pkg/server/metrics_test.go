package server

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestMetrics_Recorders(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), "test")

	m.sessionOpened()
	m.sessionOpened()
	m.sessionClosed()
	m.hookError("Datepicker", "E004")
	m.hookError("", "")
	m.outcome("Datepicker", "repaired")
	m.patches(3)
	m.patches(0)
	m.dropped()

	if got := gaugeValue(t, m.activeSessions); got != 1 {
		t.Errorf("active_sessions = %v, want 1", got)
	}
	if got := counterValue(t, m.sessionsTotal); got != 2 {
		t.Errorf("sessions_total = %v, want 2", got)
	}
	if got := counterValue(t, m.hookErrors.WithLabelValues("Datepicker", "E004")); got != 1 {
		t.Errorf("hook_errors_total{E004} = %v, want 1", got)
	}
	if got := counterValue(t, m.hookErrors.WithLabelValues("", "internal")); got != 1 {
		t.Errorf("hook_errors_total{internal} = %v, want 1", got)
	}
	if got := counterValue(t, m.hookOutcomes.WithLabelValues("Datepicker", "repaired")); got != 1 {
		t.Errorf("hook_outcomes_total = %v, want 1", got)
	}
	if got := counterValue(t, m.patchesSent); got != 3 {
		t.Errorf("patches_sent_total = %v, want 3", got)
	}
	if got := counterValue(t, m.queueFull); got != 1 {
		t.Errorf("queue_full_total = %v, want 1", got)
	}
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.sessionOpened()
	m.sessionClosed()
	m.message("mount")
	m.hookError("x", "E001")
	m.outcome("x", "y")
	m.patches(1)
	m.dropped()
}
