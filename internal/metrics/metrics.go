// Package metrics records per-action counters for a session and writes them
// in the Prometheus text format when the session ends.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics owns a private registry so nothing leaks into the global one.
type Metrics struct {
	registry *prometheus.Registry

	actions        *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	students       prometheus.Gauge
	saves          *prometheus.CounterVec
}

// New creates and registers the roster metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roster",
			Name:      "actions_total",
			Help:      "Menu actions run, by action and outcome.",
		}, []string{"action", "outcome"}),
		actionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "roster",
			Name:      "action_duration_seconds",
			Help:      "Time spent in a menu action, including prompts.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"action"}),
		students: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roster",
			Name:      "students",
			Help:      "Students currently in the roster.",
		}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roster",
			Name:      "saves_total",
			Help:      "Roster saves, by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.actions, m.actionDuration, m.students, m.saves)
	return m
}

// ObserveAction records one finished menu action.
func (m *Metrics) ObserveAction(action string, err error, elapsed time.Duration) {
	m.actions.WithLabelValues(action, outcome(err)).Inc()
	m.actionDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// ObserveSave records one save attempt.
func (m *Metrics) ObserveSave(err error) {
	m.saves.WithLabelValues(outcome(err)).Inc()
}

// SetStudents records the current roster size.
func (m *Metrics) SetStudents(n int) {
	m.students.Set(float64(n))
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics to path in the text exposition format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
