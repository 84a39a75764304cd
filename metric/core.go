package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "flowcanvas"

// Metrics contains the editor-level metrics shared by all sessions
type Metrics struct {
	NodesCreated    *prometheus.CounterVec
	EdgesCreated    prometheus.Counter
	EdgesRejected   prometheus.Counter
	DropsIgnored    *prometheus.CounterVec
	MenuTransitions *prometheus.CounterVec
	ChangeEntries   *prometheus.CounterVec
	SessionsActive  prometheus.Gauge
	EventsReceived  *prometheus.CounterVec
	EventDuration   *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		NodesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nodes_created_total",
				Help:      "Total number of nodes created by palette drops",
			},
			[]string{"kind"},
		),

		EdgesCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "edges_created_total",
				Help:      "Total number of edges created by connect gestures",
			},
		),

		EdgesRejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "edges_rejected_total",
				Help:      "Total number of connect gestures missing an endpoint",
			},
		),

		DropsIgnored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "drops_ignored_total",
				Help:      "Total number of drops that created no node",
			},
			[]string{"reason"},
		),

		MenuTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "menu_transitions_total",
				Help:      "Context menu transitions by resulting state (open, closed)",
			},
			[]string{"state"},
		),

		ChangeEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "change_entries_total",
				Help:      "Change batch entries from the rendering layer",
			},
			[]string{"target", "status"},
		),

		SessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sessions_active",
				Help:      "Number of connected editor sessions",
			},
		),

		EventsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_received_total",
				Help:      "Inbound session events by type and status",
			},
			[]string{"type", "status"},
		),

		EventDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "event_duration_seconds",
				Help:      "Time spent applying one inbound event",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
			[]string{"type"},
		),
	}
}

// collectors lists every metric for registration
func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.NodesCreated,
		m.EdgesCreated,
		m.EdgesRejected,
		m.DropsIgnored,
		m.MenuTransitions,
		m.ChangeEntries,
		m.SessionsActive,
		m.EventsReceived,
		m.EventDuration,
	}
}

// RecordEvent records one inbound session event
func (m *Metrics) RecordEvent(eventType, status string, took time.Duration) {
	m.EventsReceived.WithLabelValues(eventType, status).Inc()
	m.EventDuration.WithLabelValues(eventType).Observe(took.Seconds())
}

// SessionOpened increments the active session gauge
func (m *Metrics) SessionOpened() {
	m.SessionsActive.Inc()
}

// SessionClosed decrements the active session gauge
func (m *Metrics) SessionClosed() {
	m.SessionsActive.Dec()
}
