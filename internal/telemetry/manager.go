// Package telemetry exposes Prometheus metrics for the season server.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tool call outcomes.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var defaultBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  *prometheus.Registry

	toolCalls         *prometheus.CounterVec
	toolLatency       *prometheus.HistogramVec
	personaSelections *prometheus.CounterVec
	seasonLoads       *prometheus.CounterVec
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "fpl",
		subsystem: "season",
		buckets:   defaultBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.toolCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tool_calls_total",
		Help:      "MCP tool calls by tool and outcome",
	}, []string{"tool", "status"})

	m.toolLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tool_duration_seconds",
		Help:      "MCP tool call latency in seconds",
		Buckets:   m.buckets,
	}, []string{"tool"})

	m.personaSelections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persona_selections_total",
		Help:      "Personas assigned, by catalog key",
	}, []string{"persona"})

	m.seasonLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "season_loads_total",
		Help:      "Season contexts loaded from the raw store, by outcome",
	}, []string{"status"})
}

func (m *Manager) ObserveToolCall(tool, status string, d time.Duration) {
	m.toolCalls.WithLabelValues(tool, status).Inc()
	m.toolLatency.WithLabelValues(tool).Observe(d.Seconds())
}

func (m *Manager) RecordPersona(key string) {
	m.personaSelections.WithLabelValues(key).Inc()
}

func (m *Manager) RecordSeasonLoad(err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.seasonLoads.WithLabelValues(status).Inc()
}

// Handler serves the Manager's registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
