package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	toolCalls    *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates a recorder registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		toolCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tamcp_tool_calls_total",
				Help: "Total number of tool invocations by outcome",
			},
			[]string{"tool", "status"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tamcp_cache_lookups_total",
				Help: "Result cache lookups by outcome",
			},
			[]string{"tool", "hit"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tamcp_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tamcp_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"operation"},
		),
	}
}

// RecordToolCall counts a tool invocation. status is ok, invalid or error.
func (r *Recorder) RecordToolCall(tool, status string) {
	r.toolCalls.WithLabelValues(tool, status).Inc()
}

func (r *Recorder) RecordCacheLookup(tool string, hit bool) {
	r.cacheLookups.WithLabelValues(tool, strconv.FormatBool(hit)).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
