package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ask service metrics, registered with the default Prometheus registry.
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "ask",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "ask",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "route"},
	)

	PipelineOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "ask",
			Name:      "pipeline_outcomes_total",
			Help:      "Ask pipeline results by outcome and provider",
		},
		[]string{"outcome", "provider"},
	)

	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "ask",
			Name:      "context_fetch_total",
			Help:      "Context fetches by source and result (hit, empty)",
		},
		[]string{"source", "result"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "ask",
			Name:      "context_fetch_duration_seconds",
			Help:      "Context fetch latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"source"},
	)

	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "ask",
			Name:      "completion_duration_seconds",
			Help:      "Upstream chat completion latency in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider", "status"},
	)
)

// RecordRequest records a completed HTTP request.
func RecordRequest(method, route, status string, durationSec float64) {
	if route == "" {
		route = "unmatched"
	}
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(durationSec)
}

// RecordOutcome records the terminal outcome of one ask pipeline run.
func RecordOutcome(outcome, provider string) {
	if provider == "" {
		provider = "none"
	}
	PipelineOutcomesTotal.WithLabelValues(outcome, provider).Inc()
}

// RecordFetch records a context fetch; hit reports whether any context came back.
func RecordFetch(source string, hit bool, durationSec float64) {
	result := "empty"
	if hit {
		result = "hit"
	}
	FetchTotal.WithLabelValues(source, result).Inc()
	FetchDuration.WithLabelValues(source).Observe(durationSec)
}

// RecordCompletion records an upstream completion call.
func RecordCompletion(provider, status string, durationSec float64) {
	CompletionDuration.WithLabelValues(provider, status).Observe(durationSec)
}
