// Package metrics defines the Prometheus instrumentation for the server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec

	// Completion provider metrics
	CompletionDurationSeconds *prometheus.HistogramVec
	ProviderFallbacksTotal    *prometheus.CounterVec

	// Content read metrics
	ContentReadsTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
}

// New creates a Metrics instance with all metrics registered.
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "deptbot_chat_requests_total",
				Help: "Total chat requests by intent and answer mode",
			},
			[]string{"intent", "mode"}, // mode: completion, fallback
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deptbot_chat_duration_seconds",
				Help:    "Chat turn duration in seconds by answer mode",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30}, // matches 30s provider timeout
			},
			[]string{"mode"},
		),

		CompletionDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deptbot_completion_duration_seconds",
				Help:    "Completion call duration in seconds by provider, model and status",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"provider", "model", "status"}, // status: ok, error
		),

		ProviderFallbacksTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "deptbot_provider_fallbacks_total",
				Help: "Total provider fallbacks by source and target completer",
			},
			[]string{"from", "to"},
		),

		ContentReadsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "deptbot_content_reads_total",
				Help: "Total content endpoint reads by domain and result",
			},
			[]string{"domain", "result"}, // result: ok, not_found, error
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "deptbot_http_errors_total",
				Help: "Total HTTP errors by type and route",
			},
			[]string{"error_type", "route"},
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "deptbot_rate_limiter_dropped_total",
				Help: "Total requests dropped by rate limiter scope",
			},
			[]string{"scope"}, // scope: global, session
		),
	}
}

// RecordChat records one chat turn.
func (m *Metrics) RecordChat(intent string, fallback bool, duration time.Duration) {
	mode := "completion"
	if fallback {
		mode = "fallback"
	}
	m.ChatRequestsTotal.WithLabelValues(intent, mode).Inc()
	m.ChatDurationSeconds.WithLabelValues(mode).Observe(duration.Seconds())
}

// ObserveCompletion records one provider call.
func (m *Metrics) ObserveCompletion(provider, model, status string, duration time.Duration) {
	m.CompletionDurationSeconds.WithLabelValues(provider, model, status).Observe(duration.Seconds())
}

// RecordFallback records a switch to the next completer in the chain.
func (m *Metrics) RecordFallback(from, to string) {
	m.ProviderFallbacksTotal.WithLabelValues(from, to).Inc()
}

// RecordContentRead records one content endpoint read.
func (m *Metrics) RecordContentRead(domain, result string) {
	m.ContentReadsTotal.WithLabelValues(domain, result).Inc()
}

// RecordHTTPError records an HTTP-level error.
func (m *Metrics) RecordHTTPError(errorType, route string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, route).Inc()
}

// RecordRateLimitDrop records a request dropped by a rate limiter.
func (m *Metrics) RecordRateLimitDrop(scope string) {
	m.RateLimiterDropped.WithLabelValues(scope).Inc()
}
