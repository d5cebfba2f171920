/*-------------------------------------------------------------------------
 *
 * prometheus.go
 *    Prometheus metrics for HR-Support
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/metrics/prometheus.go
 *
 *-------------------------------------------------------------------------
 */

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	/* Request metrics */
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_support_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hr_support_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	/* Message pipeline metrics */
	messagesHandledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_support_messages_handled_total",
			Help: "Total number of chat messages handled, by primary intent",
		},
		[]string{"intent", "status"},
	)

	handlerFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_support_handler_failures_total",
			Help: "Total number of intent handler failures caught at the dispatch boundary",
		},
		[]string{"intent"},
	)

	classifierCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_support_classifier_calls_total",
			Help: "Total number of classifier calls",
		},
		[]string{"status"},
	)

	/* Approval lifecycle metrics */
	approvalsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_support_approvals_created_total",
			Help: "Total number of approval requests created",
		},
		[]string{"request_type"},
	)

	approvalsDecidedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_support_approvals_decided_total",
			Help: "Total number of approval decisions recorded",
		},
		[]string{"status"},
	)

	sweepTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_support_sweep_transitions_total",
			Help: "Total number of reminder/escalation transitions applied by the sweep",
		},
		[]string{"kind"},
	)
)

/* RecordHTTPRequest records a completed HTTP request */
func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, httpStatusClass(status)).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

/* RecordMessageHandled records a handled chat message */
func RecordMessageHandled(intent, status string) {
	messagesHandledTotal.WithLabelValues(intent, status).Inc()
}

/* RecordHandlerFailure records a handler failure caught at dispatch */
func RecordHandlerFailure(intent string) {
	handlerFailuresTotal.WithLabelValues(intent).Inc()
}

/* RecordClassifierCall records a classifier invocation */
func RecordClassifierCall(status string) {
	classifierCallsTotal.WithLabelValues(status).Inc()
}

/* RecordApprovalCreated records a created approval request */
func RecordApprovalCreated(requestType string) {
	approvalsCreatedTotal.WithLabelValues(requestType).Inc()
}

/* RecordApprovalDecided records a recorded decision */
func RecordApprovalDecided(status string) {
	approvalsDecidedTotal.WithLabelValues(status).Inc()
}

/* RecordSweepTransition records a reminder or escalation transition */
func RecordSweepTransition(kind string) {
	sweepTransitionsTotal.WithLabelValues(kind).Inc()
}

/* Handler returns the HTTP handler for the /metrics endpoint */
func Handler() http.Handler {
	return promhttp.Handler()
}

func httpStatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
