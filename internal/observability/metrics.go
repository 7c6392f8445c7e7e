package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records service operation and handler outcomes. One instance is
// shared across modules; series are partitioned by operation/handler labels.
type Metrics struct {
	operationAttempts  *prometheus.CounterVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec

	handlerAttempts  *prometheus.CounterVec
	handlerSuccesses *prometheus.CounterVec
	handlerFailures  *prometheus.CounterVec
	handlerDuration  *prometheus.HistogramVec

	syncPushes *prometheus.CounterVec
}

// NewMetrics creates and registers the service metrics on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "questboard_operation_attempts_total",
			Help: "Service operations attempted.",
		}, []string{"operation", "service"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "questboard_operation_successes_total",
			Help: "Service operations completed without error.",
		}, []string{"operation", "service"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "questboard_operation_failures_total",
			Help: "Service operations that returned an error.",
		}, []string{"operation", "service"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "questboard_operation_duration_seconds",
			Help:    "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "service"}),

		handlerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "questboard_handler_attempts_total",
			Help: "Event handler invocations.",
		}, []string{"handler"}),
		handlerSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "questboard_handler_successes_total",
			Help: "Event handler invocations that completed.",
		}, []string{"handler"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "questboard_handler_failures_total",
			Help: "Event handler invocations that failed.",
		}, []string{"handler"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "questboard_handler_duration_seconds",
			Help:    "Event handler latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler"}),

		syncPushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "questboard_sync_pushes_total",
			Help: "Best-effort external surface pushes by surface and outcome.",
		}, []string{"surface", "outcome"}),
	}

	registry.MustRegister(
		m.operationAttempts, m.operationSuccesses, m.operationFailures, m.operationDuration,
		m.handlerAttempts, m.handlerSuccesses, m.handlerFailures, m.handlerDuration,
		m.syncPushes,
	)
	return m
}

func (m *Metrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.operationAttempts.WithLabelValues(operation, service).Inc()
}

func (m *Metrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.operationSuccesses.WithLabelValues(operation, service).Inc()
}

func (m *Metrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.operationFailures.WithLabelValues(operation, service).Inc()
}

func (m *Metrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.operationDuration.WithLabelValues(operation, service).Observe(d.Seconds())
}

func (m *Metrics) RecordHandlerAttempt(_ context.Context, handler string) {
	m.handlerAttempts.WithLabelValues(handler).Inc()
}

func (m *Metrics) RecordHandlerSuccess(_ context.Context, handler string) {
	m.handlerSuccesses.WithLabelValues(handler).Inc()
}

func (m *Metrics) RecordHandlerFailure(_ context.Context, handler string) {
	m.handlerFailures.WithLabelValues(handler).Inc()
}

func (m *Metrics) RecordHandlerDuration(_ context.Context, handler string, d time.Duration) {
	m.handlerDuration.WithLabelValues(handler).Observe(d.Seconds())
}

// RecordSyncPush counts one best-effort push to an external surface.
// Surface is "embed" or "thread_title"; outcome is "ok", "skipped" or "error".
func (m *Metrics) RecordSyncPush(_ context.Context, surface, outcome string) {
	m.syncPushes.WithLabelValues(surface, outcome).Inc()
}
