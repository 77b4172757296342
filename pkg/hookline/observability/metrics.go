package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records dispatch metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordHandler records one handler invocation with its duration and error status.
	RecordHandler(ctx context.Context, event string, priority int, duration time.Duration, err error)

	// RecordDispatch records a finished dispatch pass.
	RecordDispatch(ctx context.Context, event string, success bool, duration time.Duration)

	// RecordReentrancy records a rejected reentrant invocation.
	RecordReentrancy(ctx context.Context, event string, priority int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	handlerInvocations metric.Int64Counter
	handlerLatency     metric.Float64Histogram
	handlerErrors      metric.Int64Counter
	dispatchPasses     metric.Int64Counter
	dispatchLatency    metric.Float64Histogram
	reentrancyFaults   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.GetMeterProvider())
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates the instruments on the given provider.
func newOtelMetrics(provider metric.MeterProvider) (*otelMetrics, error) {
	meter := provider.Meter(instrumentationName)

	handlerInvocations, err := meter.Int64Counter("hookline.handler.invocations",
		metric.WithDescription("Number of handler invocations"),
	)
	if err != nil {
		return nil, err
	}

	handlerLatency, err := meter.Float64Histogram("hookline.handler.latency_ms",
		metric.WithDescription("Handler latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	handlerErrors, err := meter.Int64Counter("hookline.handler.errors",
		metric.WithDescription("Number of handler invocations that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	dispatchPasses, err := meter.Int64Counter("hookline.dispatch.passes",
		metric.WithDescription("Number of dispatch passes"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("hookline.dispatch.latency_ms",
		metric.WithDescription("Dispatch pass latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	reentrancyFaults, err := meter.Int64Counter("hookline.dispatch.reentrancy_faults",
		metric.WithDescription("Number of rejected reentrant invocations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		handlerInvocations: handlerInvocations,
		handlerLatency:     handlerLatency,
		handlerErrors:      handlerErrors,
		dispatchPasses:     dispatchPasses,
		dispatchLatency:    dispatchLatency,
		reentrancyFaults:   reentrancyFaults,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// NewMetricsRecorderFrom returns a MetricsRecorder bound to a specific
// provider instead of the global one.
func NewMetricsRecorderFrom(provider metric.MeterProvider) (MetricsRecorder, error) {
	return newOtelMetrics(provider)
}

// RecordHandler records a handler invocation.
func (m *otelMetrics) RecordHandler(ctx context.Context, event string, priority int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("event", event),
		attribute.Int("priority", priority),
	)

	m.handlerInvocations.Add(ctx, 1, attrs)
	m.handlerLatency.Record(ctx, Milliseconds(duration), attrs)

	if err != nil {
		m.handlerErrors.Add(ctx, 1, attrs)
	}
}

// RecordDispatch records a dispatch pass.
func (m *otelMetrics) RecordDispatch(ctx context.Context, event string, success bool, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("event", event),
		attribute.Bool("success", success),
	)
	m.dispatchPasses.Add(ctx, 1, attrs)
	m.dispatchLatency.Record(ctx, Milliseconds(duration), attrs)
}

// RecordReentrancy records a reentrancy fault.
func (m *otelMetrics) RecordReentrancy(ctx context.Context, event string, priority int) {
	m.reentrancyFaults.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event", event),
		attribute.Int("priority", priority),
	))
}
