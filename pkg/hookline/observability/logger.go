// Package observability provides logging, metrics and tracing for hookline
// dispatch passes.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds dispatch context to a logger.
// Returns a new logger with dispatch_id and event fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "5d1c...", "order.saved")
//	enriched.Debug("handler starting") // includes dispatch_id, event
func EnrichLogger(logger *slog.Logger, dispatchID, event string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("dispatch_id", dispatchID),
		slog.String("event", event),
	)
}

// LogDispatchStart logs the start of a dispatch pass.
func LogDispatchStart(logger *slog.Logger, depth int) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch starting",
		slog.Int("depth", depth),
	)
}

// LogDispatchComplete logs a pass that ran every handler.
func LogDispatchComplete(logger *slog.Logger, duration time.Duration, handlers int) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch completed",
		slog.Float64("duration_ms", Milliseconds(duration)),
		slog.Int("handlers_run", handlers),
	)
}

// LogDispatchError logs a pass aborted by an error.
func LogDispatchError(logger *slog.Logger, err error, duration time.Duration, handlers int) {
	if logger == nil {
		return
	}
	logger.Error("dispatch failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", Milliseconds(duration)),
		slog.Int("handlers_run", handlers),
	)
}

// LogHandlerStart logs a handler invocation.
func LogHandlerStart(logger *slog.Logger, handler string, priority int) {
	if logger == nil {
		return
	}
	logger.Debug("handler starting",
		slog.String("handler", handler),
		slog.Int("priority", priority),
	)
}

// LogHandlerComplete logs a handler that returned normally.
func LogHandlerComplete(logger *slog.Logger, handler string, priority int, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("handler completed",
		slog.String("handler", handler),
		slog.Int("priority", priority),
		slog.Float64("duration_ms", Milliseconds(duration)),
	)
}

// LogHandlerError logs a handler that returned an error.
func LogHandlerError(logger *slog.Logger, handler string, priority int, err error) {
	if logger == nil {
		return
	}
	logger.Error("handler failed",
		slog.String("handler", handler),
		slog.Int("priority", priority),
		slog.String("error", err.Error()),
	)
}

// LogReentrancy logs an attempt to re-enter a slot that is still running.
func LogReentrancy(logger *slog.Logger, handler string, priority int) {
	if logger == nil {
		return
	}
	logger.Warn("reentrant dispatch rejected",
		slog.String("handler", handler),
		slog.Int("priority", priority),
	)
}

// Milliseconds converts a duration to the fractional milliseconds reported
// in duration_ms log fields and the latency histograms, at microsecond
// resolution.
func Milliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
