package hookline

import (
	"log/slog"

	"github.com/randalmurphal/hookline/pkg/hookline/config"
	"github.com/randalmurphal/hookline/pkg/hookline/observability"
)

// DefaultPriority is the priority Add uses unless WithDefaultPriority says
// otherwise.
const DefaultPriority = config.DefaultPriority

// dispatcherConfig holds configuration for a Dispatcher.
type dispatcherConfig struct {
	defaultPriority int
	maxDepth        int
	services        Locator

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// defaultDispatcherConfig returns the default configuration: priority 10,
// unlimited nesting, no logging, metrics or tracing.
func defaultDispatcherConfig() dispatcherConfig {
	return dispatcherConfig{
		defaultPriority: DefaultPriority,
		metrics:         observability.NoopMetrics{},
		spans:           observability.NoopSpanManager{},
	}
}

// Option configures a Dispatcher.
type Option func(*dispatcherConfig)

// WithDefaultPriority sets the priority used by Add.
// Default: 10
func WithDefaultPriority(priority int) Option {
	return func(c *dispatcherConfig) {
		c.defaultPriority = priority
	}
}

// WithMaxDepth limits how deeply dispatches may nest inside handlers.
// Nesting is tracked through the context handed to each handler, so a
// handler must pass its ctx on for the limit to apply. Zero or negative
// means unlimited, which is the default.
//
// Example:
//
//	d := hookline.New(hookline.WithMaxDepth(32))
func WithMaxDepth(n int) Option {
	return func(c *dispatcherConfig) {
		if n < 0 {
			n = 0
		}
		c.maxDepth = n
	}
}

// WithLogger enables structured logging of dispatch passes.
// Handler-level events are logged at Debug, failures at Error and
// reentrancy faults at Warn. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *dispatcherConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics using the global meter
// provider. Passing false restores the no-op recorder.
func WithMetrics(enabled bool) Option {
	return func(c *dispatcherConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder sets a specific metrics recorder.
func WithMetricsRecorder(r observability.MetricsRecorder) Option {
	return func(c *dispatcherConfig) {
		if r == nil {
			r = observability.NoopMetrics{}
		}
		c.metrics = r
	}
}

// WithTracing enables OpenTelemetry tracing using the global tracer
// provider. Passing false restores the no-op span manager.
func WithTracing(enabled bool) Option {
	return func(c *dispatcherConfig) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithSpanManager sets a specific span manager.
func WithSpanManager(m observability.SpanManager) Option {
	return func(c *dispatcherConfig) {
		if m == nil {
			m = observability.NoopSpanManager{}
		}
		c.spans = m
	}
}

// WithServices attaches the service directory the dispatcher was wired
// from. Handlers can reach it through Dispatcher.Services.
func WithServices(loc Locator) Option {
	return func(c *dispatcherConfig) {
		c.services = loc
	}
}
