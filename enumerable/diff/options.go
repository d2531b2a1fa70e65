package diff

import (
	"errors"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// DefaultMinIterationLimit is the lower bound of the safety counter of an analysis.
const DefaultMinIterationLimit = 65535

// ErrInvalidIterationLimit is returned when WithMinIterationLimit is given a non-positive limit.
var ErrInvalidIterationLimit = errors.New("iteration limit must be positive")

// Option defines a functional option for configuring an Engine.
type Option func(*Engine) error

// WithMinIterationLimit sets the lower bound of the safety counter.
// The effective limit of an analysis is max(limit, 4 × len(before) × len(after)).
func WithMinIterationLimit(limit int) Option {
	return func(e *Engine) error {
		if limit <= 0 {
			return ErrInvalidIterationLimit
		}

		e.minIterationLimit = limit

		return nil
	}
}

// WithLogger sets the logger for the Engine.
// Debug level: every emitted record. Info level: analysis summaries with durations. Error level: failed analyses.
func WithLogger(logger enumerable.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Engine.
// It receives the same messages as the Logger, together with the analysis context for trace correlation.
func WithContextualLogger(logger enumerable.ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Engine.
// It receives analysis durations, record and iteration counts, and errors.
func WithMetrics(collector enumerable.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Engine. Every analysis runs in its own span.
func WithTracing(collector enumerable.TracingCollector) Option {
	return func(e *Engine) error {
		e.tracingCollector = collector
		return nil
	}
}
