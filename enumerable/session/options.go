package session

import (
	"errors"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/diff"
)

// ErrNilEngine is returned when WithEngine is given nil.
var ErrNilEngine = errors.New("diff engine must not be nil")

// ContentsFunc renders the current state of one element for replacement detection.
type ContentsFunc func(item any) any

// Option defines a functional option for configuring an EventRaiser.
type Option func(*EventRaiser) error

// WithEngine sets the diff engine used to analyze finished sessions.
func WithEngine(engine *diff.Engine) Option {
	return func(r *EventRaiser) error {
		if engine == nil {
			return ErrNilEngine
		}

		r.engine = engine

		return nil
	}
}

// WithContents replaces enumerable.Snapshot as the way element contents are captured.
// Passing nil disables contents snapshots, so replacements are never detected.
func WithContents(contents ContentsFunc) Option {
	return func(r *EventRaiser) error {
		r.contents = contents
		return nil
	}
}

// WithLogger sets the logger for the EventRaiser.
// Debug level: dispatched records. Info level: suppression windows opened and replayed.
func WithLogger(logger enumerable.Logger) Option {
	return func(r *EventRaiser) error {
		r.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the EventRaiser.
func WithContextualLogger(logger enumerable.ContextualLogger) Option {
	return func(r *EventRaiser) error {
		r.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the EventRaiser.
// It receives dispatched record counts per action, replay durations and blocked mutations.
func WithMetrics(collector enumerable.MetricsCollector) Option {
	return func(r *EventRaiser) error {
		r.metricsCollector = collector
		return nil
	}
}
