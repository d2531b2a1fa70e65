// Package zerologadapters implements the enumerable logging interfaces on top of zerolog.
package zerologadapters

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// Logger implements enumerable.Logger and enumerable.ContextualLogger with a zerolog.Logger.
// slog-style key/value args become typed zerolog fields.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger wraps logger.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{logger: logger}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) {
	send(l.logger.Debug(), msg, args)
}

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) {
	send(l.logger.Info(), msg, args)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) {
	send(l.logger.Warn(), msg, args)
}

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) {
	send(l.logger.Error(), msg, args)
}

// DebugContext logs at debug level, passing ctx to the zerolog hooks.
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	send(withContext(ctx, l.logger.Debug()), msg, args)
}

// InfoContext logs at info level, passing ctx to the zerolog hooks.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	send(withContext(ctx, l.logger.Info()), msg, args)
}

// WarnContext logs at warn level, passing ctx to the zerolog hooks.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	send(withContext(ctx, l.logger.Warn()), msg, args)
}

// ErrorContext logs at error level, passing ctx to the zerolog hooks.
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	send(withContext(ctx, l.logger.Error()), msg, args)
}

// withContext attaches ctx to event unless the level is disabled.
func withContext(ctx context.Context, event *zerolog.Event) *zerolog.Event {
	if event == nil {
		return nil
	}

	return event.Ctx(ctx)
}

// send adds args as fields and writes the event. Disabled levels yield a nil event, which zerolog ignores.
func send(event *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}

		switch value := args[i+1].(type) {
		case string:
			event = event.Str(key, value)
		case int:
			event = event.Int(key, value)
		case int64:
			event = event.Int64(key, value)
		case float64:
			event = event.Float64(key, value)
		case bool:
			event = event.Bool(key, value)
		case time.Duration:
			event = event.Dur(key, value)
		case error:
			event = event.AnErr(key, value)
		default:
			event = event.Interface(key, value)
		}
	}

	event.Msg(msg)
}

var (
	_ enumerable.Logger           = (*Logger)(nil)
	_ enumerable.ContextualLogger = (*Logger)(nil)
)
