package session

import (
	"context"
	"math"
	"time"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/diff"
)

const (
	logMsgSessionOpened   = "change session opened"
	logMsgSessionClosed   = "change session closed without analysis"
	logMsgSessionReplayed = "change session replayed"
	logMsgReplayFailed    = "change session replay failed"
	logMsgMutationBlocked = "mutation blocked during reset"
	logMsgRecordRaised    = "change raised: "

	logAttrSessionID   = "session_id"
	logAttrAction      = "action"
	logAttrCount       = "count"
	logAttrIndex       = "index"
	logAttrRecordCount = "record_count"
	logAttrDurationMS  = "duration_ms"
	logAttrError       = "error"

	metricRecordsDispatched = "session_records_dispatched_total"
	metricReplayDuration    = "session_replay_duration_seconds"
	metricMutationsBlocked  = "session_mutations_blocked_total"

	labelOperation = "operation"
	labelAction    = "action"

	operationDispatch = "dispatch"
	operationReplay   = "replay"
	operationNotify   = "notify"
)

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// logOperation logs operational information at info level to every configured logger.
func (r *EventRaiser) logOperation(ctx context.Context, msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}

	if r.contextualLogger != nil {
		r.contextualLogger.InfoContext(ctx, msg, args...)
	}
}

// logWarn logs at warn level to every configured logger.
func (r *EventRaiser) logWarn(ctx context.Context, msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}

	if r.contextualLogger != nil {
		r.contextualLogger.WarnContext(ctx, msg, args...)
	}
}

// logError logs error information at the error level to every configured logger.
func (r *EventRaiser) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if r.logger != nil {
		r.logger.Error(msg, allArgs...)
	}

	if r.contextualLogger != nil {
		r.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	}
}

// logRecord logs a dispatched record at debug level.
func (r *EventRaiser) logRecord(ctx context.Context, record diff.ChangeRecord) {
	msg := logMsgRecordRaised + record.Action.String()
	index := record.NewItemsIndex
	if record.Action == enumerable.ActionRemove {
		index = record.OldItemsIndex
	}

	if r.logger != nil {
		r.logger.Debug(msg, logAttrIndex, index, logAttrCount, record.Len())
	}

	if r.contextualLogger != nil {
		r.contextualLogger.DebugContext(ctx, msg, logAttrIndex, index, logAttrCount, record.Len())
	}
}

func (r *EventRaiser) recordDispatched(ctx context.Context, action enumerable.Action) {
	r.incrementCounter(ctx, metricRecordsDispatched, map[string]string{
		labelOperation: operationDispatch,
		labelAction:    action.String(),
	})
}

func (r *EventRaiser) recordBlocked(ctx context.Context, action enumerable.Action) {
	r.incrementCounter(ctx, metricMutationsBlocked, map[string]string{
		labelOperation: operationNotify,
		labelAction:    action.String(),
	})
}

func (r *EventRaiser) recordReplay(ctx context.Context, duration time.Duration) {
	if r.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: operationReplay}

	if contextual, ok := r.metricsCollector.(enumerable.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricReplayDuration, duration, labels)
	} else {
		r.metricsCollector.RecordDuration(metricReplayDuration, duration, labels)
	}
}

func (r *EventRaiser) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if r.metricsCollector == nil {
		return
	}

	if contextual, ok := r.metricsCollector.(enumerable.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
	} else {
		r.metricsCollector.IncrementCounter(metric, labels)
	}
}
