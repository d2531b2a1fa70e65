package diff

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

const (
	logMsgAnalysisCompleted = "diff analysis completed"
	logMsgAnalysisFailed    = "diff analysis failed"
	logMsgRecordEmitted     = "diff record emitted: "

	logAttrError       = "error"
	logAttrRecordCount = "record_count"
	logAttrIterations  = "iterations"
	logAttrDurationMS  = "duration_ms"
	logAttrIndex       = "index"
	logAttrCount       = "count"

	spanNameAnalyze = "diff.analyze"

	spanAttrOperation   = "operation"
	spanAttrBeforeCount = "before_count"
	spanAttrAfterCount  = "after_count"
	spanAttrRecordCount = "record_count"
	spanAttrIterations  = "iterations"
	spanAttrErrorType   = "error_type"
	spanAttrDurationMS  = "duration_ms"

	metricAnalysisDuration = "diff_analysis_duration_seconds"
	metricRecordsEmitted   = "diff_records_emitted_total"
	metricIterations       = "diff_iterations_total"
	metricAnalysisErrors   = "diff_analysis_errors_total"

	labelStatus = "status"

	operationAnalyze = "analyze"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeEndlessCycle = "endless_cycle"
	errorTypeAnalysis     = "analysis_error"
)

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// logOperation logs operational information at info level to every configured logger.
func (e *Engine) logOperation(ctx context.Context, msg string, args ...any) {
	if e.logger != nil {
		e.logger.Info(msg, args...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.InfoContext(ctx, msg, args...)
	}
}

// logRecord logs an emitted record at debug level to every configured logger.
func (e *Engine) logRecord(ctx context.Context, record ChangeRecord) {
	msg := logMsgRecordEmitted + record.Action.String()
	index := record.NewItemsIndex
	if record.Action == enumerable.ActionRemove {
		index = record.OldItemsIndex
	}

	if e.logger != nil {
		e.logger.Debug(msg, logAttrIndex, index, logAttrCount, record.Len())
	}

	if e.contextualLogger != nil {
		e.contextualLogger.DebugContext(ctx, msg, logAttrIndex, index, logAttrCount, record.Len())
	}
}

// logError logs error information at the error level to every configured logger.
func (e *Engine) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if e.logger != nil {
		e.logger.Error(msg, allArgs...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	}
}

// === Tracing Observer ===

// analyzeTracingObserver encapsulates the span lifecycle of one analysis.
type analyzeTracingObserver struct {
	e    *Engine
	span enumerable.SpanContext
}

// startAnalyzeTracing starts a span for an analysis if the tracing collector is configured.
func (e *Engine) startAnalyzeTracing(ctx context.Context, before, after Snapshot) (*analyzeTracingObserver, context.Context) {
	observer := &analyzeTracingObserver{e: e}

	if e.tracingCollector == nil {
		return observer, ctx
	}

	ctx, observer.span = e.tracingCollector.StartSpan(ctx, spanNameAnalyze, map[string]string{
		spanAttrOperation:   operationAnalyze,
		spanAttrBeforeCount: strconv.Itoa(len(before.Items)),
		spanAttrAfterCount:  strconv.Itoa(len(after.Items)),
	})

	return observer, ctx
}

// finishSuccess completes the span of a successful analysis.
func (o *analyzeTracingObserver) finishSuccess(recordCount, iterations int, duration time.Duration) {
	if o.span == nil {
		return
	}

	o.span.SetStatus(statusSuccess)
	o.span.AddAttribute(spanAttrDurationMS, formatDuration(duration))

	o.e.tracingCollector.FinishSpan(o.span, statusSuccess, map[string]string{
		spanAttrRecordCount: strconv.Itoa(recordCount),
		spanAttrIterations:  strconv.Itoa(iterations),
	})
}

// finishError completes the span of a failed analysis.
func (o *analyzeTracingObserver) finishError(errorType string, duration time.Duration) {
	if o.span == nil {
		return
	}

	o.span.SetStatus(statusError)
	o.span.AddAttribute(spanAttrErrorType, errorType)
	o.span.AddAttribute(spanAttrDurationMS, formatDuration(duration))

	o.e.tracingCollector.FinishSpan(o.span, statusError, map[string]string{spanAttrErrorType: errorType})
}

func formatDuration(duration time.Duration) string {
	return strconv.FormatFloat(toMilliseconds(duration), 'f', 2, 64)
}

// === Metrics Observer ===

// analyzeMetricsObserver encapsulates the metrics collection of one analysis.
type analyzeMetricsObserver struct {
	e   *Engine
	ctx context.Context
}

func (e *Engine) startAnalyzeMetrics(ctx context.Context) *analyzeMetricsObserver {
	return &analyzeMetricsObserver{e: e, ctx: ctx}
}

// recordSuccess records all metrics for a successful analysis.
func (o *analyzeMetricsObserver) recordSuccess(recordCount, iterations int, duration time.Duration) {
	o.recordDuration(duration, statusSuccess)
	o.recordValue(metricRecordsEmitted, float64(recordCount), statusSuccess)
	o.recordValue(metricIterations, float64(iterations), statusSuccess)
}

// recordError records all metrics for a failed analysis.
func (o *analyzeMetricsObserver) recordError(errorType string, duration time.Duration) {
	o.recordDuration(duration, statusError)

	if o.e.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operationAnalyze,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	}

	if contextual, ok := o.e.metricsCollector.(enumerable.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(o.ctx, metricAnalysisErrors, labels)
	} else {
		o.e.metricsCollector.IncrementCounter(metricAnalysisErrors, labels)
	}
}

func (o *analyzeMetricsObserver) recordDuration(duration time.Duration, status string) {
	if o.e.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operationAnalyze, labelStatus: status}

	if contextual, ok := o.e.metricsCollector.(enumerable.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(o.ctx, metricAnalysisDuration, duration, labels)
	} else {
		o.e.metricsCollector.RecordDuration(metricAnalysisDuration, duration, labels)
	}
}

func (o *analyzeMetricsObserver) recordValue(metric string, value float64, status string) {
	if o.e.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operationAnalyze, labelStatus: status}

	if contextual, ok := o.e.metricsCollector.(enumerable.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(o.ctx, metric, value, labels)
	} else {
		o.e.metricsCollector.RecordValue(metric, value, labels)
	}
}
