package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// TracingCollector implements enumerable.TracingCollector on the OpenTelemetry tracing API.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a collector starting its spans from tracer.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts a span carrying attrs and returns the context holding it.
func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, enumerable.SpanContext) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attributesOf(attrs)...))

	return ctx, &OTelSpanContext{span: span}
}

// FinishSpan adds attrs, sets the final status and ends the span. Foreign span contexts are ignored.
func (t *TracingCollector) FinishSpan(spanCtx enumerable.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	otelSpanCtx.span.SetAttributes(attributesOf(attrs)...)
	otelSpanCtx.SetStatus(status)
	otelSpanCtx.span.End()
}

var _ enumerable.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext implements enumerable.SpanContext by wrapping an OpenTelemetry span.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus maps success and error to the OpenTelemetry status codes.
// Any other status is recorded as the "status" attribute.
func (s *OTelSpanContext) SetStatus(status string) {
	switch status {
	case "success", "ok":
		s.span.SetStatus(codes.Ok, "")
	case "error":
		s.span.SetStatus(codes.Error, "operation failed")
	default:
		s.span.SetAttributes(attribute.String("status", status))
	}
}

// AddAttribute adds a string attribute to the span.
func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

// Span returns the wrapped span, e.g. to record events on it.
func (s *OTelSpanContext) Span() trace.Span {
	return s.span
}

var _ enumerable.SpanContext = (*OTelSpanContext)(nil)
