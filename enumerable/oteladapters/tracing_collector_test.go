package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/diff"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/oteladapters"
)

func givenTracingCollector() (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(trace.WithSyncer(exporter))

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func Test_TracingCollector_SpanLifecycle(t *testing.T) {
	testCases := []struct {
		name         string
		status       string
		expectedCode codes.Code
	}{
		{name: "success", status: "success", expectedCode: codes.Ok},
		{name: "error", status: "error", expectedCode: codes.Error},
		{name: "other", status: "skipped", expectedCode: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			collector, exporter := givenTracingCollector()

			// act
			_, spanCtx := collector.StartSpan(context.Background(), "diff.analyze", map[string]string{"operation": "analyze"})
			spanCtx.AddAttribute("duration_ms", "1.50")
			collector.FinishSpan(spanCtx, tc.status, map[string]string{"record_count": "2"})

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)

			span := spans[0]
			assert.Equal(t, "diff.analyze", span.Name)
			assert.Equal(t, tc.expectedCode, span.Status.Code)
			assertSpanHasAttribute(t, span, "operation", "analyze")
			assertSpanHasAttribute(t, span, "duration_ms", "1.50")
			assertSpanHasAttribute(t, span, "record_count", "2")
		})
	}
}

func Test_TracingCollector_PropagatesSpanInContext(t *testing.T) {
	collector, exporter := givenTracingCollector()

	ctx, parent := collector.StartSpan(context.Background(), "parent", nil)
	_, child := collector.StartSpan(ctx, "child", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.True(t, parent.(*oteladapters.OTelSpanContext).Span().SpanContext().IsValid())
}

func Test_TracingCollector_IgnoresForeignSpanContexts(t *testing.T) {
	collector, exporter := givenTracingCollector()

	assert.NotPanics(t, func() {
		collector.FinishSpan(foreignSpanContext{}, "success", nil)
	})
	assert.Empty(t, exporter.GetSpans())
}

func Test_TracingCollector_WiredIntoDiffEngine(t *testing.T) {
	collector, exporter := givenTracingCollector()
	engine, err := diff.NewEngine(diff.WithTracing(collector), diff.WithMinIterationLimit(1))
	require.NoError(t, err)

	_, err = engine.Analyze(context.Background(), diff.Snapshot{}, diff.Snapshot{Items: []any{"A"}})

	require.ErrorIs(t, err, enumerable.ErrEndlessCycleDetected)
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "error_type", "endless_cycle")
	assertSpanHasAttribute(t, spans[0], "after_count", "1")
}

type foreignSpanContext struct{}

func (foreignSpanContext) SetStatus(string)            {}
func (foreignSpanContext) AddAttribute(string, string) {}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, expected string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) && attr.Value.AsString() == expected {
			return
		}
	}

	assert.Fail(t, "span attribute missing", "%s=%s", key, expected)
}
