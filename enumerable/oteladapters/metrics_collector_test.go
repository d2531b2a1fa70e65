package oteladapters_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/diff"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/oteladapters"
)

func givenMeter() (metric.Meter, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return provider.Meter("test"), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	return resourceMetrics
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// setup
	meter, reader := givenMeter()
	collector := oteladapters.NewMetricsCollector(meter)

	// act
	collector.RecordDuration("diff_analysis_duration_seconds", 150*time.Millisecond, map[string]string{
		"operation": "analyze",
		"status":    "success",
	})

	// assert
	histogram := findHistogramMetric(t, collect(t, reader), "diff_analysis_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)

	dataPoint := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), dataPoint.Count)
	assert.InDelta(t, 0.15, dataPoint.Sum, 0.001)

	expectedAttrs := attribute.NewSet(
		attribute.String("operation", "analyze"),
		attribute.String("status", "success"),
	)
	assert.True(t, dataPoint.Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_DurationBuckets(t *testing.T) {
	meter, reader := givenMeter()
	collector := oteladapters.NewMetricsCollector(meter, oteladapters.WithDurationBuckets(0.001, 0.01, 0.1))

	collector.RecordDurationContext(context.Background(), "session_replay_duration_seconds", 5*time.Millisecond, nil)

	histogram := findHistogramMetric(t, collect(t, reader), "session_replay_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, []float64{0.001, 0.01, 0.1}, histogram.DataPoints[0].Bounds)
	assert.Equal(t, []uint64{0, 1, 0, 0}, histogram.DataPoints[0].BucketCounts)
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	meter, reader := givenMeter()
	collector := oteladapters.NewMetricsCollector(meter)
	labels := map[string]string{"operation": "dispatch", "action": "add"}

	collector.IncrementCounter("session_records_dispatched_total", labels)
	collector.IncrementCounterContext(context.Background(), "session_records_dispatched_total", labels)
	collector.IncrementCounter("session_records_dispatched_total", labels)

	counter := findCounterMetric(t, collect(t, reader), "session_records_dispatched_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(3), counter.DataPoints[0].Value)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	meter, reader := givenMeter()
	collector := oteladapters.NewMetricsCollector(meter)

	collector.RecordValue("diff_records_emitted_total", 4, map[string]string{"operation": "analyze"})
	collector.RecordValueContext(context.Background(), "diff_records_emitted_total", 2, map[string]string{"operation": "analyze"})

	gauge := findGaugeMetric(t, collect(t, reader), "diff_records_emitted_total")
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, 2.0, gauge.DataPoints[0].Value)
}

func Test_MetricsCollector_WiredIntoDiffEngine(t *testing.T) {
	// setup
	meter, reader := givenMeter()
	engine, err := diff.NewEngine(diff.WithMetrics(oteladapters.NewMetricsCollector(meter)))
	require.NoError(t, err)

	// act
	_, err = engine.Analyze(
		context.Background(),
		diff.Snapshot{Items: []any{"A", "B", "C"}},
		diff.Snapshot{Items: []any{"A", "C", "D"}},
	)

	// assert
	require.NoError(t, err)
	resourceMetrics := collect(t, reader)
	assert.Len(t, findHistogramMetric(t, resourceMetrics, "diff_analysis_duration_seconds").DataPoints, 1)
	assert.Equal(t, 2.0, findGaugeMetric(t, resourceMetrics, "diff_records_emitted_total").DataPoints[0].Value)
}

func Test_MetricsCollector_InstrumentCreationFailures(t *testing.T) {
	meter, _ := givenMeter()
	collector := oteladapters.NewMetricsCollector(&failingMeter{Meter: meter})
	ctx := context.Background()

	assert.NotPanics(t, func() {
		collector.RecordDuration("any", time.Second, nil)
		collector.IncrementCounterContext(ctx, "any", nil)
		collector.RecordValue("any", 1, nil)
	})
}

// failingMeter refuses to create any instrument.
type failingMeter struct {
	metric.Meter
}

func (m *failingMeter) Float64Histogram(string, ...metric.Float64HistogramOption) (metric.Float64Histogram, error) {
	return nil, errors.New("histogram creation failed")
}

func (m *failingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errors.New("counter creation failed")
}

func (m *failingMeter) Float64Gauge(string, ...metric.Float64GaugeOption) (metric.Float64Gauge, error) {
	return nil, errors.New("gauge creation failed")
}

func findMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	t.Fatalf("metric %s not found", name)

	return metricdata.Metrics{}
}

func findHistogramMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Histogram[float64] {
	t.Helper()

	histogram, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Histogram[float64])
	require.True(t, ok, "%s is not a float64 histogram", name)

	return histogram
}

func findCounterMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()

	counter, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is not an int64 sum", name)

	return counter
}

func findGaugeMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Gauge[float64] {
	t.Helper()

	gauge, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Gauge[float64])
	require.True(t, ok, "%s is not a float64 gauge", name)

	return gauge
}
