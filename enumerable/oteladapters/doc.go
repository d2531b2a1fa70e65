// Package oteladapters implements the enumerable observability interfaces on top of OpenTelemetry.
//
// Wire them into the diff engine and the event raiser through their options:
//
//	engine, err := diff.NewEngine(
//		diff.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		diff.WithTracing(oteladapters.NewTracingCollector(tracer)),
//		diff.WithContextualLogger(oteladapters.NewSlogBridgeLogger("diff")),
//	)
package oteladapters
