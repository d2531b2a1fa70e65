// Package helper provides test doubles for the observability interfaces of the enumerable packages.
//
// The spies capture log records, metric calls, spans and contextual log calls so tests can assert on the
// instrumentation of the diff engine and the event-raising session with fluent matchers.
package helper
