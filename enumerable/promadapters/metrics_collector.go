// Package promadapters implements enumerable.MetricsCollector on the Prometheus client library.
package promadapters

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

const (
	helpDuration = "Duration of enumerable diff and session operations in seconds."
	helpCounter  = "Count of enumerable diff and session events."
	helpValue    = "Last value of an enumerable diff measurement."
)

// MetricsCollector maps durations to histograms, counters to counters and values to gauges.
//
// Vectors are registered on first use of a metric name; their label names are the label keys of that first call.
// Later calls missing one of these labels report it as empty; labels that were not part of the first call are dropped.
type MetricsCollector struct {
	registerer prometheus.Registerer
	namespace  string
	buckets    []float64

	mu         sync.Mutex
	histograms map[string]*labeledVec[*prometheus.HistogramVec]
	counters   map[string]*labeledVec[*prometheus.CounterVec]
	gauges     map[string]*labeledVec[*prometheus.GaugeVec]
}

type labeledVec[V any] struct {
	vec        V
	labelNames []string
}

// Option defines a functional option for configuring a MetricsCollector.
type Option func(*MetricsCollector)

// WithNamespace prefixes every metric name with namespace.
func WithNamespace(namespace string) Option {
	return func(m *MetricsCollector) {
		m.namespace = namespace
	}
}

// WithBuckets sets the histogram buckets, in seconds. The default is prometheus.DefBuckets.
func WithBuckets(buckets ...float64) Option {
	return func(m *MetricsCollector) {
		m.buckets = buckets
	}
}

// NewMetricsCollector creates a collector registering its vectors with registerer.
func NewMetricsCollector(registerer prometheus.Registerer, options ...Option) *MetricsCollector {
	m := &MetricsCollector{
		registerer: registerer,
		buckets:    prometheus.DefBuckets,
		histograms: make(map[string]*labeledVec[*prometheus.HistogramVec]),
		counters:   make(map[string]*labeledVec[*prometheus.CounterVec]),
		gauges:     make(map[string]*labeledVec[*prometheus.GaugeVec]),
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// RecordDuration observes duration in seconds.
func (m *MetricsCollector) RecordDuration(name string, duration time.Duration, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vec := lookupOrRegister(m, m.histograms, name, labels, func(labelNames []string) *prometheus.HistogramVec {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      helpDuration,
			Buckets:   m.buckets,
		}, labelNames)
	})

	if vec != nil {
		vec.vec.WithLabelValues(vec.values(labels)...).Observe(duration.Seconds())
	}
}

// IncrementCounter adds one to a counter.
func (m *MetricsCollector) IncrementCounter(name string, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vec := lookupOrRegister(m, m.counters, name, labels, func(labelNames []string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      helpCounter,
		}, labelNames)
	})

	if vec != nil {
		vec.vec.WithLabelValues(vec.values(labels)...).Inc()
	}
}

// RecordValue sets a gauge.
func (m *MetricsCollector) RecordValue(name string, value float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vec := lookupOrRegister(m, m.gauges, name, labels, func(labelNames []string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      helpValue,
		}, labelNames)
	})

	if vec != nil {
		vec.vec.WithLabelValues(vec.values(labels)...).Set(value)
	}
}

// lookupOrRegister returns the cached vector for name, registering a new one on first use.
// A vector already registered elsewhere under the same description is reused; nil means registration failed.
func lookupOrRegister[V prometheus.Collector](
	m *MetricsCollector,
	cache map[string]*labeledVec[V],
	name string,
	labels map[string]string,
	create func(labelNames []string) V,
) *labeledVec[V] {
	if cached, ok := cache[name]; ok {
		return cached
	}

	labelNames := make([]string, 0, len(labels))
	for key := range labels {
		labelNames = append(labelNames, key)
	}

	slices.Sort(labelNames)

	vec := create(labelNames)
	if err := m.registerer.Register(vec); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if !errors.As(err, &alreadyRegistered) {
			return nil
		}

		existing, ok := alreadyRegistered.ExistingCollector.(V)
		if !ok {
			return nil
		}

		vec = existing
	}

	cached := &labeledVec[V]{vec: vec, labelNames: labelNames}
	cache[name] = cached

	return cached
}

// values orders labels by the label names of the vector.
func (v *labeledVec[V]) values(labels map[string]string) []string {
	values := make([]string, len(v.labelNames))
	for i, name := range v.labelNames {
		values[i] = labels[name]
	}

	return values
}

var _ enumerable.MetricsCollector = (*MetricsCollector)(nil)
