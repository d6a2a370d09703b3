package telemetry

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/trace"

	"github.com/bookswap-hub/bookswap/shared/shell"
)

const (
	namespace     = "bookswap"
	labelTraceID  = "trace_id"
	counterSuffix = "_total"
)

var durationBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// MetricsCollector implements shell.ContextualMetricsCollector on a Prometheus registry.
//
// Vectors are registered lazily on first use of a metric name. The label names of a metric
// are fixed by that first use, later calls must pass the same label keys.
// RecordValue adds to a counter for metric names ending in _total and sets a gauge otherwise.
type MetricsCollector struct {
	factory    promauto.Factory
	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

// NewMetricsCollector creates a collector registering its vectors with registerer.
func NewMetricsCollector(registerer prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		factory:    promauto.With(registerer),
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}
}

// RecordDuration observes the duration in seconds.
func (m *MetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	m.histogram(metric, labels).With(labels).Observe(duration.Seconds())
}

// IncrementCounter increments the counter by one.
func (m *MetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	m.counter(metric, labels).With(labels).Inc()
}

// RecordValue adds value to a _total counter or sets the gauge of the same name.
func (m *MetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	if strings.HasSuffix(metric, counterSuffix) {
		m.counter(metric, labels).With(labels).Add(value)
		return
	}

	m.gauge(metric, labels).With(labels).Set(value)
}

// RecordDurationContext attaches the trace id of ctx as an exemplar when a span is recording.
func (m *MetricsCollector) RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	observer := m.histogram(metric, labels).With(labels)

	if exemplar := exemplarFrom(ctx); exemplar != nil {
		if exemplarObserver, ok := observer.(prometheus.ExemplarObserver); ok {
			exemplarObserver.ObserveWithExemplar(duration.Seconds(), exemplar)
			return
		}
	}

	observer.Observe(duration.Seconds())
}

// IncrementCounterContext attaches the trace id of ctx as an exemplar when a span is recording.
func (m *MetricsCollector) IncrementCounterContext(ctx context.Context, metric string, labels map[string]string) {
	counter := m.counter(metric, labels).With(labels)

	if exemplar := exemplarFrom(ctx); exemplar != nil {
		if exemplarAdder, ok := counter.(prometheus.ExemplarAdder); ok {
			exemplarAdder.AddWithExemplar(1, exemplar)
			return
		}
	}

	counter.Inc()
}

// RecordValueContext behaves like RecordValue.
func (m *MetricsCollector) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	m.RecordValue(metric, value, labels)
}

func (m *MetricsCollector) histogram(metric string, labels map[string]string) *prometheus.HistogramVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	vec, ok := m.histograms[metric]
	if !ok {
		vec = m.factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      metric,
			Help:      helpFor(metric),
			Buckets:   durationBuckets,
		}, labelNames(labels))
		m.histograms[metric] = vec
	}

	return vec
}

func (m *MetricsCollector) counter(metric string, labels map[string]string) *prometheus.CounterVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	vec, ok := m.counters[metric]
	if !ok {
		vec = m.factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      metric,
			Help:      helpFor(metric),
		}, labelNames(labels))
		m.counters[metric] = vec
	}

	return vec
}

func (m *MetricsCollector) gauge(metric string, labels map[string]string) *prometheus.GaugeVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	vec, ok := m.gauges[metric]
	if !ok {
		vec = m.factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      metric,
			Help:      helpFor(metric),
		}, labelNames(labels))
		m.gauges[metric] = vec
	}

	return vec
}

func labelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func helpFor(metric string) string {
	return strings.ReplaceAll(metric, "_", " ")
}

func exemplarFrom(ctx context.Context) prometheus.Labels {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsSampled() {
		return nil
	}

	return prometheus.Labels{labelTraceID: spanContext.TraceID().String()}
}

var _ shell.ContextualMetricsCollector = (*MetricsCollector)(nil)
