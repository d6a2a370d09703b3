package observable_test

import (
	"context"
	"sync"
	"time"

	"github.com/bookswap-hub/bookswap/shared/shell"
)

type metricRecord struct {
	metric string
	labels map[string]string
}

type metricsCollectorSpy struct {
	mu        sync.Mutex
	counters  []metricRecord
	durations []metricRecord
}

func (s *metricsCollectorSpy) RecordDuration(metric string, _ time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.durations = append(s.durations, metricRecord{metric, labels})
}

func (s *metricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = append(s.counters, metricRecord{metric, labels})
}

func (s *metricsCollectorSpy) RecordValue(string, float64, map[string]string) {}

func (s *metricsCollectorSpy) hasCounter(metric, labelKey, labelVal string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.counters {
		if r.metric == metric && r.labels[labelKey] == labelVal {
			return true
		}
	}

	return false
}

func (s *metricsCollectorSpy) hasDuration(metric string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.durations {
		if r.metric == metric {
			return true
		}
	}

	return false
}

type loggerSpy struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (l *loggerSpy) DebugContext(context.Context, string, ...any) {}
func (l *loggerSpy) WarnContext(context.Context, string, ...any)  {}

func (l *loggerSpy) InfoContext(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *loggerSpy) ErrorContext(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

type spanSpy struct {
	status string
	attrs  map[string]string
}

func (s *spanSpy) SetStatus(status string)        { s.status = status }
func (s *spanSpy) AddAttribute(key, value string) { s.attrs[key] = value }

type tracingCollectorSpy struct {
	started  []string
	finished []*spanSpy
}

func (t *tracingCollectorSpy) StartSpan(ctx context.Context, name string, _ map[string]string) (context.Context, shell.SpanContext) {
	t.started = append(t.started, name)
	return ctx, &spanSpy{attrs: map[string]string{}}
}

func (t *tracingCollectorSpy) FinishSpan(span shell.SpanContext, status string, attrs map[string]string) {
	s := span.(*spanSpy)
	s.status = status
	for k, v := range attrs {
		s.attrs[k] = v
	}
	t.finished = append(t.finished, s)
}

type testCommand struct{}

func (testCommand) CommandType() string { return "TestCommand" }

type commandHandlerStub struct {
	result shell.HandlerResult
	err    error
	calls  int
}

func (h *commandHandlerStub) Handle(context.Context, testCommand) (shell.HandlerResult, error) {
	h.calls++
	return h.result, h.err
}

type testQuery struct{}

func (testQuery) QueryType() string { return "TestQuery" }

type testResult struct{ seq uint }

func (r testResult) GetSequenceNumber() uint { return r.seq }

type queryHandlerStub struct {
	result testResult
	err    error
}

func (h *queryHandlerStub) Handle(context.Context, testQuery) (testResult, error) {
	return h.result, h.err
}
