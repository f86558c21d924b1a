package instrument

import (
	"context"
	"slices"
	"sync"
	"testing"
)

type logEvent struct {
	level    string
	msg      string
	metadata Metadata
	details  Metadata
}

type gaugeEvent struct {
	name  string
	gauge Gauge
}

// recorder captures every telemetry call in order, across logs, metrics and
// spans.
type recorder struct {
	mu     sync.Mutex
	logs   []logEvent
	gauges []gaugeEvent
	trail  []string
}

func (r *recorder) Log(_ context.Context, level, msg string, metadata, details Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, logEvent{level: level, msg: msg, metadata: metadata, details: details})
	r.trail = append(r.trail, "log:"+level)
}

func (r *recorder) Gauge(_ context.Context, name string, g Gauge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gauges = append(r.gauges, gaugeEvent{name: name, gauge: g})
	r.trail = append(r.trail, "gauge:"+name)
}

func (r *recorder) note(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trail = append(r.trail, s)
}

func (r *recorder) Trail() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.trail)
}

func (r *recorder) Logs() []logEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.logs)
}

func (r *recorder) Gauges() []gaugeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.gauges)
}

func (r *recorder) rootSpan() *recordingSpan {
	return &recordingSpan{rec: r, name: "root", tags: map[string]any{}}
}

// recordingSpan is an in-memory Span.
type recordingSpan struct {
	rec      *recorder
	name     string
	metadata Metadata

	mu       sync.Mutex
	tags     map[string]any
	children []*recordingSpan
	finishes int
}

func (s *recordingSpan) ChildSpan(name string, md Metadata) Span {
	child := &recordingSpan{rec: s.rec, name: name, metadata: md, tags: map[string]any{}}
	s.mu.Lock()
	s.children = append(s.children, child)
	s.mu.Unlock()
	if s.rec != nil {
		s.rec.note("span:start:" + name)
	}
	return child
}

func (s *recordingSpan) Tag(key string, value any) {
	s.mu.Lock()
	s.tags[key] = value
	s.mu.Unlock()
	if s.rec != nil {
		s.rec.note("span:tag:" + key)
	}
}

func (s *recordingSpan) Finish() {
	s.mu.Lock()
	s.finishes++
	s.mu.Unlock()
	if s.rec != nil {
		s.rec.note("span:finish")
	}
}

func (s *recordingSpan) Children() []*recordingSpan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.children)
}

// onlyChild returns the single child span or fails the test.
func (s *recordingSpan) onlyChild(t *testing.T) *recordingSpan {
	t.Helper()
	children := s.Children()
	if len(children) != 1 {
		t.Fatalf("expected 1 child span, got %d", len(children))
	}
	return children[0]
}

// panickingSpan fails on every tracing call.
type panickingSpan struct {
	failChild bool
}

func (s *panickingSpan) ChildSpan(name string, md Metadata) Span {
	if s.failChild {
		panic("tracer unavailable")
	}
	return &panickingSpan{}
}

func (s *panickingSpan) Tag(key string, value any) { panic("tag failed") }
func (s *panickingSpan) Finish()                   { panic("finish failed") }

func equalTrail(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("telemetry order mismatch\n got: %v\nwant: %v", got, want)
	}
}
