package scheduler

import (
	"context"
	"sync"
	"testing"

	"github.com/AshishBagdane/go-faas-scheduler/internal/codec"
	"github.com/AshishBagdane/go-faas-scheduler/internal/observability"
	"github.com/AshishBagdane/go-faas-scheduler/internal/partition"
)

// recordingSpan satisfies observability.Span, recording the tags set on
// it; End and RecordError are no-ops.
type recordingSpan struct {
	mu   sync.Mutex
	tags map[string]string
}

func (s *recordingSpan) End() {}

func (s *recordingSpan) SetTag(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tags == nil {
		s.tags = make(map[string]string)
	}
	s.tags[key] = value
}

func (s *recordingSpan) RecordError(err error) {}

// recordingTracer counts StartSpan calls across an entire Run, including
// the ones PoolWithTracing starts around each Submit/Wait.
type recordingTracer struct {
	mu    sync.Mutex
	spans int
	last  *recordingSpan
}

func (t *recordingTracer) StartSpan(ctx context.Context, name string) (context.Context, observability.Span) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans++
	span := &recordingSpan{}
	t.last = span
	return ctx, span
}

func (t *recordingTracer) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.spans
}

// recordingCollector counts Count and Histogram calls in one shared total;
// Gauge calls are not counted.
type recordingCollector struct {
	mu     sync.Mutex
	counts int
}

func (c *recordingCollector) Count(name string, value int, tags map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts++
}

func (c *recordingCollector) Gauge(name string, value float64, tags map[string]string) {}

func (c *recordingCollector) Histogram(name string, value float64, tags map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts++
}

func TestRunWithTracerAndMetricsInstrumentsDispatch(t *testing.T) {
	codec.Register("master_test_sum_observed", sumChunkFn)

	pool := newFakePool(2)
	tracer := &recordingTracer{}
	collector := &recordingCollector{}

	master := NewMaster(pool, partition.NewEvenSplit()).
		WithTracer(tracer).
		WithMetrics(collector)

	result, err := master.Run(context.Background(), []any{1, 2, 3, 4}, "master_test_sum_observed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("len(result) = %d, expected 2", len(result))
	}

	// One "master.run" span plus at least one "pool.submit"/"pool.wait"
	// span per dispatched chunk.
	if got := tracer.count(); got < 1+len(result) {
		t.Errorf("tracer.StartSpan called %d times, expected at least %d (run span + per-dispatch spans)", got, 1+len(result))
	}
	if collector.counts == 0 {
		t.Error("expected at least one metric recorded via the collector")
	}
}
