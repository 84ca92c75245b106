package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

// PoolWithMetrics wraps a WorkerPool, recording submission and per-task
// completion metrics without the pool implementation itself depending on
// a metrics backend.
type PoolWithMetrics struct {
	delegate  api.WorkerPool
	collector MetricsCollector
}

// NewPoolWithMetrics creates a new PoolWithMetrics decorator.
func NewPoolWithMetrics(delegate api.WorkerPool, collector MetricsCollector) *PoolWithMetrics {
	return &PoolWithMetrics{delegate: delegate, collector: collector}
}

func (p *PoolWithMetrics) ActiveWorkerIDs() []api.WorkerId { return p.delegate.ActiveWorkerIDs() }
func (p *PoolWithMetrics) WorkerCount() int                { return p.delegate.WorkerCount() }

func (p *PoolWithMetrics) Submit(workerID api.WorkerId, serializedFn []byte, chunk []any) (api.DeferredResult, error) {
	tags := map[string]string{"component": "pool", "worker_id": string(workerID)}

	p.collector.Count("scheduler_pool_submit_total", 1, tags)
	p.collector.Gauge("scheduler_pool_submit_chunk_size", float64(len(chunk)), tags)

	deferred, err := p.delegate.Submit(workerID, serializedFn, chunk)
	if err != nil {
		p.collector.Count("scheduler_pool_submit_errors_total", 1, tags)
		return nil, err
	}

	return &deferredWithMetrics{delegate: deferred, collector: p.collector, workerID: workerID}, nil
}

func (p *PoolWithMetrics) Shutdown() error { return p.delegate.Shutdown() }

type deferredWithMetrics struct {
	delegate  api.DeferredResult
	collector MetricsCollector
	workerID  api.WorkerId
}

func (d *deferredWithMetrics) Wait(ctx context.Context, timeout time.Duration) (api.Outcome, error) {
	start := time.Now()
	outcome, err := d.delegate.Wait(ctx, timeout)
	tags := map[string]string{"component": "pool", "worker_id": string(d.workerID)}

	d.collector.Histogram("scheduler_task_duration_seconds", time.Since(start).Seconds(), tags)
	if err != nil || !outcome.Ok() {
		d.collector.Count("scheduler_task_errors_total", 1, tags)
	} else {
		d.collector.Count("scheduler_task_completed_total", 1, tags)
	}
	return outcome, err
}

// PoolWithTracing wraps a WorkerPool, tracing the Submit call and the
// subsequent Wait that resolves it as two linked spans — Submit's span
// covers only the (non-blocking) dispatch call, while the returned
// DeferredResult's Wait span covers the time a caller actually spent
// waiting on the task.
type PoolWithTracing struct {
	delegate api.WorkerPool
	tracer   Tracer
}

// NewPoolWithTracing creates a new PoolWithTracing decorator.
func NewPoolWithTracing(delegate api.WorkerPool, tracer Tracer) *PoolWithTracing {
	return &PoolWithTracing{delegate: delegate, tracer: tracer}
}

func (p *PoolWithTracing) ActiveWorkerIDs() []api.WorkerId { return p.delegate.ActiveWorkerIDs() }
func (p *PoolWithTracing) WorkerCount() int                { return p.delegate.WorkerCount() }

func (p *PoolWithTracing) Submit(workerID api.WorkerId, serializedFn []byte, chunk []any) (api.DeferredResult, error) {
	_, span := p.tracer.StartSpan(context.Background(), "pool.submit")
	span.SetTag("worker_id", string(workerID))
	span.SetTag("chunk_size", fmt.Sprintf("%d", len(chunk)))
	defer span.End()

	deferred, err := p.delegate.Submit(workerID, serializedFn, chunk)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &deferredWithTracing{delegate: deferred, tracer: p.tracer, workerID: workerID}, nil
}

func (p *PoolWithTracing) Shutdown() error { return p.delegate.Shutdown() }

type deferredWithTracing struct {
	delegate api.DeferredResult
	tracer   Tracer
	workerID api.WorkerId
}

func (d *deferredWithTracing) Wait(ctx context.Context, timeout time.Duration) (api.Outcome, error) {
	ctx, span := d.tracer.StartSpan(ctx, "pool.wait")
	span.SetTag("worker_id", string(d.workerID))
	defer span.End()

	outcome, err := d.delegate.Wait(ctx, timeout)
	if err != nil {
		span.RecordError(err)
	} else if !outcome.Ok() {
		span.RecordError(outcome.Err)
	}
	return outcome, err
}
