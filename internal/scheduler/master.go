// Package scheduler implements the master side of the master-worker FaaS
// engine: partitioning an input, dispatching chunks to a WorkerPool,
// refilling freed workers, and reducing the ordered results.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AshishBagdane/go-faas-scheduler/internal/codec"
	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/internal/logging"
	"github.com/AshishBagdane/go-faas-scheduler/internal/observability"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

// TaskStatus is the lifecycle state of one chunk's task for the most
// recent run, as reported by TaskStatuses.
type TaskStatus string

const (
	TaskSubmitted TaskStatus = "submitted"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// TaskRecord is a snapshot of bookkeeping for one chunk's task. It exists
// for observability only; the scheduler's actual coordination state lives
// in Run's local live-task map, not here.
type TaskRecord struct {
	ChunkIndex int
	WorkerID   api.WorkerId
	Status     TaskStatus
	Error      error
}

// RunResult is the ordered outcome of one Run call: RunResult[i]
// corresponds to chunk i, regardless of completion order.
type RunResult []api.Outcome

// Master orchestrates one or more runs against a fixed WorkerPool and
// Partitioner. A Master is safe for sequential reuse across runs; it is
// not safe for concurrent Run calls, since TaskStatuses reports only the
// most recent run.
type Master struct {
	pool        api.WorkerPool
	partitioner api.Partitioner
	codec       *codec.FunctionCodec
	logger      *logging.Logger
	taskTimeout time.Duration
	tracer      observability.Tracer
	metrics     observability.MetricsCollector

	mu      sync.Mutex
	lastRun []TaskRecord
}

// defaultTaskTimeout bounds how long Run waits on a single DeferredResult
// before treating it as a Timeout outcome. It is generous because the
// scheduler itself never retries a chunk — too short a timeout just
// produces spurious failures under normal backend latency.
const defaultTaskTimeout = 5 * time.Minute

// NewMaster creates a Master over pool and partitioner. Neither may be
// nil.
func NewMaster(pool api.WorkerPool, partitioner api.Partitioner) *Master {
	if pool == nil {
		panic("scheduler: pool cannot be nil")
	}
	if partitioner == nil {
		panic("scheduler: partitioner cannot be nil")
	}
	return &Master{
		pool:        pool,
		partitioner: partitioner,
		codec:       codec.NewFunctionCodec(),
		taskTimeout: defaultTaskTimeout,
		tracer:      observability.NewNoopTracer(),
		metrics:     observability.NewNoopCollector(),
	}
}

// WithLogger sets a custom logger. If not set, a default logger is
// created on first use.
func (m *Master) WithLogger(logger *logging.Logger) *Master {
	m.logger = logger
	return m
}

// WithTaskTimeout overrides the per-task Wait deadline. A non-positive
// duration is ignored.
func (m *Master) WithTaskTimeout(d time.Duration) *Master {
	if d > 0 {
		m.taskTimeout = d
	}
	return m
}

// WithTracer wraps the Master's pool in an observability.PoolWithTracing
// decorator and records tracer for use by Run's own top-level span. Call
// before the first Run; a second call wraps the already-decorated pool
// again.
func (m *Master) WithTracer(tracer observability.Tracer) *Master {
	m.tracer = tracer
	m.pool = observability.NewPoolWithTracing(m.pool, tracer)
	return m
}

// WithMetrics wraps the Master's pool in an observability.PoolWithMetrics
// decorator and records collector for use by Run's own run-level metrics.
// Call before the first Run; a second call wraps the already-decorated
// pool again.
func (m *Master) WithMetrics(collector observability.MetricsCollector) *Master {
	m.metrics = collector
	m.pool = observability.NewPoolWithMetrics(m.pool, collector)
	return m
}

func (m *Master) getLogger() *logging.Logger {
	if m.logger == nil {
		m.logger = logging.NewLogger(logging.Config{
			Level:     logging.LevelInfo,
			Format:    logging.FormatJSON,
			Component: "scheduler",
		})
	}
	return m.logger
}

// completion is one resolved task reported back to the dispatch loop.
type completion struct {
	chunkIndex int
	workerID   api.WorkerId
	outcome    api.Outcome
}

// Run partitions input across the pool's active workers and dispatches
// symbol — a UserFunction registered via codec.Register — one chunk at a
// time per worker, refilling freed workers until every chunk has been
// submitted and every submitted task has resolved.
func (m *Master) Run(ctx context.Context, input []any, symbol string) (RunResult, error) {
	logger := m.getLogger()
	runID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, runID)
	startTime := time.Now()

	ctx, span := m.tracer.StartSpan(ctx, "master.run")
	span.SetTag("run_id", runID)
	span.SetTag("symbol", symbol)
	span.SetTag("input_size", fmt.Sprintf("%d", len(input)))
	defer span.End()

	runTags := map[string]string{"component": "scheduler", "symbol": symbol}
	m.metrics.Count("scheduler_run_total", 1, runTags)
	defer func() {
		m.metrics.Histogram("scheduler_run_duration_seconds", time.Since(startTime).Seconds(), runTags)
	}()

	logger.InfoContext(ctx, "run starting",
		"run_id", runID,
		"input_size", len(input),
		"symbol", symbol,
	)

	if m.pool.WorkerCount() == 0 {
		err := errors.ErrNoWorkersAvailable()
		logger.ErrorContext(ctx, "run failed: no active workers", "error", err)
		span.RecordError(err)
		m.metrics.Count("scheduler_run_errors_total", 1, runTags)
		return nil, err
	}

	serialized, err := m.codec.Encode(symbol)
	if err != nil {
		wrapped := errors.NewSchedulerRunError("prepare", errors.ErrorTypeSerialization, err)
		logger.ErrorContext(ctx, "run failed: could not serialize function", "error", wrapped)
		span.RecordError(wrapped)
		m.metrics.Count("scheduler_run_errors_total", 1, runTags)
		return nil, wrapped
	}

	chunks, err := m.partitioner.Split(input, m.pool.WorkerCount())
	if err != nil {
		wrapped := errors.NewSchedulerRunError("partition", errors.ErrorTypeInvalidArgument, err)
		logger.ErrorContext(ctx, "run failed: partition error", "error", wrapped)
		span.RecordError(wrapped)
		m.metrics.Count("scheduler_run_errors_total", 1, runTags)
		return nil, wrapped
	}

	n := len(chunks)
	logger.InfoContext(ctx, "partition complete", "chunk_count", n)
	span.SetTag("chunk_count", fmt.Sprintf("%d", n))

	if n == 0 {
		m.recordRun(nil)
		logger.InfoContext(ctx, "run completed: empty input", "duration_ms", time.Since(startTime).Milliseconds())
		return RunResult{}, nil
	}

	d := &dispatch{
		master:     m,
		ctx:        ctx,
		logger:     logger,
		serialized: serialized,
		chunks:     chunks,
		result:     make(RunResult, n),
		filled:     make([]bool, n),
		metadata:   make([]TaskRecord, n),
		live:       make(map[int]struct{}),
		completions: make(chan completion, n),
	}

	workers := m.pool.ActiveWorkerIDs()
	bootstrapCount := min(len(workers), n)
	for i := 0; i < bootstrapCount; i++ {
		d.trySubmit(workers[i])
	}

	d.drain()
	d.finalize()

	m.recordRun(d.metadata)

	logger.InfoContext(ctx, "run completed",
		"duration_ms", time.Since(startTime).Milliseconds(),
		"chunk_count", n,
	)

	return d.result, nil
}

func (m *Master) recordRun(metadata []TaskRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastRun = metadata
}

// TaskStatuses returns a snapshot of bookkeeping for the most recent Run
// call. Empty if Run has not been called yet, or completed with an empty
// input.
func (m *Master) TaskStatuses() []TaskRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TaskRecord, len(m.lastRun))
	copy(out, m.lastRun)
	return out
}

// Reduce filters out error entries from results, and if any successful
// entries remain, invokes aggregator on them exactly once. Returns nil,
// nil if every entry was an error. Errors from aggregator itself
// propagate unchanged.
func (m *Master) Reduce(results RunResult, aggregator func([]any) (any, error)) (any, error) {
	logger := m.getLogger()

	successful := make([]any, 0, len(results))
	for _, outcome := range results {
		if outcome.Ok() {
			successful = append(successful, outcome.Value)
		}
	}

	if len(successful) == 0 {
		logger.Warn("reduce: no successful results to aggregate")
		return nil, nil
	}

	logger.Info("reduce: aggregating results", "successful_count", len(successful))
	value, err := aggregator(successful)
	if err != nil {
		logger.Error("reduce: aggregator failed", "error", err)
		return nil, err
	}
	return value, nil
}
