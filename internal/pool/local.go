package pool

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sync"

	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/internal/health"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

// stdin/stdout framing for local worker processes lives in internal/wire,
// shared with cmd/localworker so both sides decode the same shape.

// localWorker wraps one isolated worker process. Only one task may be in
// flight on a localWorker at a time — the scheduler never submits a second
// task to a worker whose previous task has not completed, and mu serializes
// dispatches so that a caller violating that invariant blocks until the
// previous exchange finishes.
type localWorker struct {
	id  api.WorkerId
	cmd *exec.Cmd

	stdin  *json.Encoder
	stdout *bufio.Scanner

	mu    sync.Mutex
	ready bool
}

// LocalPool is a WorkerPool backed by a fixed number of isolated worker
// processes (not goroutines — user code may hold process-wide state that
// demands isolation). Grounded on the plugin-binary worker pool in
// other_examples (os/exec + encoding/json, one job per external process),
// adapted from one-shot-process-per-job to long-lived worker processes
// reused across the whole run.
type LocalPool struct {
	binPath string

	mu      sync.RWMutex
	workers map[api.WorkerId]*localWorker
	closed  bool
}

// NewLocalPool spawns workerCount isolated worker processes running
// binPath. Workers are assigned synthetic ids "local-0" .. "local-(N-1)".
func NewLocalPool(binPath string, workerCount int) (*LocalPool, error) {
	if workerCount <= 0 {
		return nil, errors.NewPoolError("start", errors.ErrorTypeInvalidArgument,
			fmt.Errorf("worker_count must be > 0, got %d", workerCount))
	}

	p := &LocalPool{
		binPath: binPath,
		workers: make(map[api.WorkerId]*localWorker, workerCount),
	}

	for i := 0; i < workerCount; i++ {
		id := api.WorkerId(fmt.Sprintf("local-%d", i))
		w, err := startLocalWorker(binPath)
		if err != nil {
			_ = p.Shutdown()
			return nil, errors.NewPoolError("start", errors.ErrorTypeInternal, err).WithWorkerID(string(id))
		}
		w.id = id
		p.workers[id] = w
	}

	return p, nil
}

func startLocalWorker(binPath string) (*localWorker, error) {
	cmd := exec.Command(binPath)

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start worker process: %w", err)
	}

	return &localWorker{
		cmd:    cmd,
		stdin:  json.NewEncoder(stdinPipe),
		stdout: bufio.NewScanner(stdoutPipe),
		ready:  true,
	}, nil
}

// ActiveWorkerIDs implements api.WorkerPool.
func (p *LocalPool) ActiveWorkerIDs() []api.WorkerId {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]api.WorkerId, 0, len(p.workers))
	for id, w := range p.workers {
		if w.ready {
			ids = append(ids, id)
		}
	}
	return ids
}

// WorkerCount implements api.WorkerPool.
func (p *LocalPool) WorkerCount() int {
	return len(p.ActiveWorkerIDs())
}

// Submit implements api.WorkerPool. It hands the task to the named
// worker's stdin and resolves the returned future once the worker's
// stdout line for that task arrives, on a background goroutine.
func (p *LocalPool) Submit(workerID api.WorkerId, serializedFn []byte, chunk []any) (api.DeferredResult, error) {
	p.mu.RLock()
	closed := p.closed
	w, ok := p.workers[workerID]
	p.mu.RUnlock()

	if closed {
		return nil, errors.ErrPoolClosed(string(workerID))
	}
	if !ok {
		return nil, errors.ErrSubmission(string(workerID), fmt.Errorf("no such worker"))
	}

	f := newFuture(workerID)
	go w.dispatch(serializedFn, chunk, f)
	return f, nil
}

// Shutdown implements api.WorkerPool. Idempotent; terminates every worker
// process and closes its pipes.
func (p *LocalPool) Shutdown() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	workers := make([]*localWorker, 0, len(p.workers))
	for _, w := range p.workers {
		workers = append(workers, w)
	}
	p.mu.Unlock()

	var firstErr error
	for _, w := range workers {
		if err := w.cmd.Process.Kill(); err != nil && firstErr == nil {
			firstErr = err
		}
		_ = w.cmd.Wait()
	}
	return firstErr
}

// CheckHealth implements health.Checker, reporting DEGRADED if some but
// not all worker processes are still responsive.
func (p *LocalPool) CheckHealth(_ context.Context) (health.Result, error) {
	active := p.WorkerCount()
	total := len(p.workers)

	switch {
	case active == 0:
		return health.Result{Status: health.StatusDown}, nil
	case active < total:
		return health.Result{
			Status:  health.StatusDegraded,
			Details: map[string]interface{}{"active": active, "total": total},
		}, nil
	default:
		return health.Result{Status: health.StatusUp}, nil
	}
}

var (
	_ api.WorkerPool   = (*LocalPool)(nil)
	_ health.Checker   = (*LocalPool)(nil)
)
