// Package pool implements the WorkerPool reference backends: LocalPool,
// which isolates each worker in its own OS process, and RemoteFaasPool,
// which dispatches to long-lived HTTP executors. Both share the future
// type below for their DeferredResult handles.
//
// Grounded on internal/processor/worker-pool.go's channel/goroutine shape,
// generalized from "process WorkChunks with bounded goroutines" to "submit
// one task per named worker, return a handle the caller waits on".
package pool

import (
	"context"
	"time"

	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

// future is the common DeferredResult implementation. A task execution,
// whatever backend runs it, resolves exactly once by calling resolve.
type future struct {
	workerID api.WorkerId
	done     chan struct{}
	outcome  api.Outcome
}

func newFuture(workerID api.WorkerId) *future {
	return &future{
		workerID: workerID,
		done:     make(chan struct{}),
	}
}

// resolve stores the outcome and unblocks any Wait call. Safe to call
// exactly once; a second call panics, since it indicates a backend bug.
func (f *future) resolve(outcome api.Outcome) {
	f.outcome = outcome
	close(f.done)
}

// Wait implements api.DeferredResult. It may be called more than once:
// once the task resolves, every Wait call observes the same outcome
// immediately.
func (f *future) Wait(ctx context.Context, timeout time.Duration) (api.Outcome, error) {
	var timer *time.Timer
	var timerCh <-chan time.Time
	if timeout > 0 {
		timer = time.NewTimer(timeout)
		defer timer.Stop()
		timerCh = timer.C
	}

	select {
	case <-f.done:
		return f.outcome, nil
	case <-timerCh:
		return api.Outcome{}, errors.ErrWaitTimeout(string(f.workerID), -1)
	case <-ctx.Done():
		// Distinct from a per-task Timeout: the caller's context was
		// canceled or deadlined, not the wait on this particular task.
		return api.Outcome{}, ctx.Err()
	}
}

var (
	_ api.DeferredResult = (*future)(nil)
)
