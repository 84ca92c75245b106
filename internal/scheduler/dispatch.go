package scheduler

import (
	"context"

	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/internal/logging"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

// dispatch holds the per-Run mutable state: which chunks are still
// pending, which tasks are live, and where finished outcomes land. It
// exists to keep Run's signature free of the bookkeeping it needs only
// internally.
type dispatch struct {
	master     *Master
	ctx        context.Context
	logger     *logging.Logger
	serialized []byte
	chunks     [][]any

	result   RunResult
	filled   []bool
	metadata []TaskRecord

	nextIndex   int
	live        map[int]struct{}
	completions chan completion
}

// trySubmit assigns workerID the next pending chunk. If submission fails,
// the chunk is marked failed and the worker — now considered idle per
// spec — is immediately offered the following chunk, repeating until a
// submission succeeds or no chunks remain.
func (d *dispatch) trySubmit(workerID api.WorkerId) {
	for d.nextIndex < len(d.chunks) {
		chunkIndex := d.nextIndex
		d.nextIndex++

		deferred, err := d.master.pool.Submit(workerID, d.serialized, d.chunks[chunkIndex])
		if err != nil {
			submissionErr := errors.ErrSubmission(string(workerID), err)
			d.logger.WarnContext(d.ctx, "submission failed, worker remains idle for next chunk",
				"chunk_index", chunkIndex,
				"worker_id", workerID,
				"error", submissionErr,
			)
			d.setOutcome(chunkIndex, api.Outcome{Err: submissionErr})
			d.metadata[chunkIndex] = TaskRecord{
				ChunkIndex: chunkIndex,
				WorkerID:   workerID,
				Status:     TaskFailed,
				Error:      submissionErr,
			}
			continue
		}

		d.metadata[chunkIndex] = TaskRecord{
			ChunkIndex: chunkIndex,
			WorkerID:   workerID,
			Status:     TaskSubmitted,
		}
		d.live[chunkIndex] = struct{}{}
		go d.awaitCompletion(chunkIndex, workerID, deferred)
		return
	}
}

// awaitCompletion blocks on one DeferredResult and reports its outcome
// back to the dispatch loop. Run this in its own goroutine per live task
// so the loop can wait for the first of many to resolve.
func (d *dispatch) awaitCompletion(chunkIndex int, workerID api.WorkerId, deferred api.DeferredResult) {
	outcome, err := deferred.Wait(d.ctx, d.master.taskTimeout)
	if err != nil {
		if errors.GetErrorType(err) == errors.ErrorTypeTimeout {
			outcome = api.Outcome{Err: errors.ErrWaitTimeout(string(workerID), chunkIndex)}
		} else {
			// The caller's context was canceled or deadlined rather than
			// this task's own wait timing out.
			outcome = api.Outcome{Err: errors.WrapWithType(errors.ComponentScheduler, "wait", errors.ErrorTypeInternal, err)}
		}
	}
	d.completions <- completion{chunkIndex: chunkIndex, workerID: workerID, outcome: outcome}
}

// drain runs the dispatch loop until every live task has resolved: block
// for the first completion, absorb any already-queued alongside it, file
// their outcomes, then refill the workers they freed — in that order, per
// run.
func (d *dispatch) drain() {
	for len(d.live) > 0 {
		batch := []completion{<-d.completions}
		draining := true
		for draining {
			select {
			case c := <-d.completions:
				batch = append(batch, c)
			default:
				draining = false
			}
		}

		for _, c := range batch {
			delete(d.live, c.chunkIndex)
			d.setOutcome(c.chunkIndex, c.outcome)
			if c.outcome.Ok() {
				d.metadata[c.chunkIndex] = TaskRecord{
					ChunkIndex: c.chunkIndex,
					WorkerID:   c.workerID,
					Status:     TaskCompleted,
				}
			} else {
				d.metadata[c.chunkIndex] = TaskRecord{
					ChunkIndex: c.chunkIndex,
					WorkerID:   c.workerID,
					Status:     TaskFailed,
					Error:      c.outcome.Err,
				}
				d.logger.WarnContext(d.ctx, "task failed",
					"chunk_index", c.chunkIndex,
					"worker_id", c.workerID,
					"error", c.outcome.Err,
				)
			}
		}

		for _, c := range batch {
			d.trySubmit(c.workerID)
		}
	}
}

func (d *dispatch) setOutcome(chunkIndex int, outcome api.Outcome) {
	d.result[chunkIndex] = outcome
	d.filled[chunkIndex] = true
}

// finalize fills any slot the dispatch loop never reached. This should
// never happen if trySubmit and drain are correct; it exists so a bug
// surfaces as a recorded InternalError instead of a silently wrong
// result.
func (d *dispatch) finalize() {
	for i, filled := range d.filled {
		if filled {
			continue
		}
		err := errors.ErrInternal("finalize", "run result slot was never populated")
		d.result[i] = api.Outcome{Err: err}
		d.metadata[i] = TaskRecord{ChunkIndex: i, Status: TaskFailed, Error: err}
	}
}
