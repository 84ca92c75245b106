package pool

import (
	"encoding/json"
	"fmt"

	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/internal/wire"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

// dispatch serializes one task across the process boundary, blocks on the
// worker's stdout for the matching response line, and resolves f. It runs
// on its own goroutine per Submit call; the worker process itself only
// processes one request at a time, so the whole request/response exchange
// is held under w.mu and concurrent dispatches to the same worker run one
// after another.
func (w *localWorker) dispatch(serializedFn []byte, chunk []any, f *future) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.stdin.Encode(wire.LocalTaskRequest{SerializedFn: serializedFn, Chunk: chunk}); err != nil {
		f.resolve(api.Outcome{Err: errors.ErrSubmission(string(w.id), err)})
		return
	}

	if !w.stdout.Scan() {
		err := w.stdout.Err()
		if err == nil {
			err = fmt.Errorf("worker process closed its output unexpectedly")
		}
		w.ready = false
		f.resolve(api.Outcome{Err: errors.ErrWorkerExecution(string(w.id), err)})
		return
	}

	var resp wire.LocalTaskResponse
	if err := json.Unmarshal(w.stdout.Bytes(), &resp); err != nil {
		f.resolve(api.Outcome{Err: errors.ErrWorkerExecution(string(w.id), fmt.Errorf("malformed worker response: %w", err))})
		return
	}

	if resp.Error != "" {
		kind := errors.ParseErrorType(resp.ErrorKind)
		f.resolve(api.Outcome{Err: errors.ErrWorkerExecutionKind(string(w.id), kind, fmt.Errorf("%s", resp.Error))})
		return
	}

	f.resolve(api.Outcome{Value: wire.Normalize(resp.Value)})
}
