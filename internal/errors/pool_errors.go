package errors

import "fmt"

// PoolError represents errors raised by a WorkerPool implementation.
type PoolError struct {
	*SchedulerError
	WorkerID string
}

// NewPoolError creates a new pool error.
func NewPoolError(operation string, errorType ErrorType, err error) *PoolError {
	return &PoolError{
		SchedulerError: NewSchedulerError(ComponentPool, operation, errorType, err),
	}
}

// WithWorkerID sets the worker that was the target of the failing
// operation.
func (e *PoolError) WithWorkerID(workerID string) *PoolError {
	e.WorkerID = workerID
	_ = e.SchedulerError.WithContext("worker_id", workerID)
	return e
}

// ErrSubmission creates a SubmissionError: the pool refused a Submit
// call. Recorded in the affected slot; run continues.
func ErrSubmission(workerID string, err error) *PoolError {
	return NewPoolError("submit", ErrorTypeSubmission, err).WithWorkerID(workerID)
}

// ErrWorkerExecution creates a WorkerExecution error: the user function
// raised inside a worker.
func ErrWorkerExecution(workerID string, err error) *PoolError {
	return NewPoolError("execute", ErrorTypeWorkerExecution, err).WithWorkerID(workerID)
}

// ErrWorkerExecutionKind creates a WorkerExecution-family error whose Type
// is reported by the worker side rather than assumed, for boundaries
// (LocalPool, RemoteFaasPool) that carry the origin error's kind across
// the wire. kind is typically ErrorTypeWorkerExecution or
// ErrorTypeUserContractViolation.
func ErrWorkerExecutionKind(workerID string, kind ErrorType, err error) *PoolError {
	return NewPoolError("execute", kind, err).WithWorkerID(workerID)
}

// ErrWaitTimeout creates a Timeout error for a DeferredResult.Wait call
// that exceeded its deadline.
func ErrWaitTimeout(workerID string, chunkIndex int) *PoolError {
	err := NewPoolError("wait", ErrorTypeTimeout,
		fmt.Errorf("task for chunk %d on worker %s did not resolve within the deadline", chunkIndex, workerID)).
		WithWorkerID(workerID)
	_ = err.SchedulerError.WithContext("chunk_index", chunkIndex)
	return err
}

// ErrPoolClosed creates a SubmissionError for a Submit call made after
// Shutdown.
func ErrPoolClosed(workerID string) *PoolError {
	return NewPoolError("submit", ErrorTypeSubmission, fmt.Errorf("worker pool is shut down")).
		WithWorkerID(workerID)
}
