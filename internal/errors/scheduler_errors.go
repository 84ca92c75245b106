package errors

import "fmt"

// SchedulerRunError represents errors raised by the Master's Run/Reduce
// entry points, as opposed to per-chunk outcomes stored in a RunResult
// slot.
type SchedulerRunError struct {
	*SchedulerError
}

// NewSchedulerRunError creates a new scheduler run error.
func NewSchedulerRunError(operation string, errorType ErrorType, err error) *SchedulerRunError {
	return &SchedulerRunError{
		SchedulerError: NewSchedulerError(ComponentScheduler, operation, errorType, err),
	}
}

// ErrNoWorkersAvailable creates a NoWorkersAvailable error: the pool
// reports zero active workers at run start. Fatal to run.
func ErrNoWorkersAvailable() *SchedulerRunError {
	return NewSchedulerRunError("run", ErrorTypeNoWorkersAvailable,
		fmt.Errorf("worker pool has no active workers"))
}

// ErrInternal creates an InternalError for an invariant violation, e.g.
// a RunResult slot left unpopulated after the dispatch loop drained.
func ErrInternal(operation string, detail string) *SchedulerRunError {
	return NewSchedulerRunError(operation, ErrorTypeInternal, fmt.Errorf("%s", detail))
}
