// Package errors provides comprehensive error handling for the scheduler.
// It defines custom error types for each component with context information
// and error classification into the kinds spec.md §7 enumerates.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorType categorizes errors for appropriate handling strategies.
// These are the eight kinds spec.md §7 names, not a generic taxonomy.
type ErrorType int

const (
	// ErrorTypeUnknown represents an unclassified error.
	ErrorTypeUnknown ErrorType = iota

	// ErrorTypeInvalidArgument: Partitioner arguments violate
	// preconditions, or a constructor received a nil dependency.
	// Surfaced immediately from the faulting call.
	ErrorTypeInvalidArgument

	// ErrorTypeSerialization: FunctionCodec cannot encode the user
	// function. Fatal to run.
	ErrorTypeSerialization

	// ErrorTypeNoWorkersAvailable: ActiveWorkerIDs() is empty at run
	// start. Fatal to run.
	ErrorTypeNoWorkersAvailable

	// ErrorTypeSubmission: WorkerPool refuses a Submit. Recorded in the
	// affected slot; run continues.
	ErrorTypeSubmission

	// ErrorTypeWorkerExecution: the user function raised inside a
	// worker. Recorded in the affected slot; run continues.
	ErrorTypeWorkerExecution

	// ErrorTypeUserContractViolation: the user function was called with
	// a chunk and raised what looks like a type/arity error — the
	// classic "expected a single item" misuse. Recorded with an
	// explanatory message; run continues.
	ErrorTypeUserContractViolation

	// ErrorTypeTimeout: a per-task wait exceeded its deadline. Recorded
	// in the affected slot; run continues. Retryable by a caller outside
	// the scheduler — the scheduler itself never retries a chunk.
	ErrorTypeTimeout

	// ErrorTypeInternal: an invariant violation, e.g. a populated-slot
	// check failed. Recorded in the affected slot.
	ErrorTypeInternal
)

// String returns a human-readable representation of the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeInvalidArgument:
		return "invalid_argument"
	case ErrorTypeSerialization:
		return "serialization_error"
	case ErrorTypeNoWorkersAvailable:
		return "no_workers_available"
	case ErrorTypeSubmission:
		return "submission_error"
	case ErrorTypeWorkerExecution:
		return "worker_execution"
	case ErrorTypeUserContractViolation:
		return "user_contract_violation"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypeInternal:
		return "internal_error"
	default:
		return "unknown"
	}
}

// ParseErrorType reverses ErrorType.String. It exists for boundaries that
// cross a serialization format that can't carry ErrorType directly — a
// LocalPool or RemoteFaasPool response reports its origin error's kind as
// this string so the scheduler side can reclassify it instead of
// flattening every boundary failure to ErrorTypeWorkerExecution. Unknown
// or empty input returns ErrorTypeWorkerExecution, the common case for a
// failure reported from across a worker boundary.
func ParseErrorType(s string) ErrorType {
	switch s {
	case "invalid_argument":
		return ErrorTypeInvalidArgument
	case "serialization_error":
		return ErrorTypeSerialization
	case "no_workers_available":
		return ErrorTypeNoWorkersAvailable
	case "submission_error":
		return ErrorTypeSubmission
	case "user_contract_violation":
		return ErrorTypeUserContractViolation
	case "timeout":
		return ErrorTypeTimeout
	case "internal_error":
		return ErrorTypeInternal
	default:
		return ErrorTypeWorkerExecution
	}
}

// Component represents which part of the pipeline failed.
type Component string

const (
	ComponentCodec      Component = "codec"
	ComponentPartition  Component = "partition"
	ComponentPool       Component = "pool"
	ComponentScheduler  Component = "scheduler"
	ComponentRegistry   Component = "registry"
	ComponentFactory    Component = "factory"
)

// SchedulerError is the base error type for all scheduler errors. It
// provides structured context information and error classification.
type SchedulerError struct {
	// Component identifies which part of the pipeline failed
	Component Component

	// Operation describes what operation was being performed
	Operation string

	// Type categorizes the error for handling
	Type ErrorType

	// Err is the underlying error
	Err error

	// Context provides additional information about the failure
	Context map[string]interface{}

	// Timestamp records when the error occurred
	Timestamp time.Time

	// Retryable indicates if the operation can be retried. Only
	// ErrorTypeTimeout is retryable, and only by a caller outside the
	// scheduler — the dispatch loop itself never retries a chunk.
	Retryable bool
}

// Error implements the error interface.
func (e *SchedulerError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s:%s] ", e.Component, e.Operation))

	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	}

	if len(e.Context) > 0 {
		sb.WriteString(" | context: {")
		first := true
		for k, v := range e.Context {
			if !first {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%s: %v", k, v))
			first = false
		}
		sb.WriteString("}")
	}

	if e.Type != ErrorTypeUnknown {
		sb.WriteString(fmt.Sprintf(" [type: %s]", e.Type))
	}

	return sb.String()
}

// Unwrap returns the underlying error for error chain traversal.
func (e *SchedulerError) Unwrap() error {
	return e.Err
}

// asSchedulerError lets helpers like GetErrorType recover the embedded
// *SchedulerError from a per-component wrapper (CodecError, PoolError,
// PartitionError, SchedulerRunError) without a type switch over every
// wrapper type: Go promotes this method from the embedded field, so any
// wrapper satisfies schedulerErrorCarrier automatically.
func (e *SchedulerError) asSchedulerError() *SchedulerError {
	return e
}

// schedulerErrorCarrier is satisfied by *SchedulerError itself and by
// every struct that embeds it anonymously.
type schedulerErrorCarrier interface {
	asSchedulerError() *SchedulerError
}

// IsTimeout returns true if this error represents a per-task timeout.
func (e *SchedulerError) IsTimeout() bool {
	return e.Type == ErrorTypeTimeout
}

// IsInvalidArgument returns true for a precondition violation.
func (e *SchedulerError) IsInvalidArgument() bool {
	return e.Type == ErrorTypeInvalidArgument
}

// NewSchedulerError creates a new SchedulerError with the given parameters.
func NewSchedulerError(component Component, operation string, errorType ErrorType, err error) *SchedulerError {
	return &SchedulerError{
		Component: component,
		Operation: operation,
		Type:      errorType,
		Err:       err,
		Context:   make(map[string]interface{}),
		Timestamp: time.Now(),
		Retryable: errorType == ErrorTypeTimeout,
	}
}

// WithContext adds context information to the error.
func (e *SchedulerError) WithContext(key string, value interface{}) *SchedulerError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithContextMap adds multiple context entries to the error.
func (e *SchedulerError) WithContextMap(ctx map[string]interface{}) *SchedulerError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	for k, v := range ctx {
		e.Context[k] = v
	}
	return e
}

// Wrap wraps an error with component and operation context. If err is
// already a SchedulerError or a wrapper that embeds one, its
// classification is preserved.
func Wrap(component Component, operation string, err error) error {
	if err == nil {
		return nil
	}

	if carrier, ok := err.(schedulerErrorCarrier); ok {
		schedErr := carrier.asSchedulerError()
		return &SchedulerError{
			Component: component,
			Operation: operation,
			Type:      schedErr.Type,
			Err:       err,
			Context:   make(map[string]interface{}),
			Timestamp: time.Now(),
			Retryable: schedErr.Retryable,
		}
	}

	return NewSchedulerError(component, operation, ErrorTypeUnknown, err)
}

// WrapWithType wraps an error with component, operation, and type classification.
func WrapWithType(component Component, operation string, errorType ErrorType, err error) error {
	if err == nil {
		return nil
	}

	return NewSchedulerError(component, operation, errorType, err)
}

// IsSchedulerError checks if an error is a SchedulerError or a wrapper
// that embeds one (CodecError, PoolError, PartitionError, SchedulerRunError).
func IsSchedulerError(err error) bool {
	_, ok := err.(schedulerErrorCarrier)
	return ok
}

// GetErrorType returns the ErrorType of an error if it's a SchedulerError
// or a wrapper that embeds one. Returns ErrorTypeUnknown otherwise.
func GetErrorType(err error) ErrorType {
	if carrier, ok := err.(schedulerErrorCarrier); ok {
		return carrier.asSchedulerError().Type
	}
	return ErrorTypeUnknown
}

// IsRetryable returns true if the error indicates a retryable operation.
func IsRetryable(err error) bool {
	if carrier, ok := err.(schedulerErrorCarrier); ok {
		return carrier.asSchedulerError().Retryable
	}
	return false
}

// GetRootCause returns the root cause of an error by traversing the chain.
func GetRootCause(err error) error {
	for {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			underlying := unwrapper.Unwrap()
			if underlying == nil {
				return err
			}
			err = underlying
		} else {
			return err
		}
	}
}
