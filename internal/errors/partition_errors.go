package errors

import "fmt"

// PartitionError represents errors raised while splitting an input into
// chunks.
type PartitionError struct {
	*SchedulerError
	Strategy string
}

// NewPartitionError creates a new partition error.
func NewPartitionError(operation string, err error) *PartitionError {
	return &PartitionError{
		SchedulerError: NewSchedulerError(ComponentPartition, operation, ErrorTypeInvalidArgument, err),
	}
}

// WithStrategy sets the partitioner strategy name (e.g. "even_split").
func (e *PartitionError) WithStrategy(strategy string) *PartitionError {
	e.Strategy = strategy
	_ = e.SchedulerError.WithContext("strategy", strategy)
	return e
}

// ErrInvalidSplitCount creates an InvalidArgument for a non-positive
// target split count.
func ErrInvalidSplitCount(strategy string, targetSplits int) *PartitionError {
	return NewPartitionError("split", fmt.Errorf("target_splits must be > 0, got %d", targetSplits)).
		WithStrategy(strategy)
}

// ErrInvalidChunkSize creates an InvalidArgument for a non-positive
// fixed chunk size.
func ErrInvalidChunkSize(itemsPerChunk int) *PartitionError {
	return NewPartitionError("split", fmt.Errorf("items_per_chunk must be >= 1, got %d", itemsPerChunk)).
		WithStrategy("fixed_size")
}
