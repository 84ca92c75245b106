package partition

import "github.com/AshishBagdane/go-faas-scheduler/internal/errors"

// WholeInput returns the input as a single chunk, the identity strategy.
// Useful when the user function already handles its own internal
// partitioning or must see the entire dataset at once.
type WholeInput struct{}

// NewWholeInput creates a WholeInput partitioner.
func NewWholeInput() *WholeInput {
	return &WholeInput{}
}

// Split implements api.Partitioner. targetSplits must be >= 1 but
// otherwise has no effect on the output.
func (s *WholeInput) Split(input []any, targetSplits int) ([][]any, error) {
	if targetSplits < 1 {
		return nil, errors.ErrInvalidSplitCount(StrategyWholeInput, targetSplits)
	}

	return [][]any{input}, nil
}
