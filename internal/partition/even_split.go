package partition

import "github.com/AshishBagdane/go-faas-scheduler/internal/errors"

// EvenSplit divides input into exactly targetSplits contiguous chunks as
// evenly as possible. It is the default strategy for ordered sequences.
//
// Grounded on the original DefaultDistributionStrategy.split_data: the
// first (n mod K) chunks get (n div K)+1 items, the rest get n div K.
type EvenSplit struct{}

// NewEvenSplit creates an EvenSplit partitioner.
func NewEvenSplit() *EvenSplit {
	return &EvenSplit{}
}

// Split implements api.Partitioner.
func (s *EvenSplit) Split(input []any, targetSplits int) ([][]any, error) {
	if targetSplits <= 0 {
		return nil, errors.ErrInvalidSplitCount(StrategyEvenSplit, targetSplits)
	}

	n := len(input)
	if n == 0 {
		return [][]any{}, nil
	}

	base := n / targetSplits
	rem := n % targetSplits

	chunks := make([][]any, 0, targetSplits)
	pos := 0
	for i := 0; i < targetSplits; i++ {
		size := base
		if i < rem {
			size++
		}
		chunks = append(chunks, input[pos:pos+size])
		pos += size
	}

	return chunks, nil
}
