package partition

import "github.com/AshishBagdane/go-faas-scheduler/internal/errors"

// FixedSize divides input into contiguous chunks of a fixed size, except
// possibly the last, which may be shorter. The chunk count is determined
// by data size alone; targetSplits is accepted to satisfy api.Partitioner
// but ignored.
type FixedSize struct {
	ItemsPerChunk int
}

// NewFixedSize creates a FixedSize partitioner with the given chunk size.
func NewFixedSize(itemsPerChunk int) *FixedSize {
	return &FixedSize{ItemsPerChunk: itemsPerChunk}
}

// Split implements api.Partitioner. targetSplits is ignored.
func (s *FixedSize) Split(input []any, _ int) ([][]any, error) {
	if s.ItemsPerChunk < 1 {
		return nil, errors.ErrInvalidChunkSize(s.ItemsPerChunk)
	}

	n := len(input)
	if n == 0 {
		return [][]any{}, nil
	}

	chunks := make([][]any, 0, (n+s.ItemsPerChunk-1)/s.ItemsPerChunk)
	for pos := 0; pos < n; pos += s.ItemsPerChunk {
		end := pos + s.ItemsPerChunk
		if end > n {
			end = n
		}
		chunks = append(chunks, input[pos:end])
	}

	return chunks, nil
}
