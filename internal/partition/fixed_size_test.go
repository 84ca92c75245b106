package partition

import (
	"testing"

	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
)

func TestFixedSizeEvenDivision(t *testing.T) {
	s := NewFixedSize(2)
	input := toAnySlice(1, 2, 3, 4, 5, 6)

	chunks, err := s.Split(input, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if len(c) != 2 {
			t.Errorf("expected chunk of size 2, got %d", len(c))
		}
	}
}

func TestFixedSizeShortLastChunk(t *testing.T) {
	s := NewFixedSize(3)
	input := toAnySlice(1, 2, 3, 4, 5)

	chunks, err := s.Split(input, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 3 {
		t.Errorf("expected first chunk of size 3, got %d", len(chunks[0]))
	}
	if len(chunks[1]) != 2 {
		t.Errorf("expected last chunk of size 2, got %d", len(chunks[1]))
	}
}

func TestFixedSizeEmptyInput(t *testing.T) {
	s := NewFixedSize(4)

	chunks, err := s.Split([]any{}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected zero chunks, got %d", len(chunks))
	}
}

func TestFixedSizeInvalidSize(t *testing.T) {
	s := NewFixedSize(0)

	_, err := s.Split(toAnySlice(1, 2, 3), 1)
	if err == nil {
		t.Fatal("expected error for items_per_chunk = 0")
	}
	if errors.GetErrorType(err) != errors.ErrorTypeInvalidArgument {
		t.Errorf("error type = %v, expected InvalidArgument", errors.GetErrorType(err))
	}
}
