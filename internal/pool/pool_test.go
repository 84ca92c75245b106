package pool

import (
	"context"
	"errors"
	"testing"
	"time"

	schedulererrors "github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

func TestFutureResolveThenWait(t *testing.T) {
	f := newFuture("worker-1")
	f.resolve(api.Outcome{Value: 42})

	outcome, err := f.Wait(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Value != 42 {
		t.Errorf("Value = %v, expected 42", outcome.Value)
	}
	if !outcome.Ok() {
		t.Error("expected Ok() outcome")
	}
}

func TestFutureWaitBlocksUntilResolved(t *testing.T) {
	f := newFuture("worker-1")

	go func() {
		time.Sleep(10 * time.Millisecond)
		f.resolve(api.Outcome{Value: "done"})
	}()

	outcome, err := f.Wait(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Value != "done" {
		t.Errorf("Value = %v, expected done", outcome.Value)
	}
}

func TestFutureWaitTimeout(t *testing.T) {
	f := newFuture("worker-1")

	_, err := f.Wait(context.Background(), 5*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if schedulererrors.GetErrorType(err) != schedulererrors.ErrorTypeTimeout {
		t.Errorf("error type = %v, expected Timeout", schedulererrors.GetErrorType(err))
	}
}

func TestFutureWaitContextCanceled(t *testing.T) {
	f := newFuture("worker-1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Wait(ctx, time.Second)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, expected context.Canceled", err)
	}
	if schedulererrors.GetErrorType(err) == schedulererrors.ErrorTypeTimeout {
		t.Error("canceled context should not be classified as Timeout")
	}
}
