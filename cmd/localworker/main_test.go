package main

import (
	"encoding/json"
	"testing"

	"github.com/AshishBagdane/go-faas-scheduler/internal/codec"
	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/internal/wire"

	_ "github.com/AshishBagdane/go-faas-scheduler/examples/userfuncs"
)

// jsonRoundTrip marshals and unmarshals req exactly as the LocalPool's
// stdin/stdout pipe does, so a test exercises the same float64-producing
// JSON boundary the real worker process reads from.
func jsonRoundTrip(t *testing.T, req wire.LocalTaskRequest) wire.LocalTaskRequest {
	t.Helper()

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	var out wire.LocalTaskRequest
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	return out
}

func TestHandleNormalizesJSONChunkToInts(t *testing.T) {
	fc := codec.NewFunctionCodec()
	serialized, err := fc.Encode("sum_chunk")
	if err != nil {
		t.Fatalf("encode symbol: %v", err)
	}

	req := jsonRoundTrip(t, wire.LocalTaskRequest{
		SerializedFn: serialized,
		Chunk:        []any{1, 2, 3},
	})

	resp := handle(fc, req)
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.Value != 6 {
		t.Errorf("Value = %v (%T), expected int 6", resp.Value, resp.Value)
	}
}

func TestHandleReportsErrorKind(t *testing.T) {
	fc := codec.NewFunctionCodec()
	serialized, err := fc.Encode("sum_chunk")
	if err != nil {
		t.Fatalf("encode symbol: %v", err)
	}

	// "not-an-int" fails sumChunk's v.(int) assertion, which codec.Invoke
	// classifies as a returned error (not a panic) — still WorkerExecution,
	// since sumChunk reports the mismatch as a normal error return rather
	// than by panicking.
	req := jsonRoundTrip(t, wire.LocalTaskRequest{
		SerializedFn: serialized,
		Chunk:        []any{"not-an-int"},
	})

	resp := handle(fc, req)
	if resp.Error == "" {
		t.Fatal("expected an error response")
	}
	if resp.ErrorKind != errors.ErrorTypeWorkerExecution.String() {
		t.Errorf("ErrorKind = %q, expected %q", resp.ErrorKind, errors.ErrorTypeWorkerExecution.String())
	}
}

func TestHandleUnregisteredSymbol(t *testing.T) {
	fc := codec.NewFunctionCodec()

	req := wire.LocalTaskRequest{SerializedFn: []byte("not a valid envelope"), Chunk: nil}
	resp := handle(fc, req)

	if resp.Error == "" {
		t.Fatal("expected an error response for a malformed serialized function")
	}
	if resp.ErrorKind == "" {
		t.Error("expected a non-empty ErrorKind")
	}
}
