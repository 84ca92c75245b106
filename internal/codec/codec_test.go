package codec

import (
	"fmt"
	"testing"

	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

func TestRegisterAndLookup(t *testing.T) {
	defer unregisterAll()

	fn := func(chunk []any) (any, error) { return len(chunk), nil }
	Register("count_chunk", fn)

	if !IsRegistered("count_chunk") {
		t.Fatal("expected count_chunk to be registered")
	}

	got, err := Lookup("count_chunk")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	result, callErr := got([]any{1, 2, 3})
	if callErr != nil {
		t.Fatalf("unexpected call error: %v", callErr)
	}
	if result != 3 {
		t.Errorf("result = %v, expected 3", result)
	}
}

func TestLookupUnregistered(t *testing.T) {
	defer unregisterAll()

	_, err := Lookup("does_not_exist")
	if err == nil {
		t.Fatal("expected error for unregistered symbol")
	}
	if errors.GetErrorType(err) != errors.ErrorTypeInvalidArgument {
		t.Errorf("error type = %v, expected InvalidArgument", errors.GetErrorType(err))
	}
}

func TestRegisterPanicsOnEmptySymbol(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for empty symbol")
		}
	}()
	Register("", func(chunk []any) (any, error) { return nil, nil })
}

func TestRegisterPanicsOnNilFunction(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil function")
		}
	}()
	Register("some_symbol", nil)
}

func TestFunctionCodecEncodeDecode(t *testing.T) {
	defer unregisterAll()

	Register("square_chunk", func(chunk []any) (any, error) {
		out := make([]any, len(chunk))
		for i, v := range chunk {
			n := v.(int)
			out[i] = n * n
		}
		return out, nil
	})

	c := NewFunctionCodec()
	sf, err := c.Encode("square_chunk")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if len(sf) == 0 {
		t.Fatal("expected non-empty serialized function")
	}

	symbol, err := c.Decode(sf)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if symbol != "square_chunk" {
		t.Errorf("symbol = %s, expected square_chunk", symbol)
	}
}

func TestFunctionCodecEncodeUnregistered(t *testing.T) {
	c := NewFunctionCodec()
	_, err := c.Encode("never_registered")
	if err == nil {
		t.Fatal("expected error encoding unregistered symbol")
	}
}

func TestFunctionCodecDecodeMalformed(t *testing.T) {
	c := NewFunctionCodec()
	_, err := c.Decode([]byte("not a gob stream"))
	if err == nil {
		t.Fatal("expected error decoding malformed bytes")
	}
}

func TestInvokeSuccess(t *testing.T) {
	var fn api.UserFunction = func(chunk []any) (any, error) {
		sum := 0
		for _, v := range chunk {
			sum += v.(int)
		}
		return sum, nil
	}

	result, err := Invoke("sum_chunk", fn, []any{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 6 {
		t.Errorf("result = %v, expected 6", result)
	}
}

func TestInvokeUserFunctionError(t *testing.T) {
	var fn api.UserFunction = func(chunk []any) (any, error) {
		return nil, fmt.Errorf("division by zero")
	}

	_, err := Invoke("bad_fn", fn, []any{1})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.GetErrorType(err) != errors.ErrorTypeWorkerExecution {
		t.Errorf("error type = %v, expected WorkerExecution", errors.GetErrorType(err))
	}
}

func TestInvokeContractViolationPanic(t *testing.T) {
	var fn api.UserFunction = func(chunk []any) (any, error) {
		n := chunk[0].(string)
		return n, nil
	}

	_, err := Invoke("contract_violator", fn, []any{1, 2})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.GetErrorType(err) != errors.ErrorTypeUserContractViolation {
		t.Errorf("error type = %v, expected UserContractViolation", errors.GetErrorType(err))
	}
}

func TestInvokeGenericPanic(t *testing.T) {
	var fn api.UserFunction = func(chunk []any) (any, error) {
		panic("boom")
	}

	_, err := Invoke("panicky_fn", fn, []any{1})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.GetErrorType(err) != errors.ErrorTypeWorkerExecution {
		t.Errorf("error type = %v, expected WorkerExecution", errors.GetErrorType(err))
	}
}
