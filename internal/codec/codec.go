package codec

import (
	"bytes"
	"encoding/gob"

	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
)

// SerializedFunction is the wire representation of a registered user
// function: a gob-encoded envelope carrying the symbol name, not the
// function's code. A WorkerPool only ever needs the symbol back to look
// the function up in its own process's registry (LocalPool) or to forward
// it as a string to a remote endpoint that keeps its own registry
// (RemoteFaasPool).
type SerializedFunction []byte

// envelope is the gob-encoded payload. A struct rather than a bare string
// so the wire format can grow (e.g. a version field) without breaking
// existing encodings.
type envelope struct {
	Symbol string
}

// FunctionCodec encodes a registered symbol into a SerializedFunction and
// decodes it back into the symbol name; callers resolve that name to an
// invocable UserFunction with Lookup. Encode fails only if the
// symbol was never registered or gob itself errors; Decode fails the same
// way, plus on a malformed envelope.
type FunctionCodec struct {
	bufs *bufferPool
}

// NewFunctionCodec creates a FunctionCodec with its own buffer pool.
func NewFunctionCodec() *FunctionCodec {
	return &FunctionCodec{bufs: newBufferPool()}
}

// Encode serializes symbol into a SerializedFunction. The symbol must
// already be registered via Register — Encode does not accept a raw
// function value because Go cannot serialize a closure's captured
// environment.
func (c *FunctionCodec) Encode(symbol string) (SerializedFunction, error) {
	if !IsRegistered(symbol) {
		return nil, errors.ErrSymbolNotRegistered(symbol)
	}

	buf := c.bufs.Get()
	defer c.bufs.Put(buf)

	if err := gob.NewEncoder(buf).Encode(envelope{Symbol: symbol}); err != nil {
		return nil, errors.ErrSerialization(symbol, err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// Decode reconstructs the symbol name carried in a SerializedFunction,
// checks that it is registered, and returns the symbol name. It does not
// return the function itself; Lookup resolves the name to a UserFunction.
func (c *FunctionCodec) Decode(sf SerializedFunction) (string, error) {
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(sf)).Decode(&env); err != nil {
		return "", errors.ErrSerialization("<unknown>", err)
	}

	if !IsRegistered(env.Symbol) {
		return "", errors.ErrSymbolNotRegistered(env.Symbol)
	}

	return env.Symbol, nil
}
