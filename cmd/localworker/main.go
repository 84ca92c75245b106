// Command localworker is the isolated process a LocalPool spawns for each
// worker slot. It reads one task per line from stdin, decodes the
// registered function symbol carried in the serialized function, invokes
// it against the chunk, and writes one result per line to stdout.
//
// The functions it can invoke must be registered via codec.Register in
// this binary's own init() — the registered-symbol model only works
// because the worker binary and the scheduler process link the same
// registration code.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/AshishBagdane/go-faas-scheduler/internal/codec"
	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/internal/wire"

	_ "github.com/AshishBagdane/go-faas-scheduler/examples/userfuncs"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "localworker", "pid", os.Getpid())

	fc := codec.NewFunctionCodec()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	encoder := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		var req wire.LocalTaskRequest
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			logger.Error("malformed task request", "error", err)
			_ = encoder.Encode(wire.LocalTaskResponse{Error: fmt.Sprintf("malformed request: %v", err)})
			continue
		}

		resp := handle(fc, req)
		if err := encoder.Encode(resp); err != nil {
			logger.Error("failed to write task response", "error", err)
			return
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error("stdin read error", "error", err)
		os.Exit(1)
	}
}

func handle(fc *codec.FunctionCodec, req wire.LocalTaskRequest) wire.LocalTaskResponse {
	symbol, err := fc.Decode(req.SerializedFn)
	if err != nil {
		return wire.LocalTaskResponse{Error: err.Error(), ErrorKind: errors.GetErrorType(err).String()}
	}

	fn, err := codec.Lookup(symbol)
	if err != nil {
		return wire.LocalTaskResponse{Error: err.Error(), ErrorKind: errors.GetErrorType(err).String()}
	}

	chunk := wire.NormalizeChunk(req.Chunk)
	value, err := codec.Invoke(symbol, fn, chunk)
	if err != nil {
		return wire.LocalTaskResponse{Error: err.Error(), ErrorKind: errors.GetErrorType(err).String()}
	}

	return wire.LocalTaskResponse{Value: value}
}
