package codec

import (
	"fmt"
	"strings"

	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

// Invoke calls fn with chunk, recovering from a panic and converting it
// into the appropriate scheduler error. A panic whose message looks like a
// failed type assertion or index/arity mismatch is classified as a
// UserContractViolation — the function tried to treat the chunk as a
// single item instead of iterating it. Any other panic is a
// WorkerExecution error.
func Invoke(symbol string, fn api.UserFunction, chunk []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause := toError(r)
			if looksLikeContractViolation(cause) {
				err = errors.ErrUserContractViolation(symbol, cause)
			} else {
				err = errors.ErrWorkerExecution(symbol, cause)
			}
		}
	}()

	result, callErr := fn(chunk)
	if callErr != nil {
		return nil, errors.ErrWorkerExecution(symbol, callErr)
	}
	return result, nil
}

func toError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

func looksLikeContractViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "interface conversion") ||
		strings.Contains(msg, "type assertion") ||
		strings.Contains(msg, "index out of range") ||
		strings.Contains(msg, "cannot range over")
}
