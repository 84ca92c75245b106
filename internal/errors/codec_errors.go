package errors

import "fmt"

// CodecError represents errors that occur while serializing or invoking
// a user function.
type CodecError struct {
	*SchedulerError
	Symbol string
}

// NewCodecError creates a new codec error.
func NewCodecError(operation string, errorType ErrorType, err error) *CodecError {
	return &CodecError{
		SchedulerError: NewSchedulerError(ComponentCodec, operation, errorType, err),
	}
}

// WithSymbol sets the registered function symbol involved in the failure.
func (e *CodecError) WithSymbol(symbol string) *CodecError {
	e.Symbol = symbol
	_ = e.SchedulerError.WithContext("symbol", symbol)
	return e
}

// ErrSerialization creates a SerializationError: the user function could
// not be encoded into a SerializedFunction. Fatal to run.
func ErrSerialization(symbol string, err error) *CodecError {
	return NewCodecError("encode", ErrorTypeSerialization, err).WithSymbol(symbol)
}

// ErrUserContractViolation creates a UserContractViolation: the user
// function appears to expect a single item rather than a chunk.
func ErrUserContractViolation(symbol string, cause error) *CodecError {
	return NewCodecError("invoke", ErrorTypeUserContractViolation,
		fmt.Errorf("user function must accept a chunk (a collection of items) and iterate internally: %w", cause)).
		WithSymbol(symbol)
}

// ErrSymbolNotRegistered creates an InvalidArgument for an unregistered
// function symbol.
func ErrSymbolNotRegistered(symbol string) *CodecError {
	return NewCodecError("lookup", ErrorTypeInvalidArgument,
		fmt.Errorf("function symbol %q is not registered", symbol)).
		WithSymbol(symbol)
}
