// Package codec implements the FunctionCodec: registration, serialization,
// and safe invocation of user functions. Go has no general mechanism to
// serialize a closure's captured environment, so a UserFunction travels as
// a registered symbol name rather than as encoded bytecode — the same
// approach pkg/api.UserFunction implies by its doc comment.
package codec

import (
	"sync"

	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

// symbolRegistry holds the global table of registered user functions,
// keyed by the symbol name used to refer to them across a run.
var (
	symbolRegistry   = make(map[string]api.UserFunction)
	symbolRegistryMu sync.RWMutex
)

// Register binds a symbol name to a UserFunction. Call this in an init()
// or at program startup, before any run references the symbol. Registering
// the same name twice overwrites the previous binding.
//
// Panics if symbol is empty or fn is nil — both are programmer errors.
func Register(symbol string, fn api.UserFunction) {
	if symbol == "" {
		panic("codec: symbol cannot be empty")
	}
	if fn == nil {
		panic("codec: function cannot be nil")
	}

	symbolRegistryMu.Lock()
	defer symbolRegistryMu.Unlock()

	symbolRegistry[symbol] = fn
}

// Lookup retrieves the UserFunction bound to symbol.
func Lookup(symbol string) (api.UserFunction, error) {
	symbolRegistryMu.RLock()
	defer symbolRegistryMu.RUnlock()

	fn, ok := symbolRegistry[symbol]
	if !ok {
		return nil, errors.ErrSymbolNotRegistered(symbol)
	}
	return fn, nil
}

// IsRegistered reports whether symbol currently has a bound function.
func IsRegistered(symbol string) bool {
	symbolRegistryMu.RLock()
	defer symbolRegistryMu.RUnlock()

	_, ok := symbolRegistry[symbol]
	return ok
}

// unregisterAll clears the registry. Exported only within the package for
// test isolation between cases that register conflicting symbols.
func unregisterAll() {
	symbolRegistryMu.Lock()
	defer symbolRegistryMu.Unlock()

	symbolRegistry = make(map[string]api.UserFunction)
}
