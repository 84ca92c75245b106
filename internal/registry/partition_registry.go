// Package registry provides thread-safe registration and retrieval for the
// scheduler's pluggable Partitioner strategies. WorkerPool backends are not
// registered here.
package registry

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/AshishBagdane/go-faas-scheduler/internal/partition"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

// PartitionerFactory builds a Partitioner from a flat string param map, the
// same shape config.PartitionerConfig.Params carries in from YAML/JSON.
type PartitionerFactory func(params map[string]string) (api.Partitioner, error)

var (
	partitionerRegistry   = make(map[string]PartitionerFactory)
	partitionerRegistryMu sync.RWMutex
)

func init() {
	RegisterPartitioner("even_split", func(params map[string]string) (api.Partitioner, error) {
		return partition.NewEvenSplit(), nil
	})
	RegisterPartitioner("whole_input", func(params map[string]string) (api.Partitioner, error) {
		return partition.NewWholeInput(), nil
	})
	RegisterPartitioner("fixed_size", func(params map[string]string) (api.Partitioner, error) {
		raw, ok := params["items_per_chunk"]
		if !ok {
			return nil, fmt.Errorf("fixed_size partitioner requires params.items_per_chunk")
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid items_per_chunk %q: %w", raw, err)
		}
		return partition.NewFixedSize(n), nil
	})
}

// RegisterPartitioner registers a partitioner factory under name. Typically
// called from init(); registering the same name twice overwrites silently.
//
// Panics if name is empty or factory is nil.
func RegisterPartitioner(name string, factory PartitionerFactory) {
	if name == "" {
		panic("registry: partitioner name cannot be empty")
	}
	if factory == nil {
		panic("registry: partitioner factory cannot be nil")
	}

	partitionerRegistryMu.Lock()
	defer partitionerRegistryMu.Unlock()
	partitionerRegistry[name] = factory
}

// GetPartitioner builds a new Partitioner instance for name using params.
func GetPartitioner(name string, params map[string]string) (api.Partitioner, error) {
	if name == "" {
		return nil, ErrEmptyPartitionerName
	}

	partitionerRegistryMu.RLock()
	factory, ok := partitionerRegistry[name]
	partitionerRegistryMu.RUnlock()

	if !ok {
		return nil, &ErrPartitionerNotFound{Name: name}
	}

	return factory(params)
}

// ListPartitioners returns the sorted names of all registered partitioners.
func ListPartitioners() []string {
	partitionerRegistryMu.RLock()
	defer partitionerRegistryMu.RUnlock()

	names := make([]string, 0, len(partitionerRegistry))
	for name := range partitionerRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsPartitionerRegistered reports whether name has a registered factory.
func IsPartitionerRegistered(name string) bool {
	if name == "" {
		return false
	}
	partitionerRegistryMu.RLock()
	defer partitionerRegistryMu.RUnlock()
	_, ok := partitionerRegistry[name]
	return ok
}

// UnregisterPartitioner removes name from the registry. Test-only.
func UnregisterPartitioner(name string) {
	partitionerRegistryMu.Lock()
	defer partitionerRegistryMu.Unlock()
	delete(partitionerRegistry, name)
}

// ErrPartitionerNotFound is returned when name has no registered factory.
type ErrPartitionerNotFound struct {
	Name string
}

func (e *ErrPartitionerNotFound) Error() string {
	return fmt.Sprintf("partitioner not found: %s (available: %v)", e.Name, ListPartitioners())
}

// ErrEmptyPartitionerName is returned when name is the empty string.
var ErrEmptyPartitionerName = fmt.Errorf("partitioner name cannot be empty")
