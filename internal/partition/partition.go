// Package partition implements the Partitioner strategies that split an
// input slice into chunks for dispatch to a WorkerPool.
package partition

import "github.com/AshishBagdane/go-faas-scheduler/pkg/api"

// Strategy names usable with a registry.GetPartitioner lookup.
const (
	StrategyEvenSplit  = "even_split"
	StrategyFixedSize  = "fixed_size"
	StrategyWholeInput = "whole_input"
)

var (
	_ api.Partitioner = (*EvenSplit)(nil)
	_ api.Partitioner = (*FixedSize)(nil)
	_ api.Partitioner = (*WholeInput)(nil)
)
