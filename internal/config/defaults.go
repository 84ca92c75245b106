// Package config provides default configuration presets for common use cases.
// These defaults make it easy to get started with sensible production-ready values.
package config

// DefaultConfig returns a SchedulerConfig suitable for most local
// development: even-split partitioning across 4 local worker processes,
// a 60-second per-task timeout.
func DefaultConfig() SchedulerConfig {
	return SchedulerConfig{
		Partitioner: PartitionerConfig{Type: "even_split"},
		Pool: PoolConfig{
			Type:   "local",
			Params: map[string]string{"worker_count": "4"},
		},
		TaskTimeoutSeconds: 60,
		LogLevel:           "info",
	}
}

// ProductionConfig favors a remote FaaS pool and a longer task timeout,
// tolerant of network latency the local pool never sees.
func ProductionConfig() SchedulerConfig {
	return SchedulerConfig{
		Partitioner: PartitionerConfig{Type: "even_split"},
		Pool: PoolConfig{
			Type: "remote",
			Params: map[string]string{
				"endpoints_file":  "endpoints.json",
				"timeout_seconds": "120",
			},
		},
		TaskTimeoutSeconds: 300,
		LogLevel:           "warn",
	}
}

// DevelopmentConfig runs a small local pool with verbose logging.
func DevelopmentConfig() SchedulerConfig {
	return SchedulerConfig{
		Partitioner: PartitionerConfig{Type: "even_split"},
		Pool: PoolConfig{
			Type:   "local",
			Params: map[string]string{"worker_count": "2"},
		},
		TaskTimeoutSeconds: 30,
		LogLevel:           "debug",
	}
}

// TestingConfig runs a single local worker with a short timeout, for use
// in integration tests that exercise the whole config-to-master path.
func TestingConfig() SchedulerConfig {
	return SchedulerConfig{
		Partitioner: PartitionerConfig{Type: "whole_input"},
		Pool: PoolConfig{
			Type:   "local",
			Params: map[string]string{"worker_count": "1"},
		},
		TaskTimeoutSeconds: 5,
		LogLevel:           "debug",
	}
}

// ConfigWithPartitionerParams returns a copy of base with its partitioner
// params replaced by params.
func ConfigWithPartitionerParams(base SchedulerConfig, partitionerType string, params map[string]string) SchedulerConfig {
	base.Partitioner = PartitionerConfig{Type: partitionerType, Params: params}
	return base
}

// ConfigWithPoolParams returns a copy of base with its pool params
// replaced by params.
func ConfigWithPoolParams(base SchedulerConfig, poolType string, params map[string]string) SchedulerConfig {
	base.Pool = PoolConfig{Type: poolType, Params: params}
	return base
}
