// Package config provides configuration loading for the scheduler. It
// supports loading from YAML and JSON files with environment variable
// overrides, validation, and default values.
//
// Example usage:
//
//	cfg, err := config.LoadFromFile("scheduler.yaml")
//	if err != nil {
//	    log.Fatalf("Failed to load config: %v", err)
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variables, e.g.
// SCHEDULER_PARTITIONER_TYPE, SCHEDULER_POOL_TYPE.
const EnvPrefix = "SCHEDULER"

// PartitionerConfig selects and parameterizes a Partitioner strategy.
// Type is one of "even_split", "fixed_size", "whole_input".
type PartitionerConfig struct {
	Type   string            `yaml:"type" json:"type"`
	Params map[string]string `yaml:"params" json:"params"`
}

// PoolConfig selects and parameterizes a WorkerPool backend. Type is
// "local" or "remote".
type PoolConfig struct {
	Type   string            `yaml:"type" json:"type"`
	Params map[string]string `yaml:"params" json:"params"`
}

// SchedulerConfig is the full set of settings needed to build a
// scheduler.Master: which partitioner and pool backend to use, and the
// ambient concerns (task timeout, log level) that aren't part of the
// core algorithm.
type SchedulerConfig struct {
	Partitioner        PartitionerConfig `yaml:"partitioner" json:"partitioner"`
	Pool               PoolConfig        `yaml:"pool" json:"pool"`
	TaskTimeoutSeconds int               `yaml:"task_timeout_seconds" json:"task_timeout_seconds"`
	LogLevel           string            `yaml:"log_level" json:"log_level"`
}

// Validate checks that the configuration is internally consistent.
func (c *SchedulerConfig) Validate() error {
	switch c.Partitioner.Type {
	case "even_split", "fixed_size", "whole_input":
	default:
		return fmt.Errorf("config: unsupported partitioner type %q", c.Partitioner.Type)
	}

	switch c.Pool.Type {
	case "local", "remote":
	default:
		return fmt.Errorf("config: unsupported pool type %q", c.Pool.Type)
	}

	if c.Partitioner.Type == "fixed_size" {
		if _, ok := c.Partitioner.Params["items_per_chunk"]; !ok {
			return fmt.Errorf("config: fixed_size partitioner requires params.items_per_chunk")
		}
	}

	if c.Pool.Type == "local" {
		if _, ok := c.Pool.Params["worker_count"]; !ok {
			return fmt.Errorf("config: local pool requires params.worker_count")
		}
	}
	if c.Pool.Type == "remote" {
		if _, ok := c.Pool.Params["endpoints_file"]; !ok {
			return fmt.Errorf("config: remote pool requires params.endpoints_file")
		}
	}

	if c.TaskTimeoutSeconds < 0 {
		return fmt.Errorf("config: task_timeout_seconds must be >= 0, got %d", c.TaskTimeoutSeconds)
	}

	return nil
}

// Loader handles configuration loading from various sources.
type Loader struct {
	applyEnvOverrides bool
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{applyEnvOverrides: false}
}

// WithEnvOverrides enables environment variable overrides. When enabled,
// variables prefixed with SCHEDULER_ override values from the file.
func (l *Loader) WithEnvOverrides() *Loader {
	l.applyEnvOverrides = true
	return l
}

// LoadFromFile loads a SchedulerConfig from a file. The format is
// determined by the file extension (.yaml, .yml, or .json).
func (l *Loader) LoadFromFile(path string) (*SchedulerConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	return l.parse(data, ext)
}

// LoadFromBytes loads a SchedulerConfig from raw bytes; format is "yaml"
// or "json".
func (l *Loader) LoadFromBytes(data []byte, format string) (*SchedulerConfig, error) {
	return l.parse(data, "."+strings.ToLower(format))
}

func (l *Loader) parse(data []byte, ext string) (*SchedulerConfig, error) {
	var cfg SchedulerConfig

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s (use .yaml, .yml, or .json)", ext)
	}

	if l.applyEnvOverrides {
		applyEnvironmentOverrides(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvironmentOverrides applies SCHEDULER_-prefixed overrides.
//
// Supported:
//   - SCHEDULER_PARTITIONER_TYPE
//   - SCHEDULER_POOL_TYPE
//   - SCHEDULER_PARTITIONER_PARAM_<KEY>
//   - SCHEDULER_POOL_PARAM_<KEY>
func applyEnvironmentOverrides(cfg *SchedulerConfig) {
	if val := os.Getenv(EnvPrefix + "_PARTITIONER_TYPE"); val != "" {
		cfg.Partitioner.Type = val
	}
	if val := os.Getenv(EnvPrefix + "_POOL_TYPE"); val != "" {
		cfg.Pool.Type = val
	}

	applyParamOverrides(&cfg.Partitioner.Params, EnvPrefix+"_PARTITIONER_PARAM_")
	applyParamOverrides(&cfg.Pool.Params, EnvPrefix+"_POOL_PARAM_")
}

// applyParamOverrides scans the environment for prefix-matching variables
// and merges them into params, lower-casing the trailing key.
func applyParamOverrides(params *map[string]string, prefix string) {
	if *params == nil {
		*params = make(map[string]string)
	}

	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]
		if strings.HasPrefix(key, prefix) {
			paramKey := strings.ToLower(strings.TrimPrefix(key, prefix))
			(*params)[paramKey] = value
		}
	}
}

// LoadFromFile is a convenience function for NewLoader().LoadFromFile.
func LoadFromFile(path string) (*SchedulerConfig, error) {
	return NewLoader().LoadFromFile(path)
}

// LoadFromFileWithEnv is a convenience function for
// NewLoader().WithEnvOverrides().LoadFromFile.
func LoadFromFileWithEnv(path string) (*SchedulerConfig, error) {
	return NewLoader().WithEnvOverrides().LoadFromFile(path)
}

// LoadFromBytes is a convenience function for NewLoader().LoadFromBytes.
func LoadFromBytes(data []byte, format string) (*SchedulerConfig, error) {
	return NewLoader().LoadFromBytes(data, format)
}
