// Package config provides integration helpers that connect configuration
// loading with the master factory for seamless scheduler.Master creation
// from config files.
package config

import (
	"context"
	"fmt"

	"github.com/AshishBagdane/go-faas-scheduler/internal/factory"
	"github.com/AshishBagdane/go-faas-scheduler/internal/scheduler"
)

// LoadAndBuild loads a configuration file and builds a Master in one step.
// Only pool.type=local configs can be built this way; remote pools need
// LoadAndBuildRemote since their endpoint URL mapping isn't expressible in
// a flat params map.
func LoadAndBuild(ctx context.Context, path string) (*scheduler.Master, error) {
	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	master, err := factory.NewMasterFromConfig(ctx, *cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build master: %w", err)
	}

	return master, nil
}

// LoadAndBuildWithEnv loads a configuration file with environment overrides
// and builds a Master in one step.
func LoadAndBuildWithEnv(ctx context.Context, path string) (*scheduler.Master, error) {
	cfg, err := LoadFromFileWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	master, err := factory.NewMasterFromConfig(ctx, *cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build master: %w", err)
	}

	return master, nil
}

// LoadAndBuildRemote loads a configuration file whose pool.type is
// "remote" and builds a Master against a RemoteFaasPool, resolving each
// endpoint id to a URL via endpointURL.
func LoadAndBuildRemote(ctx context.Context, path string, endpointURL func(id string) string) (*scheduler.Master, error) {
	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	master, err := factory.NewMasterFromRemoteConfig(ctx, *cfg, endpointURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build master: %w", err)
	}

	return master, nil
}

// BuildFromBytes loads configuration from raw bytes and builds a Master.
// Useful when configuration is embedded or retrieved from an external
// source rather than a local file.
func BuildFromBytes(ctx context.Context, data []byte, format string) (*scheduler.Master, error) {
	cfg, err := LoadFromBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	master, err := factory.NewMasterFromConfig(ctx, *cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build master: %w", err)
	}

	return master, nil
}

// BuildFromDefault builds a Master from DefaultConfig. The quickest way to
// get a working local Master for experimentation or simple use cases.
func BuildFromDefault(ctx context.Context) (*scheduler.Master, error) {
	return factory.NewMasterFromConfig(ctx, DefaultConfig())
}

// BuildFromDevelopment builds a Master from DevelopmentConfig.
func BuildFromDevelopment(ctx context.Context) (*scheduler.Master, error) {
	return factory.NewMasterFromConfig(ctx, DevelopmentConfig())
}

// BuildFromTesting builds a Master from TestingConfig.
func BuildFromTesting(ctx context.Context) (*scheduler.Master, error) {
	return factory.NewMasterFromConfig(ctx, TestingConfig())
}

// MustLoadAndBuild is like LoadAndBuild but panics on error. Useful for
// initialization code where failure should stop the program.
func MustLoadAndBuild(ctx context.Context, path string) *scheduler.Master {
	master, err := LoadAndBuild(ctx, path)
	if err != nil {
		panic(fmt.Sprintf("MustLoadAndBuild failed: %v", err))
	}
	return master
}

// MustBuildFromDefault is like BuildFromDefault but panics on error.
func MustBuildFromDefault(ctx context.Context) *scheduler.Master {
	master, err := BuildFromDefault(ctx)
	if err != nil {
		panic(fmt.Sprintf("MustBuildFromDefault failed: %v", err))
	}
	return master
}

// ValidateAndBuild validates cfg and builds a Master if it's valid. Gives
// callers an explicit validation step before construction rather than
// discovering a bad config mid-build.
func ValidateAndBuild(ctx context.Context, cfg SchedulerConfig) (*scheduler.Master, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	master, err := factory.NewMasterFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build master: %w", err)
	}

	return master, nil
}

// LoadOrDefault attempts to load config from file, falling back to
// DefaultConfig on any error. Useful when a config file is optional.
func LoadOrDefault(path string) (*SchedulerConfig, error) {
	cfg, err := LoadFromFile(path)
	if err != nil {
		defaultCfg := DefaultConfig()
		return &defaultCfg, fmt.Errorf("failed to load config, using default: %w", err)
	}
	return cfg, nil
}

// LoadOrDefaultWithEnv is LoadOrDefault with environment overrides applied
// to the file-based load attempt.
func LoadOrDefaultWithEnv(path string) (*SchedulerConfig, error) {
	cfg, err := LoadFromFileWithEnv(path)
	if err != nil {
		defaultCfg := DefaultConfig()
		return &defaultCfg, fmt.Errorf("failed to load config, using default: %w", err)
	}
	return cfg, nil
}

// BuildFromConfigOrFile uses cfg if non-nil, otherwise loads from path.
// Useful when config can be supplied programmatically but file-based
// configuration should still work as a fallback.
func BuildFromConfigOrFile(ctx context.Context, cfg *SchedulerConfig, path string) (*scheduler.Master, error) {
	var finalCfg *SchedulerConfig
	var err error

	if cfg != nil {
		finalCfg = cfg
	} else {
		finalCfg, err = LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	master, err := factory.NewMasterFromConfig(ctx, *finalCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build master: %w", err)
	}

	return master, nil
}
