// Package factory builds a ready-to-run scheduler.Master from a
// config.SchedulerConfig: resolving a Partitioner via internal/registry,
// selecting a WorkerPool backend by its configured type, and assembling
// them with scheduler.NewMaster.
package factory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/AshishBagdane/go-faas-scheduler/internal/config"
	"github.com/AshishBagdane/go-faas-scheduler/internal/pool"
	"github.com/AshishBagdane/go-faas-scheduler/internal/registry"
	"github.com/AshishBagdane/go-faas-scheduler/internal/scheduler"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

// defaultRemoteTimeout bounds a single HTTP round-trip to a remote FaaS
// endpoint when the config does not set timeout_seconds.
const defaultRemoteTimeout = 30 * time.Second

// NewMasterFromConfig builds a scheduler.Master by resolving cfg.Partitioner
// through internal/registry and building the pool named by cfg.Pool.Type,
// then wiring them together. Only pool type "local" is built here; a
// "remote" pool returns an error directing the caller to
// NewMasterFromRemoteConfig. ctx is passed to buildPool, which does not use
// it for local pools.
func NewMasterFromConfig(ctx context.Context, cfg config.SchedulerConfig) (*scheduler.Master, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	partitioner, err := registry.GetPartitioner(cfg.Partitioner.Type, cfg.Partitioner.Params)
	if err != nil {
		return nil, fmt.Errorf("partitioner error: %w", err)
	}

	workerPool, err := buildPool(ctx, cfg.Pool)
	if err != nil {
		return nil, fmt.Errorf("pool error: %w", err)
	}

	master := scheduler.NewMaster(workerPool, partitioner)
	if cfg.TaskTimeoutSeconds > 0 {
		master = master.WithTaskTimeout(time.Duration(cfg.TaskTimeoutSeconds) * time.Second)
	}
	return master, nil
}

func buildPool(ctx context.Context, cfg config.PoolConfig) (api.WorkerPool, error) {
	switch cfg.Type {
	case "local":
		return buildLocalPool(cfg.Params)
	case "remote":
		// Remote pools are built directly by NewMasterFromRemoteConfig; a
		// plain SchedulerConfig can only request a local pool through the
		// registry path because RemoteFaasPool's endpointURL mapping is not
		// expressible as a flat string-to-string params map.
		return nil, fmt.Errorf("pool type %q requires NewMasterFromRemoteConfig", cfg.Type)
	default:
		return nil, fmt.Errorf("unsupported pool type %q", cfg.Type)
	}
}

func buildLocalPool(params map[string]string) (*pool.LocalPool, error) {
	binPath, ok := params["bin_path"]
	if !ok || binPath == "" {
		binPath = "./cmd/localworker/localworker"
	}

	workerCountStr, ok := params["worker_count"]
	if !ok {
		return nil, fmt.Errorf("local pool requires params.worker_count")
	}
	workerCount, err := strconv.Atoi(workerCountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid worker_count %q: %w", workerCountStr, err)
	}

	return pool.NewLocalPool(binPath, workerCount)
}

// NewMasterFromRemoteConfig builds a scheduler.Master backed by a
// RemoteFaasPool, reading the endpoints file named by
// cfg.Pool.Params["endpoints_file"] and mapping each endpoint id to a URL
// via endpointURL.
func NewMasterFromRemoteConfig(ctx context.Context, cfg config.SchedulerConfig, endpointURL func(id string) string) (*scheduler.Master, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Pool.Type != "remote" {
		return nil, fmt.Errorf("NewMasterFromRemoteConfig requires pool.type=remote, got %q", cfg.Pool.Type)
	}

	endpointsFile, ok := cfg.Pool.Params["endpoints_file"]
	if !ok || endpointsFile == "" {
		return nil, fmt.Errorf("remote pool requires params.endpoints_file")
	}

	endpoints, err := pool.LoadEndpointsConfig(endpointsFile)
	if err != nil {
		return nil, fmt.Errorf("load endpoints: %w", err)
	}

	timeout := defaultRemoteTimeout
	if raw, ok := cfg.Pool.Params["timeout_seconds"]; ok && raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout_seconds %q: %w", raw, err)
		}
		timeout = time.Duration(secs) * time.Second
	}

	workerPool, err := pool.NewRemoteFaasPool(ctx, endpoints, endpointURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("build remote pool: %w", err)
	}

	partitioner, err := registry.GetPartitioner(cfg.Partitioner.Type, cfg.Partitioner.Params)
	if err != nil {
		return nil, fmt.Errorf("partitioner error: %w", err)
	}

	master := scheduler.NewMaster(workerPool, partitioner)
	if cfg.TaskTimeoutSeconds > 0 {
		master = master.WithTaskTimeout(time.Duration(cfg.TaskTimeoutSeconds) * time.Second)
	}
	return master, nil
}
