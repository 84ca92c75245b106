package factory

import (
	"context"
	"strings"
	"testing"

	"github.com/AshishBagdane/go-faas-scheduler/internal/config"
)

func TestNewMasterFromConfigLocalMissingBinary(t *testing.T) {
	cfg := config.SchedulerConfig{
		Partitioner: config.PartitionerConfig{Type: "even_split"},
		Pool: config.PoolConfig{
			Type:   "local",
			Params: map[string]string{"worker_count": "2", "bin_path": "/no/such/worker/binary"},
		},
	}

	_, err := NewMasterFromConfig(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error: worker binary does not exist")
	}
}

func TestNewMasterFromConfigRejectsInvalidConfig(t *testing.T) {
	cfg := config.SchedulerConfig{
		Partitioner: config.PartitionerConfig{Type: "bogus"},
		Pool:        config.PoolConfig{Type: "local", Params: map[string]string{"worker_count": "1"}},
	}

	_, err := NewMasterFromConfig(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewMasterFromConfigRemoteNotSupportedDirectly(t *testing.T) {
	cfg := config.SchedulerConfig{
		Partitioner: config.PartitionerConfig{Type: "even_split"},
		Pool:        config.PoolConfig{Type: "remote", Params: map[string]string{"endpoints_file": "e.json"}},
	}

	_, err := NewMasterFromConfig(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error directing caller to NewMasterFromRemoteConfig")
	}
	if !strings.Contains(err.Error(), "NewMasterFromRemoteConfig") {
		t.Errorf("error = %v, expected it to mention NewMasterFromRemoteConfig", err)
	}
}

func TestNewMasterFromRemoteConfigRequiresRemotePoolType(t *testing.T) {
	cfg := config.SchedulerConfig{
		Partitioner: config.PartitionerConfig{Type: "even_split"},
		Pool:        config.PoolConfig{Type: "local", Params: map[string]string{"worker_count": "1"}},
	}

	_, err := NewMasterFromRemoteConfig(context.Background(), cfg, func(id string) string { return id })
	if err == nil {
		t.Fatal("expected error: pool.type must be remote")
	}
}

func TestNewMasterFromRemoteConfigMissingEndpointsFile(t *testing.T) {
	cfg := config.SchedulerConfig{
		Partitioner: config.PartitionerConfig{Type: "even_split"},
		Pool:        config.PoolConfig{Type: "remote", Params: map[string]string{"endpoints_file": "/no/such/file.json"}},
	}

	_, err := NewMasterFromRemoteConfig(context.Background(), cfg, func(id string) string { return id })
	if err == nil {
		t.Fatal("expected error: endpoints file does not exist")
	}
}
