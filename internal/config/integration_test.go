package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// A local-pool config always attempts to spawn worker processes at an
// unused binary path, so every test here expects a clean construction
// error rather than a running Master — no real worker binary exists in
// this package's test environment.

func TestLoadAndBuildWithMissingBinary(t *testing.T) {
	content := `
partitioner:
  type: even_split
pool:
  type: local
  params:
    worker_count: "2"
    bin_path: "/no/such/worker/binary"
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	_, err := LoadAndBuild(context.Background(), path)
	if err == nil {
		t.Fatal("expected error building master with a nonexistent worker binary")
	}
}

func TestLoadAndBuildWithEnvMissingBinary(t *testing.T) {
	content := `
partitioner:
  type: even_split
pool:
  type: local
  params:
    worker_count: "1"
    bin_path: "/no/such/worker/binary"
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	t.Setenv("SCHEDULER_PARTITIONER_TYPE", "whole_input")

	_, err := LoadAndBuildWithEnv(context.Background(), path)
	if err == nil {
		t.Fatal("expected error building master with a nonexistent worker binary")
	}
}

func TestBuildFromBytesMissingBinary(t *testing.T) {
	yamlConfig := []byte(`
partitioner:
  type: even_split
pool:
  type: local
  params:
    worker_count: "1"
    bin_path: "/no/such/worker/binary"
`)
	_, err := BuildFromBytes(context.Background(), yamlConfig, "yaml")
	if err == nil {
		t.Fatal("expected error building master with a nonexistent worker binary")
	}
}

func TestBuildFromDefaultFailsWithoutRealBinary(t *testing.T) {
	_, err := BuildFromDefault(context.Background())
	if err == nil {
		t.Fatal("expected error: the factory's default bin_path is not present in the test environment")
	}
}

func TestMustLoadAndBuildPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid config path")
		}
	}()
	MustLoadAndBuild(context.Background(), "/does/not/exist.yaml")
}

func TestValidateAndBuildRejectsInvalidConfig(t *testing.T) {
	cfg := SchedulerConfig{
		Partitioner: PartitionerConfig{Type: "bogus"},
		Pool:        PoolConfig{Type: "local", Params: map[string]string{"worker_count": "1"}},
	}
	_, err := ValidateAndBuild(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected validation error for unsupported partitioner type")
	}
	if !strings.Contains(err.Error(), "validation") {
		t.Errorf("error = %v, expected a validation failure message", err)
	}
}

func TestLoadOrDefaultFallsBackOnMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault("/does/not/exist.yaml")
	if err == nil {
		t.Fatal("expected error reporting the fallback")
	}
	if cfg.Pool.Type != DefaultConfig().Pool.Type {
		t.Error("expected DefaultConfig's pool type on fallback")
	}
}

func TestLoadOrDefaultWithEnvFallsBackOnMissingFile(t *testing.T) {
	cfg, err := LoadOrDefaultWithEnv("/does/not/exist.yaml")
	if err == nil {
		t.Fatal("expected error reporting the fallback")
	}
	if cfg.Partitioner.Type != DefaultConfig().Partitioner.Type {
		t.Error("expected DefaultConfig's partitioner type on fallback")
	}
}

func TestBuildFromConfigOrFilePrefersProvidedConfig(t *testing.T) {
	cfg := SchedulerConfig{
		Partitioner: PartitionerConfig{Type: "even_split"},
		Pool: PoolConfig{
			Type:   "local",
			Params: map[string]string{"worker_count": "1", "bin_path": "/no/such/worker/binary"},
		},
	}

	_, err := BuildFromConfigOrFile(context.Background(), &cfg, "/would/be/ignored.yaml")
	if err == nil {
		t.Fatal("expected error building master with a nonexistent worker binary")
	}
	if strings.Contains(err.Error(), "would/be/ignored") {
		t.Error("BuildFromConfigOrFile should not have attempted to load the file path")
	}
}

func TestLoadAndBuildRemoteMissingEndpointsFile(t *testing.T) {
	content := `
partitioner:
  type: even_split
pool:
  type: remote
  params:
    endpoints_file: "does-not-exist.json"
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	_, err := LoadAndBuildRemote(context.Background(), path, func(id string) string { return "http://" + id })
	if err == nil {
		t.Fatal("expected error: endpoints file does not exist")
	}
}
