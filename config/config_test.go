package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gophylo/backend"
	"github.com/katalvlaran/gophylo/config"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	resources := cfg.Resources()
	require.Len(t, resources, 1)
	require.Equal(t, "CPU", resources[0].Name)
	require.True(t, resources[0].Capabilities.Has(backend.FlagCPU))
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.yaml")
	doc := `
resources:
  - name: CPU-VECTOR
    memory_bytes: 0
    capabilities: [cpu, vector_simd, double_precision]
  - name: GPU0
    memory_bytes: 8589934592
    capabilities: [double_precision, async]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	resources := cfg.Resources()
	require.Len(t, resources, 2)

	require.Equal(t, "CPU-VECTOR", resources[0].Name)
	require.True(t, resources[0].Capabilities.Has(backend.FlagVectorSIMD))

	require.Equal(t, "GPU0", resources[1].Name)
	require.Equal(t, uint64(8589934592), resources[1].MemoryBytes)
	require.True(t, resources[1].Capabilities.Has(backend.FlagAsync))
	require.False(t, resources[1].Capabilities.Has(backend.FlagCPU))
}
