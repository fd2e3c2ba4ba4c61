package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, ".lattice/registry.yaml", cfg.RegistryFile)
	require.True(t, cfg.AutoReload)
	require.Equal(t, 500, cfg.AutoReloadDebounce)
	require.Equal(t, 60, cfg.CacheTTL)
	require.False(t, cfg.Tracing.Enabled)
	require.NoError(t, Validate(cfg))
}

func TestValidate_EmptyRegistryFile(t *testing.T) {
	cfg := Defaults()
	cfg.RegistryFile = ""

	require.Error(t, Validate(cfg))
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := Defaults()
	cfg.AutoReloadDebounce = -1
	require.Error(t, Validate(cfg))

	cfg = Defaults()
	cfg.CacheTTL = -1
	require.Error(t, Validate(cfg))
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".lattice", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "registry_file:")
}

func TestWriteDefaultConfig_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("registry_file: custom.yaml\n"), 0644))

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "registry_file: custom.yaml\n", string(data))
}
