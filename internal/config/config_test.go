package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultManifestURL, cfg.ManifestURL)
	assert.Equal(t, DefaultUpdateEndpoint, cfg.UpdateEndpoint)
	assert.False(t, cfg.WorkOffline)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
manifest_url = "https://mirror.example.com/manifest.json"
install_root = "/opt/larkspur"
work_offline = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.com/manifest.json", cfg.ManifestURL)
	assert.Equal(t, "/opt/larkspur", cfg.InstallRoot)
	assert.True(t, cfg.WorkOffline)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultUpdateEndpoint, cfg.UpdateEndpoint)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("manifest_url = ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvManifestURL, "https://override.example.com/m.json")
	t.Setenv(EnvWorkOffline, "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com/m.json", cfg.ManifestURL)
	assert.True(t, cfg.WorkOffline)
}

func TestResolve_ConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	paths, err := Resolve(Default())
	require.NoError(t, err)
	assert.Equal(t, dir, paths.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(dir, "install.json"), paths.StateFile)
	assert.Equal(t, filepath.Join(dir, ".env"), paths.EnvFile)
	assert.Equal(t, filepath.Join(dir, "apps"), paths.InstallRoot)
}

func TestResolve_InstallRootFromConfig(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	cfg := Default()
	cfg.InstallRoot = "/opt/larkspur"

	paths, err := Resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/opt/larkspur", paths.InstallRoot)
	assert.Equal(t, filepath.Join("/opt/larkspur", "echo-tool"), paths.ProductDir("echo-tool"))
}

func TestResolve_TildeExpansion(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Default()
	cfg.InstallRoot = "~/larkspur-apps"

	paths, err := Resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "larkspur-apps"), paths.InstallRoot)
}
