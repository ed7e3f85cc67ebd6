package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TechDrawStudio.exe.config")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Drawing.SessionTimeoutMinutes)

	// File must exist after first load.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "TechDrawStudio.exe.config")

	cfg := DefaultConfig()
	cfg.Server.Port = 9999
	cfg.Security.AllowExportDeletion = false
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, loaded.Server.Port)
	assert.False(t, loaded.Security.AllowExportDeletion)
	// Relative storage paths resolve against the config location.
	assert.Equal(t, filepath.Join(dir, "data", "exports"), loaded.GetExportsDir())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "TechDrawStudio.exe.config")
	require.NoError(t, DefaultConfig().Save(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Advanced.LogLevel)
}
