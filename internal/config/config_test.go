package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.False(t, cfg.Logging.UseCases)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questboard.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
backend = "memory"

[logging]
use-cases = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.True(t, cfg.Logging.UseCases)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUESTBOARD_BACKEND", "memory")
	t.Setenv("QUESTBOARD_DB", "/tmp/override.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/override.db", cfg.Storage.Path)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questboard.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
backend = "postgres"
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestLoad_RejectsSQLiteWithoutPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questboard.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
backend = "sqlite"
path = ""
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a database path")
}
