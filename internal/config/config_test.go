package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trknhr/namesake/internal/config"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.ConfigPathEnv, "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DB.Path)
	assert.Equal(t, 0, cfg.Graph.Workers)
	assert.Equal(t, 0.0, cfg.Recommend.Commonness)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
db:
  path: /tmp/names.db
graph:
  workers: 3
recommend:
  commonness: 0.25
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("NAMESAKE_GRAPH_WORKERS", "8")
	t.Setenv("NAMESAKE_SOURCE_PATH", "/data/prenoms.txt")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/names.db", cfg.DB.Path)
	assert.Equal(t, 8, cfg.Graph.Workers)
	assert.Equal(t, "/data/prenoms.txt", cfg.Source.Path)
	assert.Equal(t, 0.25, cfg.Recommend.Commonness)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recommend:\n  seed: 42\n"), 0644))
	t.Setenv(config.ConfigPathEnv, path)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Recommend.Seed)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	cfg.Recommend.Commonness = 1.5
	cfg.Graph.Workers = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recommend.commonness")
	assert.Contains(t, err.Error(), "graph.workers")
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	isolate(t)
	t.Setenv("NAMESAKE_RECOMMEND_COMMONNESS", "3")

	_, err := config.Load("")
	assert.ErrorContains(t, err, "validation")
}
