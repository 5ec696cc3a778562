package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmrAfifiy/kotlin/internal/phase"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "firres.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	for _, k := range []string{EnvDebug, EnvParallelism, EnvDB, EnvTarget, EnvColor} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, phase.Last, cfg.TargetPhase())
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
debug: true
parallelism: 8
target: TYPES
color: false
storage:
  path: /tmp/index.db
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 8, cfg.Parallelism)
	assert.Equal(t, phase.Types, cfg.TargetPhase())
	assert.False(t, cfg.Color)
	assert.Equal(t, "/tmp/index.db", cfg.Storage.Path)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "parallelism: 2\n")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvParallelism, "16")
	t.Setenv(EnvDB, "env.db")
	t.Setenv(EnvTarget, "CONTRACTS")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 16, cfg.Parallelism)
	assert.Equal(t, "env.db", cfg.Storage.Path)
	assert.Equal(t, phase.Contracts, cfg.TargetPhase())
}

func TestLoadConfigErrors(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "parallelism: [\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "target: NOWHERE\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown target phase "NOWHERE"`)

	t.Setenv(EnvParallelism, "many")
	_, err = LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvParallelism)
}
