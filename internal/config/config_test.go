package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GITHUB_TOKEN", "PORT", "REPOLENS_GITHUB_TOKEN", "REPOLENS_SERVER_PORT", "REPOLENS_ANALYZE_CONCURRENCY"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIURL)
	assert.Empty(t, cfg.GitHub.Token)
	assert.Equal(t, []string{"main", "master"}, cfg.GitHub.Branches)
	assert.Equal(t, 30*time.Second, cfg.GitHub.Timeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 168*time.Hour, cfg.Cache.MaxAge)
	assert.True(t, filepath.IsAbs(cfg.Cache.Path) || cfg.Cache.Path == DefaultCache.Path)
	assert.Equal(t, ":3000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:5173", cfg.Server.AllowedOrigin)
	assert.Equal(t, 60*time.Second, cfg.Server.ReportTTL)
	assert.Equal(t, 256, cfg.Server.ReportCacheSize)
	assert.Equal(t, 4, cfg.Analyze.Concurrency)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, 80, cfg.Output.Width)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
github:
  api_url: https://ghe.example.com/api/v3/
  branches: [trunk]
  timeout: 5s
server:
  port: "8080"
  report_ttl: 2m
analyze:
  concurrency: 0
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://ghe.example.com/api/v3", cfg.GitHub.APIURL)
	assert.Equal(t, []string{"trunk"}, cfg.GitHub.Branches)
	assert.Equal(t, 5*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.ReportTTL)
	assert.Equal(t, 1, cfg.Analyze.Concurrency)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("PORT", "4000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ghp_test", cfg.GitHub.Token)
	assert.Equal(t, ":4000", cfg.Server.Port)
}

func TestLoad_PrefixedEnvironmentWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "plain")
	t.Setenv("REPOLENS_GITHUB_TOKEN", "prefixed")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.GitHub.Token)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("github: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizePort(t *testing.T) {
	assert.Equal(t, ":3000", normalizePort("3000"))
	assert.Equal(t, "127.0.0.1:3000", normalizePort("127.0.0.1:3000"))
	assert.Equal(t, ":3000", normalizePort(":3000"))
	assert.Equal(t, "", normalizePort(""))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y"), expandPath("~/x/y"))
	assert.Equal(t, "/abs", expandPath("/abs"))
}
