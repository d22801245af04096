package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.API.URL = "https://finance.example.com"
	cfg.API.Timeout = 5 * time.Second
	cfg.Dashboard.DefaultRange = "last90"
	cfg.Dashboard.TopCategories = 3
	cfg.Auth.TokenFile = "/tmp/fintrack-token.json"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.API.URL, got.API.URL)
	assert.Equal(t, cfg.API.Timeout, got.API.Timeout)
	assert.Equal(t, cfg.Auth.TokenFile, got.Auth.TokenFile)
	assert.Equal(t, "last90", got.Dashboard.DefaultRange)
	assert.Equal(t, "₽", got.Dashboard.Currency)
	assert.Equal(t, 3, got.Dashboard.TopCategories)
	assert.Equal(t, "warn", got.Log.Level)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:8000", cfg.API.URL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "last30", cfg.Dashboard.DefaultRange)
	assert.Equal(t, 5, cfg.Dashboard.TopCategories)
	assert.Empty(t, cfg.Auth.TokenFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	t.Setenv("FINTRACK_API_URL", "http://backend:9000")
	t.Setenv("FINTRACK_DASHBOARD_DEFAULT_RANGE", "all")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.API.URL)
	assert.Equal(t, "all", cfg.Dashboard.DefaultRange)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("dashboard:\n  default_range: last7\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard.default_range")
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestTokenPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/home/u/.config/fintrack", "token.json"), cfg.TokenPath("/home/u/.config/fintrack/fintrack.yaml"))

	cfg.Auth.TokenFile = "/var/lib/fintrack/token.json"
	assert.Equal(t, "/var/lib/fintrack/token.json", cfg.TokenPath("/ignored/fintrack.yaml"))
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "url: http://localhost:8000")
	assert.Contains(t, contents, "timeout: 30s")
	assert.Contains(t, contents, "default_range: last30")
	assert.NotContains(t, contents, "token_file")
}
