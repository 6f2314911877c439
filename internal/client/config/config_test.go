package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"client"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	require.Equal(t, "resumeroast.db", cfg.DatabaseDSN)
	require.Equal(t, 20*time.Second, cfg.RequestTimeout)
	require.Equal(t, 150*time.Millisecond, cfg.URLSyncDebounce)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "welcome", cfg.AnnouncementID)
}

func TestEnvOverridesDefaults(t *testing.T) {
	setArgs(t)
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("URL_SYNC_DEBOUNCE", "300ms")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	require.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	require.Equal(t, 300*time.Millisecond, cfg.URLSyncDebounce)
	require.Equal(t, "debug", cfg.LogLevel)
	// Untouched fields keep their defaults.
	require.Equal(t, "resumeroast.db", cfg.DatabaseDSN)
}

func TestJsonFileOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_base_url": "https://json.example.com",
		"url_sync_debounce": "250ms",
		"request_timeout": "30s",
		"announcement_id": ""
	}`), 0o600))

	setArgs(t, "-c", path)
	t.Setenv("API_BASE_URL", "https://env.example.com")

	cfg := LoadConfig()

	require.Equal(t, "https://json.example.com", cfg.APIBaseURL)
	require.Equal(t, 250*time.Millisecond, cfg.URLSyncDebounce)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Empty(t, cfg.AnnouncementID)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestFlagsWinOverEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_base_url": "https://json.example.com"}`), 0o600))

	setArgs(t, "-c", path, "-a", "https://flag.example.com", "-t", "5", "-l", "warn")
	t.Setenv("API_BASE_URL", "https://env.example.com")

	cfg := LoadConfig()

	require.Equal(t, "https://flag.example.com", cfg.APIBaseURL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, "warn", cfg.LogLevel)
}
