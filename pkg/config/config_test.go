package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	require.Equal(t, 15*time.Second, cfg.API.TimeoutDuration())
	require.Equal(t, 168*time.Hour, cfg.Retention.MaxAgeDuration())
	require.NotEmpty(t, cfg.Storage.DBPath)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
api:
  base_url: https://cms.example.com/api
  timeout: 3s
storage:
  db_path: /tmp/ink-test
retention:
  enabled: true
  cron: "30 2 * * *"
  max_age: 72h
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://cms.example.com/api", cfg.API.BaseURL)
	require.Equal(t, 3*time.Second, cfg.API.TimeoutDuration())
	require.Equal(t, "/tmp/ink-test", cfg.Storage.DBPath)
	require.True(t, cfg.Retention.Enabled)
	require.Equal(t, "30 2 * * *", cfg.Retention.Cron)
	require.Equal(t, 72*time.Hour, cfg.Retention.MaxAgeDuration())
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: ["), 0o600))
	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://file.example.com\n"), 0o600))

	t.Setenv("INKPRESS_API_URL", "https://env.example.com")
	t.Setenv("INKPRESS_API_TIMEOUT", "9s")
	t.Setenv("INKPRESS_RATE_RPS", "2.5")
	t.Setenv("INKPRESS_RATE_BURST", "4")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	require.Equal(t, 9*time.Second, cfg.API.TimeoutDuration())
	require.Equal(t, 2.5, cfg.API.RateRPS)
	require.Equal(t, 4, cfg.API.RateBurst)
}

func TestBadDurationsFallBack(t *testing.T) {
	a := APIConfig{Timeout: "not a duration"}
	require.Equal(t, 15*time.Second, a.TimeoutDuration())
	r := RetentionConfig{MaxAge: "soon"}
	require.Equal(t, 168*time.Hour, r.MaxAgeDuration())
}
