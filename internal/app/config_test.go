package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutri-cli/internal/api"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("NUTRI_API_URL", "")
	t.Setenv("NUTRI_TIMEOUT", "")
	t.Setenv("NUTRI_LOG_LEVEL", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, api.DefaultBaseURL, cfg.APIURL)
	assert.Equal(t, api.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	t.Setenv("NUTRI_API_URL", "")
	t.Setenv("NUTRI_TIMEOUT", "")
	t.Setenv("NUTRI_LOG_LEVEL", "")
	// godotenv does not override variables that are already set, so clear
	// them from the process first.
	for _, k := range []string{"NUTRI_API_URL", "NUTRI_TIMEOUT", "NUTRI_LOG_LEVEL"} {
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NUTRI_API_URL=https://api.example.com/\nNUTRI_TIMEOUT=5\nNUTRI_LOG_LEVEL=debug\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	d, err := ParseTimeout("90s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	d, err = ParseTimeout("0")
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = ParseTimeout("-3")
	assert.Error(t, err)
	_, err = ParseTimeout("soon")
	assert.Error(t, err)
}
