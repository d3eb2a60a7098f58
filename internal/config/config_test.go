package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.themoviedb.org/3", cfg.Catalogue.BaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500", cfg.Catalogue.ImageBaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Session.LoginDelay)
	assert.False(t, cfg.IsConfigured())
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalogue:
  api_key: from-file
  timeout: 3s
  rate_limit: 4
session:
  data_dir: /tmp/marquee-test
  login_delay: 10ms
logging:
  level: debug
  format: text
`), 0644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Catalogue.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Catalogue.Timeout)
	assert.InDelta(t, 4.0, cfg.Catalogue.RateLimit, 0.001)
	assert.Equal(t, "/tmp/marquee-test", cfg.Session.DataDir)
	assert.Equal(t, 10*time.Millisecond, cfg.Session.LoginDelay)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	// Untouched keys keep their defaults
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.Catalogue.BaseURL)
	assert.True(t, cfg.IsConfigured())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalogue:\n  api_key: from-file\n"), 0644))
	t.Setenv("MARQUEE_CATALOGUE_API_KEY", "from-env")
	t.Setenv("MARQUEE_UI_CAST_LIMIT", "3")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Catalogue.APIKey)
	assert.Equal(t, 3, cfg.UI.CastLimit)
}

func TestLoadConfigFile_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveConfigFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Catalogue.APIKey = "saved"
	cfg.Catalogue.Timeout = 7 * time.Second
	cfg.Session.DataDir = ""

	require.NoError(t, SaveConfigFile(cfg, path))

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.Catalogue.APIKey)
	assert.Equal(t, 7*time.Second, loaded.Catalogue.Timeout)
	assert.Empty(t, loaded.Session.DataDir)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalogue.APIKey = "k"
	require.NoError(t, cfg.Validate())

	cfg.Catalogue.RateLimit = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Catalogue.APIKey = "k"
	cfg.Catalogue.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Catalogue.APIKey = "k"
	cfg.Logging.Format = "Text"
	assert.NoError(t, cfg.Validate())
	cfg.Logging.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "logging.format")
}
