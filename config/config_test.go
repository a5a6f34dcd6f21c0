package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{APIKey: "tmdb-key"},
		Network: NetworkConfig{
			MaxAttempts:     3,
			Backoff:         2 * time.Second,
			RequestTimeout:  30 * time.Second,
			ResourceTimeout: 300 * time.Second,
		},
		Library: LibraryConfig{Path: "library.db"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing tmdb key is checked later", mutate: func(c *Config) { c.TMDB.APIKey = "" }},
		{name: "too many youtube results", mutate: func(c *Config) { c.YouTube.MaxResults = 51 }, errContains: "youtube.max_results"},
		{name: "zero attempts", mutate: func(c *Config) { c.Network.MaxAttempts = 0 }, errContains: "network.max_attempts"},
		{name: "negative backoff", mutate: func(c *Config) { c.Network.Backoff = -time.Second }, errContains: "network.backoff"},
		{name: "zero backoff", mutate: func(c *Config) { c.Network.Backoff = 0 }},
		{name: "zero timeout", mutate: func(c *Config) { c.Network.RequestTimeout = 0 }, errContains: "timeouts"},
		{name: "resource shorter than request", mutate: func(c *Config) { c.Network.ResourceTimeout = time.Second }, errContains: "resource_timeout"},
		{name: "missing library path", mutate: func(c *Config) { c.Library.Path = "" }, errContains: "library.path"},
		{name: "empty preset", mutate: func(c *Config) { c.Filter.Presets = map[string]string{"x": " "} }, errContains: `"x"`},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "trace" }, errContains: "logging level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, errContains: "logging format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
tmdb:
  api_key: file-key
  language: de-DE
youtube:
  api_key: yt-key
network:
  max_attempts: 5
  backoff: 500ms
filter:
  presets:
    acclaimed: "VoteAverage >= 8"
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.TMDB.APIKey)
	assert.Equal(t, "de-DE", cfg.TMDB.Language)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.True(t, cfg.YouTube.Enabled())
	assert.Equal(t, 20, cfg.YouTube.MaxResults)
	assert.Equal(t, 5, cfg.Network.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Network.Backoff)
	assert.Equal(t, 30*time.Second, cfg.Network.RequestTimeout)
	assert.Equal(t, 300*time.Second, cfg.Network.ResourceTimeout)
	assert.Equal(t, "VoteAverage >= 8", cfg.Filter.Presets["acclaimed"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "s0up4200/marquee", cfg.Update.Repository)
	assert.NotEmpty(t, cfg.Library.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tmdb:\n  api_key: file-key\n"), 0o600))

	t.Setenv("MARQUEE_TMDB_API_KEY", "env-key")
	t.Setenv("MARQUEE_NETWORK_MAX_ATTEMPTS", "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.TMDB.APIKey)
	assert.Equal(t, 1, cfg.Network.MaxAttempts)
	assert.False(t, cfg.YouTube.Enabled())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network:\n  max_attempts: 0\n"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network.max_attempts")
}

func TestLoad_WithoutTMDBKey(t *testing.T) {
	t.Setenv("MARQUEE_TMDB_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.TMDB.APIKey)
	assert.Error(t, cfg.TMDB.Validate())
}

func TestTMDBConfig_Validate(t *testing.T) {
	assert.NoError(t, TMDBConfig{APIKey: "tmdb-key"}.Validate())

	for _, key := range []string{"", "your-api-key-here"} {
		err := TMDBConfig{APIKey: key}.Validate()
		require.Error(t, err, key)
		assert.Contains(t, err.Error(), "tmdb.api_key")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".marquee", "library.db"), expandHome("~/.marquee/library.db"))
	assert.Equal(t, "/var/lib/marquee.db", expandHome("/var/lib/marquee.db"))
	assert.Equal(t, "~user/x", expandHome("~user/x"))
}
