package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/marquee/network"
	"github.com/s0up4200/marquee/tmdb"
	"github.com/s0up4200/marquee/youtube"
)

// EnvPrefix prefixes environment overrides, e.g. MARQUEE_TMDB_API_KEY
const EnvPrefix = "MARQUEE"

// Load loads the configuration from file and the environment. A missing
// config file is not an error when no explicit path was given, so a setup
// driven purely by environment variables works.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".marquee"))
		}

		// Check /etc
		v.AddConfigPath("/etc/marquee/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Library.Path = expandHome(cfg.Library.Path)

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// DefaultLibraryPath returns ~/.marquee/library.db, or a relative path when
// the home directory is unknown
func DefaultLibraryPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".marquee", "library.db")
	}
	return "library.db"
}

// expandHome resolves a leading "~/" against the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.base_url", tmdb.DefaultBaseURL)
	v.SetDefault("tmdb.image_base_url", tmdb.DefaultImageBaseURL)
	v.SetDefault("tmdb.language", tmdb.DefaultLanguage)

	// YouTube defaults
	v.SetDefault("youtube.api_key", "")
	v.SetDefault("youtube.base_url", youtube.DefaultBaseURL)
	v.SetDefault("youtube.max_results", youtube.DefaultMaxResults)

	// Network defaults
	v.SetDefault("network.max_attempts", network.DefaultMaxAttempts)
	v.SetDefault("network.backoff", network.DefaultBackoff)
	v.SetDefault("network.request_timeout", network.DefaultRequestTimeout)
	v.SetDefault("network.resource_timeout", network.DefaultResourceTimeout)
	v.SetDefault("network.user_agent", network.DefaultUserAgent)

	// Library defaults
	v.SetDefault("library.path", DefaultLibraryPath())

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Update defaults
	v.SetDefault("update.repository", "s0up4200/marquee")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.YouTube.MaxResults < 0 || cfg.YouTube.MaxResults > 50 {
		return fmt.Errorf("youtube.max_results must be between 0 and 50, got %d", cfg.YouTube.MaxResults)
	}

	if cfg.Network.MaxAttempts < 1 {
		return fmt.Errorf("network.max_attempts must be at least 1, got %d", cfg.Network.MaxAttempts)
	}
	if cfg.Network.Backoff < 0 {
		return fmt.Errorf("network.backoff must not be negative")
	}
	if cfg.Network.RequestTimeout <= 0 || cfg.Network.ResourceTimeout <= 0 {
		return fmt.Errorf("network timeouts must be positive")
	}
	if cfg.Network.ResourceTimeout < cfg.Network.RequestTimeout {
		return fmt.Errorf("network.resource_timeout (%s) must not be shorter than network.request_timeout (%s)",
			cfg.Network.ResourceTimeout, cfg.Network.RequestTimeout)
	}

	if cfg.Library.Path == "" {
		return fmt.Errorf("library.path is required")
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset %q has an empty expression", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
