package config

import (
	"fmt"
	"time"
)

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	YouTube YouTubeConfig `mapstructure:"youtube"`
	Network NetworkConfig `mapstructure:"network"`
	Library LibraryConfig `mapstructure:"library"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
	Update  UpdateConfig  `mapstructure:"update"`
}

// TMDBConfig holds movie metadata API connection details
type TMDBConfig struct {
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	ImageBaseURL string `mapstructure:"image_base_url"`
	Language     string `mapstructure:"language"`
}

// Validate reports whether the api key is usable. It is checked by the
// commands that fetch titles, not at load, so library commands work offline.
func (c TMDBConfig) Validate() error {
	if c.APIKey == "" || c.APIKey == "your-api-key-here" {
		return fmt.Errorf("tmdb.api_key must be set to a valid API key")
	}
	return nil
}

// YouTubeConfig holds video search API connection details. Trailer and
// video commands are unavailable without an api key.
type YouTubeConfig struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	MaxResults int    `mapstructure:"max_results"`
}

// Enabled reports whether video search is configured
func (c YouTubeConfig) Enabled() bool {
	return c.APIKey != ""
}

// NetworkConfig tunes the request pipeline
type NetworkConfig struct {
	MaxAttempts     int           `mapstructure:"max_attempts"`
	Backoff         time.Duration `mapstructure:"backoff"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ResourceTimeout time.Duration `mapstructure:"resource_timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
}

// LibraryConfig locates the local watchlist and profile store
type LibraryConfig struct {
	Path string `mapstructure:"path"`
}

// FilterConfig contains named filter presets
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig controls self-update
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
