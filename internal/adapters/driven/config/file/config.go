// Package file loads the promptfeed TOML configuration.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driving"
)

// DefaultFileName is the config file name inside the config directory.
const DefaultFileName = "config.toml"

// Config is the full promptfeed configuration.
type Config struct {
	Embedding   EmbeddingConfig   `toml:"embedding"`
	Storage     StorageConfig     `toml:"storage"`
	Sources     SourcesConfig     `toml:"sources"`
	Aggregation AggregationConfig `toml:"aggregation"`
}

// EmbeddingConfig selects and configures the embedding backend.
type EmbeddingConfig struct {
	// Backend is "ollama" or "openai".
	Backend    string `toml:"backend"`
	BaseURL    string `toml:"base_url"`
	APIKey     string `toml:"api_key"`
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`
}

// StorageConfig selects and configures the snapshot backend.
type StorageConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `toml:"backend"`
	DataDir string `toml:"data_dir"`
}

// SourcesConfig holds per-source credentials and overrides.
type SourcesConfig struct {
	Reddit  RedditConfig  `toml:"reddit"`
	YouTube YouTubeConfig `toml:"youtube"`
	GitHub  GitHubConfig  `toml:"github"`
}

// RedditConfig configures the reddit adapter.
type RedditConfig struct {
	UserAgent string `toml:"user_agent"`
}

// YouTubeConfig configures the YouTube adapter.
type YouTubeConfig struct {
	APIKey string `toml:"api_key"`
}

// GitHubConfig configures the GitHub adapter.
type GitHubConfig struct {
	Token string `toml:"token"`
}

// AggregationConfig configures the fan-out run.
type AggregationConfig struct {
	// TaskTimeoutSeconds bounds each adapter task. Zero selects the
	// built-in default.
	TaskTimeoutSeconds int `toml:"task_timeout_seconds"`

	// Tasks is the default scrape plan used when the command line names
	// no sources.
	Tasks []driving.AdapterTask `toml:"tasks"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Embedding: EmbeddingConfig{
			Backend: "ollama",
		},
		Storage: StorageConfig{
			Backend: "file",
		},
	}
}

// DefaultPath returns the standard config file location,
// ~/.promptfeed/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".promptfeed", DefaultFileName), nil
}

// Load reads the config file at path, overlaying it on the defaults.
// A missing file yields the defaults, not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
