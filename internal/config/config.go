// Package config provides configuration loading and validation for the CLI
// and server. Values come from an optional JSON file, environment variables,
// and CLI flags, in increasing order of precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Memory backend identifiers.
const (
	MemoryBackendFile     = "file"
	MemoryBackendRedis    = "redis"
	MemoryBackendPostgres = "postgres"
)

// Config represents the application configuration. All fields are optional;
// missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Model access
	APIKey    string `json:"api_key,omitempty" env:"GEMINI_API_KEY"`
	SpecTier  string `json:"spec_tier,omitempty" env:"PERSONA_SPEC_TIER"`
	FacetTier string `json:"facet_tier,omitempty" env:"PERSONA_FACET_TIER"`

	// Similarity memory backend
	MemoryBackend string `json:"memory_backend,omitempty" env:"PERSONA_MEMORY_BACKEND"`
	MemoryPath    string `json:"memory_path,omitempty" env:"PERSONA_MEMORY_PATH"`
	RedisURL      string `json:"redis_url,omitempty" env:"REDIS_URL"`
	DatabaseURL   string `json:"database_url,omitempty" env:"DATABASE_URL"`

	// Server
	ServerAddr string `json:"server_addr,omitempty" env:"PERSONA_SERVER_ADDR"`

	// Behavior
	LogMode string `json:"log_mode,omitempty" env:"PERSONA_LOG_MODE"`
	Verbose bool   `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv overlays environment variables onto the config. Environment values
// take precedence over file values; CLI flags are merged later and win over
// both.
func (c *Config) FromEnv() error {
	overlay := Config{}
	if err := env.Parse(&overlay); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	*c = overlay.MergeWithDefaults(*c)
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.MemoryBackend {
	case "", MemoryBackendFile, MemoryBackendRedis, MemoryBackendPostgres:
	default:
		return fmt.Errorf("config error: unknown memory_backend %q", c.MemoryBackend)
	}

	if c.MemoryBackend == MemoryBackendRedis && c.RedisURL == "" {
		return fmt.Errorf("config error: memory_backend=redis requires redis_url")
	}
	if c.MemoryBackend == MemoryBackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config error: memory_backend=postgres requires database_url")
	}

	switch c.LogMode {
	case "", "production", "development":
	default:
		return fmt.Errorf("config error: log_mode must be production or development")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags, and environment values over file values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SpecTier == "" {
		result.SpecTier = defaults.SpecTier
	}
	if result.FacetTier == "" {
		result.FacetTier = defaults.FacetTier
	}
	if result.MemoryBackend == "" {
		result.MemoryBackend = defaults.MemoryBackend
	}
	if result.MemoryPath == "" {
		result.MemoryPath = defaults.MemoryPath
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ServerAddr == "" {
		result.ServerAddr = defaults.ServerAddr
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyDefaults fills the remaining gaps with built-in defaults.
func (c *Config) ApplyDefaults() {
	if c.MemoryBackend == "" {
		c.MemoryBackend = MemoryBackendFile
	}
	if c.MemoryPath == "" {
		c.MemoryPath = "persona_memory.json"
	}
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if c.LogMode == "" {
		c.LogMode = "production"
	}
}
