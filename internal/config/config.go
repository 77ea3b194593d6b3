// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the prospector configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must
// be provided via CLI flags or environment variables.
type Config struct {
	// Credentials / endpoints
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP server port

	// Search policy
	StandardTarget int `json:"standard_target,omitempty"` // Contact goal for plain searches
	DeepTarget     int `json:"deep_target,omitempty"`     // Contact goal when deep search is active
	MaxRounds      int `json:"max_rounds,omitempty"`      // Upstream call budget per search
	RoundPauseMs   int `json:"round_pause_ms,omitempty"`  // Pause between pagination rounds

	// Optional retrieval hint biasing maps grounding
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed progress information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.StandardTarget < 0 {
		return fmt.Errorf("config error: 'standard_target' must be non-negative")
	}
	if c.DeepTarget < 0 {
		return fmt.Errorf("config error: 'deep_target' must be non-negative")
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("config error: 'max_rounds' must be non-negative")
	}
	if c.RoundPauseMs < 0 {
		return fmt.Errorf("config error: 'round_pause_ms' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled
// from defaults. This is used to apply config file values as defaults for
// CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.StandardTarget == 0 {
		result.StandardTarget = defaults.StandardTarget
	}
	if result.DeepTarget == 0 {
		result.DeepTarget = defaults.DeepTarget
	}
	if result.MaxRounds == 0 {
		result.MaxRounds = defaults.MaxRounds
	}
	if result.RoundPauseMs == 0 {
		result.RoundPauseMs = defaults.RoundPauseMs
	}
	if result.Latitude == 0 && result.Longitude == 0 {
		result.Latitude = defaults.Latitude
		result.Longitude = defaults.Longitude
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
