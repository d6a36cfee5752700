// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variable names. The API credential is environment-supplied
// only; it is never compiled in and never written to a config file by the
// tooling.
const (
	EnvAPIBaseURL = "TRUSTPROOF_API_BASE_URL"
	EnvAPIKey     = "TRUSTPROOF_API_KEY"
	EnvPort       = "TRUSTPROOF_PORT"
)

// DefaultAPIBaseURL points at the hosted verification tool service.
const DefaultAPIBaseURL = "https://trust-proof.onrender.com/tools"

// Defaults for tunables left unset.
const (
	DefaultStageTimeout = 30 * time.Second
	DefaultPort         = 8080
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via environment or CLI flags. The credential is intentionally absent from
// the file format.
type Config struct {
	APIBaseURL string `json:"api_base_url,omitempty"` // Base URL of the verification service
	APIKey     string `json:"-"`                      // Shared credential, environment-only

	StageTimeoutSeconds int `json:"stage_timeout_seconds,omitempty"` // Per-stage remote call deadline
	PacingMillis        int `json:"pacing_millis,omitempty"`         // Delay between stages for progressive display
	Port                int `json:"port,omitempty"`                  // HTTP server port
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

// FromEnv returns a Config populated from environment variables.
func FromEnv() Config {
	cfg := Config{
		APIBaseURL: os.Getenv(EnvAPIBaseURL),
		APIKey:     os.Getenv(EnvAPIKey),
	}
	if port := os.Getenv(EnvPort); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("config error: api base URL is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("config error: API key is required (set %s)", EnvAPIKey)
	}
	if c.StageTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'stage_timeout_seconds' must be non-negative")
	}
	if c.PacingMillis < 0 {
		return fmt.Errorf("config error: 'pacing_millis' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Used to layer config file values under environment and CLI flag values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.StageTimeoutSeconds == 0 {
		result.StageTimeoutSeconds = defaults.StageTimeoutSeconds
	}
	if result.PacingMillis == 0 {
		result.PacingMillis = defaults.PacingMillis
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// StageTimeout returns the per-stage deadline, falling back to the default.
func (c *Config) StageTimeout() time.Duration {
	if c.StageTimeoutSeconds > 0 {
		return time.Duration(c.StageTimeoutSeconds) * time.Second
	}
	return DefaultStageTimeout
}

// PacingDelay returns the inter-stage display delay. Zero disables pacing.
func (c *Config) PacingDelay() time.Duration {
	return time.Duration(c.PacingMillis) * time.Millisecond
}
