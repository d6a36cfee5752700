package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"api_base_url": "https://verify.example.com/tools",
		"stage_timeout_seconds": 15,
		"pacing_millis": 400,
		"port": 9090
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://verify.example.com/tools", cfg.APIBaseURL)
	assert.Equal(t, 15, cfg.StageTimeoutSeconds)
	assert.Equal(t, 400, cfg.PacingMillis)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_CredentialNeverReadFromFile(t *testing.T) {
	content := `{"api_key": "should-be-ignored"}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "https://verify.example.com/tools")
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvPort, "9191")

	cfg := FromEnv()
	assert.Equal(t, "https://verify.example.com/tools", cfg.APIBaseURL)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 9191, cfg.Port)
}

func TestValidate(t *testing.T) {
	valid := Config{APIBaseURL: "https://verify.example.com", APIKey: "k"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base url", func(c *Config) { c.APIBaseURL = "" }},
		{"missing api key", func(c *Config) { c.APIKey = "" }},
		{"negative timeout", func(c *Config) { c.StageTimeoutSeconds = -1 }},
		{"negative pacing", func(c *Config) { c.PacingMillis = -1 }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "from-env"}
	defaults := Config{
		APIBaseURL:          DefaultAPIBaseURL,
		APIKey:              "ignored",
		StageTimeoutSeconds: 30,
		PacingMillis:        400,
		Port:                DefaultPort,
	}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, DefaultAPIBaseURL, merged.APIBaseURL)
	assert.Equal(t, "from-env", merged.APIKey)
	assert.Equal(t, 30, merged.StageTimeoutSeconds)
	assert.Equal(t, 400, merged.PacingMillis)
	assert.Equal(t, DefaultPort, merged.Port)
}

func TestStageTimeoutAndPacing(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, DefaultStageTimeout, cfg.StageTimeout())
	assert.Equal(t, time.Duration(0), cfg.PacingDelay())

	cfg = Config{StageTimeoutSeconds: 5, PacingMillis: 250}
	assert.Equal(t, 5*time.Second, cfg.StageTimeout())
	assert.Equal(t, 250*time.Millisecond, cfg.PacingDelay())
}
