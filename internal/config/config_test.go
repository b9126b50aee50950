package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"api_key": "test-key",
		"memory_backend": "redis",
		"redis_url": "redis://localhost:6379/0",
		"server_addr": ":9090",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, MemoryBackendRedis, cfg.MemoryBackend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.True(t, cfg.Verbose)
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

func TestValidate_BackendRequirements(t *testing.T) {
	cfg := &Config{MemoryBackend: MemoryBackendRedis}
	assert.Error(t, cfg.Validate())

	cfg.RedisURL = "redis://localhost:6379/0"
	assert.NoError(t, cfg.Validate())

	cfg = &Config{MemoryBackend: MemoryBackendPostgres}
	assert.Error(t, cfg.Validate())

	cfg.DatabaseURL = "postgres://localhost/personas"
	assert.NoError(t, cfg.Validate())

	cfg = &Config{MemoryBackend: "etcd"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_LogMode(t *testing.T) {
	cfg := &Config{LogMode: "development"}
	assert.NoError(t, cfg.Validate())

	cfg.LogMode = "chatty"
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "flag-key"}
	defaults := Config{APIKey: "file-key", MemoryBackend: MemoryBackendFile, MemoryPath: "/tmp/mem.json"}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, "flag-key", merged.APIKey)
	assert.Equal(t, MemoryBackendFile, merged.MemoryBackend)
	assert.Equal(t, "/tmp/mem.json", merged.MemoryPath)
}

func TestFromEnv_OverlaysUnsetFields(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PERSONA_MEMORY_BACKEND", "file")

	cfg := &Config{MemoryPath: "custom.json"}
	require.NoError(t, cfg.FromEnv())

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, MemoryBackendFile, cfg.MemoryBackend)
	assert.Equal(t, "custom.json", cfg.MemoryPath)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, MemoryBackendFile, cfg.MemoryBackend)
	assert.Equal(t, "persona_memory.json", cfg.MemoryPath)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "production", cfg.LogMode)
}
