package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigFromFile(t *testing.T) {
	reports := filepath.Join(t.TempDir(), "reports")
	dir := writeConfig(t, `
server:
  port: "9090"
  mode: debug
database:
  driver: sqlite
  path: ":memory:"
quiz:
  count_missing_as_wrong: false
storage:
  type: local
  local_path: `+reports+`
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.False(t, cfg.Quiz.CountMissingAsWrong)
	assert.Equal(t, "Graphs", cfg.Quiz.DefaultTopic)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.AI.BaseURL)
	assert.Equal(t, 60, cfg.AI.TimeoutSeconds)

	_, err = os.Stat(reports)
	assert.NoError(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: sqlite
storage:
  type: minio
`)
	t.Setenv("AI_MODEL", "openai/gpt-4o-mini")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
	t.Setenv("QUIZ_COUNT_MISSING_AS_WRONG", "false")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, "sk-or-test", cfg.AI.APIKey)
	assert.False(t, cfg.Quiz.CountMissingAsWrong)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "minio")
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.True(t, cfg.Quiz.CountMissingAsWrong)
	assert.Equal(t, 600, cfg.RateLimit.MaxRequests)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:    ServerConfig{Mode: "debug"},
			Database:  DatabaseConfig{Driver: "postgres"},
			RateLimit: RateLimitConfig{MaxRequests: 10, WindowMinutes: 1},
		}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.Mode = "release"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.RateLimit.MaxRequests = 0
	assert.Error(t, cfg.Validate())
}
