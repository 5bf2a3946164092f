package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/levelup/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.FeedPollInterval)
	assert.Equal(t, 4, cfg.InsightConcurrency)
	assert.Equal(t, "levelup.db", filepath.Base(cfg.DBPath))
	assert.False(t, cfg.LLM.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
db_path: /tmp/levelup-test.db
user: hunter
log_level: debug
feed_poll_interval: 500ms
insight_concurrency: 2
llm:
  enabled: true
  provider: gemini
  api_key: file-key
  timeout_ms: 4000
  max_retries: 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/levelup-test.db", cfg.DBPath)
	assert.Equal(t, "hunter", cfg.ResolveUser())
	assert.Equal(t, 500*time.Millisecond, cfg.FeedPollInterval)
	assert.Equal(t, 2, cfg.InsightConcurrency)

	lvl, err := cfg.ZapLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	settings := cfg.LLMSettings()
	assert.True(t, settings.Enabled)
	assert.Equal(t, llm.ProviderGemini, settings.Provider)
	assert.Equal(t, "gemini-2.0-flash", settings.Model)
	assert.Equal(t, "file-key", settings.APIKey)
	assert.Equal(t, 4000, settings.TimeoutMs)
	assert.Equal(t, 0, settings.MaxRetries)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := writeConfig(t, "user: from-file\ndb_path: /tmp/a.db\n")
	t.Setenv("LEVELUP_USER", "from-env")
	t.Setenv("LEVELUP_DB", "/tmp/b.db")
	t.Setenv("LEVELUP_LOG_LEVEL", "error")
	t.Setenv("LEVELUP_FEED_POLL_INTERVAL", "250ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.User)
	assert.Equal(t, "/tmp/b.db", cfg.DBPath)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.FeedPollInterval)
}

func TestLoad_LLMEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "llm:\n  enabled: false\n  model: llama3.1\n")
	t.Setenv("LEVELUP_LLM_ENABLED", "true")
	t.Setenv("LEVELUP_LLM_MODEL", "qwen2.5")

	cfg, err := Load(path)
	require.NoError(t, err)
	settings := cfg.LLMSettings()
	assert.True(t, settings.Enabled)
	assert.Equal(t, "qwen2.5", settings.Model)
	assert.Equal(t, llm.ProviderOllama, settings.Provider)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":        "db_path: [unclosed",
		"bad level":       "log_level: loud",
		"bad provider":    "llm:\n  provider: carrier-pigeon",
		"bad concurrency": "insight_concurrency: -1",
		"bad duration":    "feed_poll_interval: soon",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestResolveUser_FallsBackToOSUser(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.ResolveUser())
}
