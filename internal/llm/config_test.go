package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_DisabledOllama(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, 8000, cfg.TaskTimeout(TaskInsight))
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskQuests))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LEVELUP_LLM_ENABLED", "true")
	t.Setenv("LEVELUP_LLM_TIMEOUT_MS", "9000")
	t.Setenv("LEVELUP_LLM_INSIGHT_TIMEOUT_MS", "3000")
	t.Setenv("LEVELUP_LLM_MAX_RETRIES", "2")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 3000, cfg.TaskTimeout(TaskInsight))
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskQuests))
	assert.Equal(t, 2, cfg.MaxRetries)
}

func TestLoadConfig_GeminiProviderSwitchesDefaultModel(t *testing.T) {
	t.Setenv("LEVELUP_LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "k1")

	cfg := LoadConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, "k1", cfg.APIKey)
}

func TestLoadConfig_ExplicitModelWins(t *testing.T) {
	t.Setenv("LEVELUP_LLM_PROVIDER", "gemini")
	t.Setenv("LEVELUP_LLM_MODEL", "gemini-2.5-pro")

	assert.Equal(t, "gemini-2.5-pro", LoadConfig().Model)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("LEVELUP_LLM_PROVIDER", "carrier-pigeon")
	t.Setenv("LEVELUP_LLM_INSIGHT_TIMEOUT_MS", "not-a-number")
	t.Setenv("LEVELUP_LLM_MAX_RETRIES", "-1")

	cfg := LoadConfig()

	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, 8000, cfg.TaskTimeout(TaskInsight))
	assert.Equal(t, 1, cfg.MaxRetries)
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tasks = nil
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskQuests))
}
