package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation being performed.
type TaskType string

const (
	TaskInsight TaskType = "insight"
	TaskQuests  TaskType = "quests"
)

// Provider names a text-generation backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the generation subsystem.
type LLMConfig struct {
	Enabled    bool
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with generation disabled.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  10000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskInsight: {Temperature: 0.7, MaxTokens: 256, TimeoutMs: 8000},
			TaskQuests:  {Temperature: 0.8, MaxTokens: 1024, TimeoutMs: 15000},
		},
	}
}

// DefaultModel returns the model used for a provider when none is configured.
func DefaultModel(p Provider) string {
	if p == ProviderGemini {
		return "gemini-2.0-flash"
	}
	return "llama3.2"
}

// ApplyEnv overlays LEVELUP_LLM_* environment variables onto cfg. Invalid
// values are ignored.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("LEVELUP_LLM_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := os.Getenv("LEVELUP_LLM_PROVIDER"); v != "" {
		switch Provider(v) {
		case ProviderOllama, ProviderGemini:
			if cfg.Provider != Provider(v) && os.Getenv("LEVELUP_LLM_MODEL") == "" {
				cfg.Model = DefaultModel(Provider(v))
			}
			cfg.Provider = Provider(v)
		}
	}
	if v := os.Getenv("LEVELUP_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("LEVELUP_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("LEVELUP_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("LEVELUP_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("LEVELUP_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(cfg, TaskInsight, "LEVELUP_LLM_INSIGHT_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskQuests, "LEVELUP_LLM_QUESTS_TIMEOUT_MS")
}

// LoadConfig returns the defaults with environment overrides applied.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = map[TaskType]TaskConfig{}
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
