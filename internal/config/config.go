package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/levelup/internal/llm"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	dirName         = ".levelup"
	defaultLogLevel = "warn"
	fallbackUser    = "default"
)

type Config struct {
	DBPath             string        `yaml:"db_path"`
	User               string        `yaml:"user"`
	LogLevel           string        `yaml:"log_level"`
	FeedPollInterval   time.Duration `yaml:"feed_poll_interval"`
	InsightConcurrency int           `yaml:"insight_concurrency"`
	LLM                LLMConfig     `yaml:"llm"`
}

// LLMConfig is the file form of the generator settings. Zero values leave
// the llm package defaults in place.
type LLMConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Provider   string `yaml:"provider"`
	Endpoint   string `yaml:"endpoint"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	MaxRetries *int   `yaml:"max_retries"`
}

// Dir returns ~/.levelup.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath returns the config file location, ~/.levelup/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	dbPath := "levelup.db"
	if dir, err := Dir(); err == nil {
		dbPath = filepath.Join(dir, "levelup.db")
	}
	return &Config{
		DBPath:             dbPath,
		LogLevel:           defaultLogLevel,
		FeedPollInterval:   2 * time.Second,
		InsightConcurrency: 4,
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LEVELUP_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("LEVELUP_USER"); v != "" {
		c.User = v
	}
	if v := os.Getenv("LEVELUP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LEVELUP_FEED_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.FeedPollInterval = d
		}
	}
	if v := os.Getenv("LEVELUP_INSIGHT_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.InsightConcurrency = n
		}
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config: db_path must not be empty")
	}
	if _, err := c.ZapLevel(); err != nil {
		return err
	}
	if c.FeedPollInterval < 0 {
		return fmt.Errorf("config: feed_poll_interval must not be negative")
	}
	if c.InsightConcurrency <= 0 {
		return fmt.Errorf("config: insight_concurrency must be positive, got %d", c.InsightConcurrency)
	}
	switch llm.Provider(c.LLM.Provider) {
	case "", llm.ProviderOllama, llm.ProviderGemini:
	default:
		return fmt.Errorf("config: unknown llm provider %q", c.LLM.Provider)
	}
	return nil
}

// ZapLevel parses LogLevel.
func (c *Config) ZapLevel() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.WarnLevel, fmt.Errorf("config: log_level: %w", err)
	}
	return lvl, nil
}

// ResolveUser picks the acting user: the configured value, then the OS
// account name, then a fixed fallback.
func (c *Config) ResolveUser() string {
	if u := strings.TrimSpace(c.User); u != "" {
		return u
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return fallbackUser
}

// LLMSettings merges the file section over the llm defaults, then applies
// LEVELUP_LLM_* and GEMINI_API_KEY.
func (c *Config) LLMSettings() llm.LLMConfig {
	out := llm.DefaultConfig()
	f := c.LLM

	out.Enabled = f.Enabled
	if f.Provider != "" {
		out.Provider = llm.Provider(f.Provider)
		out.Model = llm.DefaultModel(out.Provider)
	}
	if f.Endpoint != "" {
		out.Endpoint = f.Endpoint
	}
	if f.Model != "" {
		out.Model = f.Model
	}
	if f.APIKey != "" {
		out.APIKey = f.APIKey
	}
	if f.TimeoutMs > 0 {
		out.TimeoutMs = f.TimeoutMs
	}
	if f.MaxRetries != nil && *f.MaxRetries >= 0 {
		out.MaxRetries = *f.MaxRetries
	}

	llm.ApplyEnv(&out)
	return out
}
