package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of generation being performed.
type TaskType string

const (
	TaskTopics     TaskType = "topics"
	TaskAgendaText TaskType = "agenda_text"
)

// Provider selects the generative-text backend.
type Provider string

const (
	ProviderREST  Provider = "rest"
	ProviderGenAI Provider = "genai"
)

// TaskConfig holds per-task sampling parameters.
type TaskConfig struct {
	Temperature float64
	TopK        float64
	TopP        float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the generative-text subsystem.
type LLMConfig struct {
	Provider  Provider
	LogCalls  bool
	Endpoint  string
	Model     string
	APIKey    string
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults. Without an
// APIKey every call fails fast with ErrNoCredential.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:  ProviderREST,
		LogCalls:  false,
		Endpoint:  "https://generativelanguage.googleapis.com/v1beta",
		Model:     "gemini-2.0-flash",
		TimeoutMs: 20000,
		Tasks: map[TaskType]TaskConfig{
			TaskTopics:     {Temperature: 0.7, TopK: 40, TopP: 0.95, MaxTokens: 2048, TimeoutMs: 20000},
			TaskAgendaText: {Temperature: 0.7, TopK: 40, TopP: 0.95, MaxTokens: 1024, TimeoutMs: 15000},
		},
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("COUNSEL_GEMINI_API_KEY"); v != "" {
		cfg.APIKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("COUNSEL_LLM_PROVIDER"); v != "" {
		cfg.Provider = ParseProvider(v)
	}
	if v := os.Getenv("COUNSEL_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("COUNSEL_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("COUNSEL_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("COUNSEL_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskTopics, "COUNSEL_LLM_TOPICS_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskAgendaText, "COUNSEL_LLM_AGENDA_TEXT_TIMEOUT_MS")

	return cfg
}

// ParseProvider maps unknown names to the REST backend.
func ParseProvider(s string) Provider {
	if Provider(strings.ToLower(strings.TrimSpace(s))) == ProviderGenAI {
		return ProviderGenAI
	}
	return ProviderREST
}

// HasCredential reports whether an API key is configured.
func (c LLMConfig) HasCredential() bool {
	return c.APIKey != ""
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
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
