package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the question-set generation backend.
type Config struct {
	// Provider is one of "gemini", "openai", "anthropic", "openrouter", "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single generation including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the Gemini-backed defaults. A full question set is
// a large structured response, so the timeout is generous.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// ConfigFromEnv overlays TIERQUIZ_* variables on the defaults. The plain
// vendor key variables (GEMINI_API_KEY and friends) fill keys left unset.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "TIERQUIZ_LLM_PROVIDER")

	setFromEnv(&cfg.Anthropic.APIKey, "TIERQUIZ_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "TIERQUIZ_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "TIERQUIZ_OPENAI_API_KEY", "OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "TIERQUIZ_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "TIERQUIZ_OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "TIERQUIZ_GEMINI_API_KEY", "GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "TIERQUIZ_GEMINI_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "TIERQUIZ_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "TIERQUIZ_OPENROUTER_MODEL")

	if d, err := time.ParseDuration(os.Getenv("TIERQUIZ_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// setFromEnv assigns the first non-empty variable among names.
func setFromEnv(dst *string, names ...string) {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			*dst = v
			return
		}
	}
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("TIERQUIZ_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("TIERQUIZ_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("TIERQUIZ_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("TIERQUIZ_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
