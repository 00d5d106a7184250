package llm

import (
	"context"
	"fmt"

	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → logging → base, so every attempt is recorded.
// repo may be nil to skip event recording.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, repo, log)
	return WithRetry(logged, cfg.Retry, log), nil
}
