package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/tkha/tierquiz/internal/config"
	"github.com/tkha/tierquiz/internal/llm"
	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/store"
)

// New builds the configured synthesizer chain. API keys come from keys,
// the same environment-derived credentials the question generator uses.
// Provider "none" returns a nil Synthesizer. An unusable fallback is logged
// and skipped; an unusable primary is an error.
func New(ctx context.Context, cfg config.SpeechConfig, keys llm.Config, repo store.EventRepo, log *logger.Logger) (Synthesizer, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Provider == "" || cfg.Provider == "none" {
		return nil, nil
	}

	primary, err := build(ctx, cfg.Provider, cfg, keys, repo, log)
	if err != nil {
		return nil, err
	}
	if cfg.Fallback == "" || cfg.Fallback == "none" || cfg.Fallback == cfg.Provider {
		return primary, nil
	}

	secondary, err := build(ctx, cfg.Fallback, cfg, keys, repo, log)
	if err != nil {
		log.Warn("speech fallback unavailable", "fallback", cfg.Fallback, "error", err)
		return primary, nil
	}
	return WithFallback(primary, secondary, log), nil
}

func build(ctx context.Context, name string, cfg config.SpeechConfig, keys llm.Config, repo store.EventRepo, log *logger.Logger) (Synthesizer, error) {
	switch name {
	case "gemini":
		if keys.Gemini.APIKey == "" {
			return nil, fmt.Errorf("TIERQUIZ_GEMINI_API_KEY is required for gemini speech")
		}
		client, err := llm.NewGeminiClient(ctx, keys.Gemini.APIKey)
		if err != nil {
			return nil, err
		}
		s := NewGeminiSynthesizer(client, cfg.GeminiModel, cfg.GeminiVoice)
		return WithLogging(s, name, cfg.GeminiModel, repo, log), nil

	case "openai":
		if keys.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("TIERQUIZ_OPENAI_API_KEY is required for openai speech")
		}
		s := NewOpenAISynthesizer(keys.OpenAI.APIKey, keys.OpenAI.BaseURL, cfg.OpenAIModel, cfg.OpenAIVoice)
		return WithLogging(s, name, cfg.OpenAIModel, repo, log), nil

	case "mock":
		rate := cfg.SampleRate
		if rate <= 0 {
			rate = DefaultSampleRate
		}
		return &MockSynthesizer{Default: Silence(rate, 300*time.Millisecond)}, nil
	}
	return nil, fmt.Errorf("unknown speech provider: %q", name)
}
