package speech

import (
	"context"
	"time"

	"github.com/tkha/tierquiz/internal/llm"
	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/store"
)

// LoggingSynthesizer records every synthesis as a speech provider event.
type LoggingSynthesizer struct {
	inner    Synthesizer
	provider string
	model    string
	repo     store.EventRepo
	log      *logger.Logger
}

// WithLogging wraps s. repo may be nil.
func WithLogging(s Synthesizer, provider, model string, repo store.EventRepo, log *logger.Logger) Synthesizer {
	if log == nil {
		log = logger.NewNop()
	}
	return &LoggingSynthesizer{
		inner: s, provider: provider, model: model, repo: repo,
		log: log.With("component", "speech", "provider", provider),
	}
}

func (l *LoggingSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	start := time.Now()
	audio, err := l.inner.Synthesize(ctx, text)

	data := store.ProviderEventData{
		Kind:        store.KindSpeech,
		Provider:    l.provider,
		Model:       l.model,
		Purpose:     llm.PurposeFrom(ctx),
		AudioBytes:  len(audio),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: text,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("synthesize failed", "latency_ms", data.LatencyMs, "error", err)
	} else {
		l.log.Debug("synthesize", "latency_ms", data.LatencyMs, "audio_bytes", data.AudioBytes)
	}

	if l.repo != nil {
		if logErr := l.repo.AppendProviderEvent(context.WithoutCancel(ctx), data); logErr != nil {
			l.log.Error("record speech event", "error", logErr)
		}
	}
	return audio, err
}
