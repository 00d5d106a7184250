package speech

import (
	"context"

	"github.com/tkha/tierquiz/internal/logger"
)

// Fallback tries Primary and, when it fails or returns no audio, Secondary.
type Fallback struct {
	Primary   Synthesizer
	Secondary Synthesizer
	log       *logger.Logger
}

// WithFallback chains two synthesizers. A nil secondary returns primary
// unchanged.
func WithFallback(primary, secondary Synthesizer, log *logger.Logger) Synthesizer {
	if secondary == nil {
		return primary
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Fallback{Primary: primary, Secondary: secondary, log: log.With("component", "speech")}
}

func (f *Fallback) Synthesize(ctx context.Context, text string) ([]byte, error) {
	audio, err := f.Primary.Synthesize(ctx, text)
	if err == nil && len(audio) > 0 {
		return audio, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err == nil {
		err = ErrNoAudio
	}
	f.log.Warn("primary synthesizer failed, using fallback", "error", err)
	return f.Secondary.Synthesize(ctx, text)
}
