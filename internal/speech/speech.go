// Package speech turns question text into audio. Every Synthesizer returns
// raw 16-bit little-endian mono PCM; the player adds any container.
package speech

import (
	"context"
	"errors"
	"time"
)

// DefaultSampleRate is the PCM rate both Gemini and OpenAI produce.
const DefaultSampleRate = 24000

// ErrNoAudio is returned when a backend answers without audio data.
var ErrNoAudio = errors.New("speech: response contained no audio")

// Synthesizer renders text as PCM audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Silence returns d of silent PCM at sampleRate.
func Silence(sampleRate int, d time.Duration) []byte {
	samples := int(int64(sampleRate) * int64(d) / int64(time.Second))
	return make([]byte, samples*2)
}
