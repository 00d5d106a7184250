package speech

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/tkha/tierquiz/internal/llm"
)

// GeminiSynthesizer uses a Gemini TTS model with a prebuilt voice.
type GeminiSynthesizer struct {
	client *genai.Client
	model  string
	voice  string
}

// NewGeminiSynthesizer creates a synthesizer on an existing client.
func NewGeminiSynthesizer(client *genai.Client, model, voice string) *GeminiSynthesizer {
	return &GeminiSynthesizer{client: client, model: model, voice: voice}
}

func (g *GeminiSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voice},
			},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), config)
	if err != nil {
		return nil, fmt.Errorf("gemini tts: %w", llm.MapGeminiError(err))
	}

	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, ErrNoAudio
}

// Model returns the TTS model id.
func (g *GeminiSynthesizer) Model() string { return g.model }
