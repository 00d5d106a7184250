package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tkha/tierquiz/internal/llm"
)

// OpenAISynthesizer uses the OpenAI speech endpoint in PCM mode.
type OpenAISynthesizer struct {
	client *openai.Client
	model  string
	voice  string
}

// NewOpenAISynthesizer creates a synthesizer. baseURL may be empty.
func NewOpenAISynthesizer(apiKey, baseURL, model, voice string) *OpenAISynthesizer {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAISynthesizer{client: openai.NewClientWithConfig(config), model: model, voice: voice}
}

func (o *OpenAISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.model),
		Input:          text,
		Voice:          openai.SpeechVoice(o.voice),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("openai tts: %w", &llm.ErrRateLimit{Err: err})
		}
		return nil, fmt.Errorf("openai tts: %w", &llm.ErrProviderUnavailable{Err: err})
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read openai audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrNoAudio
	}
	return audio, nil
}

// Model returns the TTS model id.
func (o *OpenAISynthesizer) Model() string { return o.model }
