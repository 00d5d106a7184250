// Package llm is the transport to generative text models. The question-set
// generator is its only consumer; everything above this package sees a
// single Provider regardless of vendor.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured JSON from a prompt.
type Provider interface {
	// Generate sends the request and returns the model output. When
	// req.Schema is set the provider uses its native structured output
	// mode and Content is validated against the schema before returning.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, constrains the response to JSON of this shape.
	// When nil, Content is the raw model text.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	// Question sets use 1.0 so repeated topics produce fresh items.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt is a convenience for the common single-turn request.
func UserPrompt(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}

// Schema is a JSON Schema the response must satisfy.
type Schema struct {
	// Name identifies the schema to the provider and keys the compiled
	// schema cache, e.g. "question-set".
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
