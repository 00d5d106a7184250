package store

import (
	"context"
	"time"
)

// Event kinds.
const (
	KindLLM    = "llm"
	KindSpeech = "speech"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Before  int64     // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Kind    string    // exact match when set
	Purpose string    // exact match when set
}

// ProviderEventData captures a single call to an LLM or speech provider.
type ProviderEventData struct {
	Kind         string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	AudioBytes   int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// ProviderEvent is a stored ProviderEventData.
type ProviderEvent struct {
	ID        int64
	Timestamp time.Time
	ProviderEventData
}

// PurposeUsage aggregates calls for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AudioBytes   int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo appends and queries provider events.
type EventRepo interface {
	// AppendProviderEvent records a provider call.
	AppendProviderEvent(ctx context.Context, data ProviderEventData) error

	// QueryProviderEvents returns events newest first.
	QueryProviderEvents(ctx context.Context, opts QueryOpts) ([]ProviderEvent, error)

	// GetProviderEvent returns one event, or nil if it does not exist.
	GetProviderEvent(ctx context.Context, id int64) (*ProviderEvent, error)

	// UsageByPurpose aggregates all events grouped by purpose.
	UsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// UsageByModel aggregates LLM token usage grouped by model.
	UsageByModel(ctx context.Context) ([]ModelUsage, error)
}
