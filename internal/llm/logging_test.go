package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/store"
)

// memRepo keeps appended events in memory.
type memRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.ProviderEventData
}

func (m *memRepo) AppendProviderEvent(_ context.Context, e store.ProviderEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &memRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(validCluster),
		Usage:   Usage{InputTokens: 12, OutputTokens: 34},
	})
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithPurpose(context.Background(), PurposeQuestionSet)
	req := UserPrompt("sys", "write a cluster")
	req.Schema = clusterSchema()
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Kind != store.KindLLM || e.Purpose != PurposeQuestionSet || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 34 {
		t.Errorf("tokens = %d/%d, want 12/34", e.InputTokens, e.OutputTokens)
	}
	if !strings.Contains(e.RequestBody, "[schema: test-cluster]") {
		t.Errorf("request body missing schema: %q", e.RequestBody)
	}
}

func TestLogging_RecordsInvalidContent(t *testing.T) {
	repo := &memRepo{}
	core, logs := observer.New(zapcore.DebugLevel)
	mock := NewMockProvider(MockResponse{
		Err: &ErrInvalidResponse{Content: json.RawMessage(`{"nope":1}`), Err: errors.New("schema")},
	})
	p := WithLogging(mock, "mock", repo, logger.NewWithCore(core))

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	e := repo.events[0]
	if e.Success || e.ResponseBody != `{"nope":1}` || e.ErrorMessage == "" {
		t.Errorf("event = %+v", e)
	}
	if e.Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", e.Purpose)
	}
	if logs.FilterMessage("generate failed").Len() != 1 {
		t.Errorf("expected a warning, got %v", logs.All())
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"hi"`)})
	p := WithLogging(mock, "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}
