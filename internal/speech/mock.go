package speech

import (
	"context"
	"errors"
	"sync"
)

// MockAudio is a canned MockSynthesizer result.
type MockAudio struct {
	Audio []byte
	Err   error

	// Block, when non-nil, holds the call until closed or ctx ends.
	Block <-chan struct{}
}

// MockSynthesizer returns canned results in FIFO order and records the
// text of every call.
type MockSynthesizer struct {
	mu        sync.Mutex
	responses []MockAudio
	calls     []string

	// Default is returned once the queue is empty. When nil an empty queue
	// is an error.
	Default []byte
}

// NewMockSynthesizer creates a mock with the given queue.
func NewMockSynthesizer(responses ...MockAudio) *MockSynthesizer {
	return &MockSynthesizer{responses: responses}
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	if len(m.responses) == 0 {
		def := m.Default
		m.mu.Unlock()
		if def == nil {
			return nil, errors.New("mock synthesizer: no response queued")
		}
		return def, nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	m.mu.Unlock()

	if resp.Block != nil {
		select {
		case <-resp.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resp.Audio, resp.Err
}

// Add queues another result.
func (m *MockSynthesizer) Add(resp MockAudio) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Calls returns the texts synthesized so far.
func (m *MockSynthesizer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
