package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkha/tierquiz/internal/access"
	"github.com/tkha/tierquiz/internal/config"
	"github.com/tkha/tierquiz/internal/store"
)

const vipKey = "TKHA-2026-VIP"

func TestApplyKey(t *testing.T) {
	cfg := config.Default()
	gate := access.NewGate(cfg)

	_, err := applyKey(gate, cfg, "nope")
	assert.ErrorIs(t, err, access.ErrInvalidKey)

	ids, err := applyKey(gate, cfg, "  tkha-2026-vip ")
	require.NoError(t, err)
	assert.Len(t, ids, len(cfg.Subjects))
	assert.Len(t, gate.Unlocked(), len(cfg.Subjects))

	// Nothing left to unlock.
	_, err = applyKey(gate, cfg, vipKey)
	assert.ErrorIs(t, err, access.ErrInvalidKey)
}

func TestPrintSubjects(t *testing.T) {
	cfg := config.Default()
	gate := access.NewGate(cfg)
	_, err := gate.Unlock(vipKey, "physics")
	require.NoError(t, err)

	var out bytes.Buffer
	printSubjects(&out, cfg, gate)
	assert.Contains(t, out.String(), "Physics")
	assert.Contains(t, out.String(), "open")
	assert.NotContains(t, out.String(), "locked")
}

func TestPrintStats(t *testing.T) {
	var out bytes.Buffer
	printStats(&out, nil, nil)
	assert.Contains(t, out.String(), "No provider usage")

	out.Reset()
	printStats(&out,
		[]store.PurposeUsage{
			{Purpose: "question-set", Calls: 2, Failures: 1, InputTokens: 1000, OutputTokens: 9000},
			{Purpose: "narration", Calls: 1, AudioBytes: 48000},
		},
		[]store.ModelUsage{
			{Model: "gemini-2.5-flash", Calls: 2, InputTokens: 1000, OutputTokens: 9000},
			{Model: "local-model", Calls: 1},
		})
	s := out.String()
	assert.Contains(t, s, "48000")
	assert.Contains(t, s, "TOTAL (partial)")
	assert.Contains(t, s, "Pricing unavailable for: local-model")
	assert.Contains(t, s, "$0.0228")
}

func TestPrintEvent_Speech(t *testing.T) {
	var out bytes.Buffer
	printEvent(&out, &store.ProviderEvent{
		ID:        7,
		Timestamp: time.Now(),
		ProviderEventData: store.ProviderEventData{
			Kind: store.KindSpeech, Provider: "openai", Model: "tts", Purpose: "narration",
			AudioBytes: 1200, Success: true,
		},
	})
	s := out.String()
	assert.Contains(t, s, "Audio:     1200 bytes")
	assert.NotContains(t, s, "Tokens:")
	assert.Contains(t, s, "(not captured)")
}

func TestResolveVersion(t *testing.T) {
	assert.Equal(t, "v1.2.0", resolveVersion("1.2"))
	assert.Equal(t, "v0.3.1", resolveVersion("v0.3.1"))
	assert.Equal(t, "v1.0.0-rc.1", resolveVersion("v1.0.0-rc.1+abc"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "ñé", truncate("ñéx", 2))
}
