package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedaction(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.Info("unlock",
		"subject", "physics",
		"key", "TKHA-2026-VIP",
		"api_key", "sk-123",
		"access_key", "abc",
		"session_token", "tok",
		"input_tokens", 42,
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["input_tokens"] != int64(42) {
		t.Errorf("input_tokens = %v, want 42", fields["input_tokens"])
	}
	if fields["subject"] != "physics" {
		t.Errorf("subject = %v, want physics", fields["subject"])
	}
	for _, k := range []string{"key", "api_key", "access_key", "session_token"} {
		if fields[k] != redacted {
			t.Errorf("%s = %v, want redacted", k, fields[k])
		}
	}
}

func TestWith_Redacts(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core).With("license", "VIP", "component", "gate")
	log.Warn("rejected")

	fields := logs.All()[0].ContextMap()
	if fields["license"] != redacted {
		t.Errorf("license = %v, want redacted", fields["license"])
	}
	if fields["component"] != "gate" {
		t.Errorf("component = %v, want gate", fields["component"])
	}
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	got := sanitizeKVs([]any{"a", 1, "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Errorf("sanitizeKVs = %v", got)
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Error("ignored", "err", "boom")
	log.Sync()
}
