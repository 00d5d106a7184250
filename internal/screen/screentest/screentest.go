// Package screentest builds screen dependencies and key messages for
// screen tests.
package screentest

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/tkha/tierquiz/internal/access"
	"github.com/tkha/tierquiz/internal/config"
	"github.com/tkha/tierquiz/internal/engine"
	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/narration"
	"github.com/tkha/tierquiz/internal/questionset"
	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/quiz/quiztest"
	"github.com/tkha/tierquiz/internal/screen"
)

// ProviderFunc adapts a function to questionset.Provider.
type ProviderFunc func(ctx context.Context, subject, topic string) (*quiz.QuestionSet, error)

func (f ProviderFunc) Fetch(ctx context.Context, subject, topic string) (*quiz.QuestionSet, error) {
	return f(ctx, subject, topic)
}

// FixtureProvider returns quiztest.Set for every request.
var FixtureProvider = ProviderFunc(func(_ context.Context, subject, topic string) (*quiz.QuestionSet, error) {
	return quiztest.Set(subject, topic), nil
})

// Deps returns services backed by the embedded config with every subject
// locked, a silent narration channel and p as the content provider. A nil
// p uses FixtureProvider.
func Deps(p questionset.Provider) *screen.Deps {
	if p == nil {
		p = FixtureProvider
	}
	cfg := config.Default()
	gate := access.NewGate(cfg)
	log := logger.NewNop()
	return &screen.Deps{
		Config:     cfg,
		Controller: engine.NewController(gate, log),
		Loader:     questionset.NewLoader(p, 0, log),
		Gate:       gate,
		Narration:  narration.New(nil, nil, narration.Options{}, log),
		Log:        log,
	}
}

// Loaded returns Deps with subject unlocked and its fixture set loaded.
func Loaded(subject, topic string) *screen.Deps {
	d := Deps(nil)
	if _, err := d.Gate.Unlock(VIPKey, subject); err != nil {
		panic(err)
	}
	if err := d.Controller.LoadTopic(quiztest.Set(subject, topic)); err != nil {
		panic(err)
	}
	return d
}

// VIPKey unlocks every subject in the embedded config.
const VIPKey = "TKHA-2026-VIP"

// Key is a printable key press.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special is a non-printable key press such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Ctrl is code pressed with the control modifier.
func Ctrl(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: tea.ModCtrl}
}

// Type sends each rune of s to update.
func Type(s string, update func(tea.Msg)) {
	for _, r := range s {
		update(Key(r))
	}
}

// Drain runs cmd and returns every message it produces, flattening
// batches. Nil commands yield nothing.
func Drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
