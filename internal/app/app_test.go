package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/tkha/tierquiz/internal/narration"
	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/router"
	"github.com/tkha/tierquiz/internal/screen/screentest"
	"github.com/tkha/tierquiz/internal/speech"
)

type nopPlayer struct{}

func (nopPlayer) Play(context.Context, []byte) error { return nil }

func TestEscPopsPlainScreens(t *testing.T) {
	m := New(*screentest.Deps(nil))
	m.router.Push(&plainScreen{})

	_, cmd := m.Update(screentest.Special(tea.KeyEscape))
	msgs := screentest.Drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if _, ok := msgs[0].(router.PopScreenMsg); !ok {
		t.Errorf("got %T, want PopScreenMsg", msgs[0])
	}
}

func TestEscAtRootIsNoop(t *testing.T) {
	m := New(*screentest.Deps(nil))
	if _, cmd := m.Update(screentest.Special(tea.KeyEscape)); cmd != nil {
		t.Error("Esc on the root screen should do nothing")
	}
}

func TestEscDeliveredToCapturingScreen(t *testing.T) {
	m := New(*screentest.Deps(nil))
	s := &capturingScreen{}
	m.router.Push(s)

	_, cmd := m.Update(screentest.Special(tea.KeyEscape))
	if cmd != nil {
		t.Error("captured Esc should not pop")
	}
	if s.escapes != 1 {
		t.Errorf("screen saw %d escapes, want 1", s.escapes)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := New(*screentest.Deps(nil))
	_, cmd := m.Update(screentest.Ctrl('c'))
	msgs := screentest.Drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if _, ok := msgs[0].(tea.QuitMsg); !ok {
		t.Errorf("got %T, want QuitMsg", msgs[0])
	}
}

func TestStatusShowsSubjectAndScore(t *testing.T) {
	deps := screentest.Loaded("math", "Fractions")
	m := New(*deps)
	if got := m.status(); !strings.Contains(got, "Mathematics") {
		t.Errorf("status = %q", got)
	}
	if err := m.deps.Controller.EnterTier(quiz.TierMultipleChoice); err != nil {
		t.Fatal(err)
	}
	if got := m.status(); !strings.Contains(got, "0/12") {
		t.Errorf("status = %q, want score", got)
	}
}

func TestQuestionActivationIsNarrated(t *testing.T) {
	deps := screentest.Loaded("math", "Fractions")
	synth := &speech.MockSynthesizer{Default: []byte{0, 0}}
	deps.Narration = narration.New(synth, nopPlayer{}, narration.Options{NarrateOnQuestion: true}, nil)
	m := New(*deps)

	if err := m.deps.Controller.EnterTier(quiz.TierMultipleChoice); err != nil {
		t.Fatal(err)
	}
	deps.Narration.Wait()

	calls := synth.Calls()
	if len(calls) != 1 || calls[0] != "What is item 1?" {
		t.Errorf("synthesized %q", calls)
	}
}

func TestViewRendersFrame(t *testing.T) {
	m := New(*screentest.Deps(nil))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	v := updated.(AppModel).View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}
