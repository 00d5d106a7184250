package play

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/tkha/tierquiz/internal/engine"
	"github.com/tkha/tierquiz/internal/narration"
	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/router"
	"github.com/tkha/tierquiz/internal/screen"
	"github.com/tkha/tierquiz/internal/screen/screentest"
	"github.com/tkha/tierquiz/internal/screens/result"
	"github.com/tkha/tierquiz/internal/speech"
)

func startTier(t *testing.T, tier quiz.Tier) (*PlayScreen, *screen.Deps) {
	t.Helper()
	deps := screentest.Loaded("math", "Fractions")
	if err := deps.Controller.EnterTier(tier); err != nil {
		t.Fatalf("EnterTier: %v", err)
	}
	s := New(deps)
	s.Init()
	return s, deps
}

func press(s *PlayScreen, msg tea.Msg) tea.Cmd {
	_, cmd := s.Update(msg)
	return cmd
}

func TestMCQ_LetterSubmitsAndShowsFeedback(t *testing.T) {
	s, deps := startTier(t, quiz.TierMultipleChoice)

	press(s, screentest.Key('a'))

	if s.feedback == nil {
		t.Fatal("expected feedback after answering")
	}
	if !s.feedback.Correct || s.feedback.CorrectChoiceID != "a" {
		t.Errorf("feedback = %+v", s.feedback)
	}
	if got := deps.Controller.State().Score; got != 1 {
		t.Errorf("score = %d, want 1", got)
	}
	if !strings.Contains(s.View(100, 30), "Correct!") {
		t.Error("view should show the verdict")
	}
}

func TestMCQ_KeysIgnoredDuringFeedback(t *testing.T) {
	s, deps := startTier(t, quiz.TierMultipleChoice)
	press(s, screentest.Key('b'))
	press(s, screentest.Key('a'))

	if st := deps.Controller.State(); st.Position != 1 || st.Score != 0 {
		t.Errorf("state = %+v, want position 1 score 0", st)
	}
}

func TestMCQ_EnterAdvancesToNextItem(t *testing.T) {
	s, _ := startTier(t, quiz.TierMultipleChoice)
	press(s, screentest.Key('a'))
	press(s, screentest.Special(tea.KeyEnter))

	if s.feedback != nil {
		t.Error("feedback should be dismissed")
	}
	if s.question.Position != 1 {
		t.Errorf("position = %d, want 1", s.question.Position)
	}
}

func TestMCQ_LastItemLeadsToResult(t *testing.T) {
	s, _ := startTier(t, quiz.TierMultipleChoice)

	var cmd tea.Cmd
	for i := range quiz.MCQCount {
		press(s, screentest.Key('a'))
		if i < quiz.MCQCount-1 {
			press(s, screentest.Special(tea.KeyEnter))
		}
	}
	if !s.feedback.TierComplete {
		t.Fatal("expected the tier to be complete")
	}
	cmd = press(s, screentest.Special(tea.KeyEnter))

	msgs := screentest.Drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages", len(msgs))
	}
	rep, ok := msgs[0].(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want ReplaceScreenMsg", msgs[0])
	}
	if _, ok := rep.Screen.(*result.ResultScreen); !ok {
		t.Errorf("replacement is %T", rep.Screen)
	}
}

func TestJudgment_TogglesSubmitPartialCredit(t *testing.T) {
	s, deps := startTier(t, quiz.TierJudgment)

	// Mark every statement true; the fixture alternates true and false.
	for _, r := range "abcd" {
		press(s, screentest.Key(r))
	}
	press(s, screentest.Special(tea.KeyEnter))

	if s.feedback == nil {
		t.Fatal("expected feedback")
	}
	if s.feedback.Points != 2 || s.feedback.Correct {
		t.Errorf("points = %d correct = %v, want 2 false", s.feedback.Points, s.feedback.Correct)
	}
	if got := deps.Controller.State().Score; got != 2 {
		t.Errorf("score = %d, want 2", got)
	}
}

func TestJudgment_EnterWithoutAllVerdictsDoesNothing(t *testing.T) {
	s, deps := startTier(t, quiz.TierJudgment)
	press(s, screentest.Key('a'))
	press(s, screentest.Special(tea.KeyEnter))

	if s.feedback != nil || deps.Controller.State().Position != 0 {
		t.Error("incomplete verdicts must not be submitted")
	}
}

func TestShortAnswer_TypedAnswerIsScored(t *testing.T) {
	s, deps := startTier(t, quiz.TierShortAnswer)

	screentest.Type("0.5", func(m tea.Msg) { press(s, m) })
	press(s, screentest.Special(tea.KeyEnter))

	if s.feedback == nil || !s.feedback.Correct {
		t.Fatalf("feedback = %+v, want correct", s.feedback)
	}
	if deps.Controller.State().Score != 1 {
		t.Error("score not recorded")
	}
}

func TestShortAnswer_EmptyEnterIgnored(t *testing.T) {
	s, _ := startTier(t, quiz.TierShortAnswer)
	press(s, screentest.Special(tea.KeyEnter))
	if s.feedback != nil {
		t.Error("empty answer should not be submitted")
	}
}

func TestEscape_ConfirmThenAbandon(t *testing.T) {
	s, deps := startTier(t, quiz.TierMultipleChoice)
	if !s.CapturesEscape() {
		t.Fatal("play screen must capture Esc")
	}

	press(s, screentest.Special(tea.KeyEscape))
	if !s.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	press(s, screentest.Key('n'))
	if s.confirmQuit {
		t.Fatal("N should keep going")
	}

	press(s, screentest.Special(tea.KeyEscape))
	cmd := press(s, screentest.Key('y'))

	if deps.Controller.State().Phase != engine.PhaseTierSelect {
		t.Errorf("phase = %s, want tier-select", deps.Controller.State().Phase)
	}
	msgs := screentest.Drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if _, ok := msgs[0].(router.PopScreenMsg); !ok {
		t.Errorf("got %T, want PopScreenMsg", msgs[0])
	}
}

func TestCtrlN_TogglesAutoRead(t *testing.T) {
	s, deps := startTier(t, quiz.TierMultipleChoice)
	before := deps.Narration.NarrateOnQuestion()
	press(s, screentest.Ctrl('n'))
	if deps.Narration.NarrateOnQuestion() == before {
		t.Error("ctrl+n should flip auto-read")
	}
}

type nopPlayer struct{}

func (nopPlayer) Play(context.Context, []byte) error { return nil }

func TestAnswerCueThenNextQuestionIsRead(t *testing.T) {
	s, deps := startTier(t, quiz.TierMultipleChoice)
	synth := &speech.MockSynthesizer{Default: []byte{1}}
	deps.Narration = narration.New(synth, nopPlayer{}, narration.Options{
		NarrateOnQuestion: true,
		NarrateFeedback:   true,
		Feedback:          narration.Feedback{Correct: "Correct!", Incorrect: "Not quite."},
	}, nil)
	defer deps.Narration.Close()

	press(s, screentest.Key('b'))
	deps.Narration.Wait()
	press(s, screentest.Special(tea.KeyEnter))
	deps.Narration.Wait()

	calls := synth.Calls()
	if len(calls) != 2 || calls[0] != "Not quite." || calls[1] != "What is item 2?" {
		t.Errorf("synth calls = %q, want cue then next question", calls)
	}
}

func TestCtrlF_TogglesAnswerCues(t *testing.T) {
	s, deps := startTier(t, quiz.TierMultipleChoice)
	before := deps.Narration.NarrateFeedback()
	press(s, screentest.Ctrl('f'))
	if deps.Narration.NarrateFeedback() == before {
		t.Error("ctrl+f should flip answer cues")
	}
}

func TestNoActiveTier_AnyKeyGoesBack(t *testing.T) {
	deps := screentest.Loaded("math", "Fractions")
	s := New(deps)

	msgs := screentest.Drain(press(s, screentest.Key('x')))
	if len(msgs) != 1 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if _, ok := msgs[0].(router.PopScreenMsg); !ok {
		t.Errorf("got %T, want PopScreenMsg", msgs[0])
	}
}
