// Package play is the screen where the learner answers the items of one
// tier.
package play

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/tkha/tierquiz/internal/engine"
	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/router"
	"github.com/tkha/tierquiz/internal/screen"
	"github.com/tkha/tierquiz/internal/screens/result"
	"github.com/tkha/tierquiz/internal/ui/components"
	"github.com/tkha/tierquiz/internal/ui/layout"
)

// PlayScreen presents the controller's active item and submits answers.
type PlayScreen struct {
	deps *screen.Deps

	question engine.Question
	choices  components.ChoiceList
	toggles  components.JudgmentToggles
	input    components.TextInput

	feedback    *engine.Outcome
	confirmQuit bool
	errMsg      string
}

var (
	_ screen.Screen          = (*PlayScreen)(nil)
	_ screen.KeyHintProvider = (*PlayScreen)(nil)
	_ screen.EscapeHandler   = (*PlayScreen)(nil)
)

// New creates the screen for a tier the controller has already entered.
func New(deps *screen.Deps) *PlayScreen {
	s := &PlayScreen{deps: deps}
	s.loadQuestion()
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	if s.question.Tier == quiz.TierShortAnswer {
		return s.input.Init()
	}
	return nil
}

func (s *PlayScreen) Title() string {
	return s.question.Tier.String()
}

func (s *PlayScreen) CapturesEscape() bool { return true }

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave tier"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.feedback != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Ctrl+R", Description: "Replay"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
	switch s.question.Tier {
	case quiz.TierMultipleChoice:
		hints = append(hints, layout.KeyHint{Key: "A-D", Description: "Answer"})
	case quiz.TierJudgment:
		hints = append(hints,
			layout.KeyHint{Key: "A-D", Description: "Flip"},
			layout.KeyHint{Key: "T/F", Description: "Set"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+R", Description: "Replay"},
		layout.KeyHint{Key: "Ctrl+N", Description: "Auto-read"},
		layout.KeyHint{Key: "Ctrl+F", Description: "Cues"},
		layout.KeyHint{Key: "Esc", Description: "Leave"})
}

// loadQuestion pulls the active item from the controller and resets the
// input widgets for its tier.
func (s *PlayScreen) loadQuestion() {
	q, ok := s.deps.Controller.Current()
	if !ok {
		s.errMsg = "No tier in progress."
		return
	}
	s.question = q
	s.feedback = nil
	s.errMsg = ""
	switch q.Tier {
	case quiz.TierMultipleChoice:
		s.choices = components.NewChoiceList(q.Choices)
	case quiz.TierJudgment:
		s.toggles = components.NewJudgmentToggles(q.Statements)
	case quiz.TierShortAnswer:
		s.input = components.NewTextInput("Type your answer...", 80)
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.question.Tier == quiz.TierShortAnswer && s.feedback == nil {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}
	return s.handleKey(kmsg)
}

func (s *PlayScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Without an active item any key goes back.
	if s.question.Prompt == "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s.leave()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.feedback != nil && s.feedback.TierComplete {
			return s.showResult()
		}
		s.confirmQuit = true
		return s, nil
	case "ctrl+r":
		s.deps.Narration.Stop()
		s.deps.Narration.RequestNarration(s.question.SpeechText())
		return s, nil
	case "ctrl+n":
		s.deps.Narration.SetNarrateOnQuestion(!s.deps.Narration.NarrateOnQuestion())
		return s, nil
	case "ctrl+f":
		s.deps.Narration.SetNarrateFeedback(!s.deps.Narration.NarrateFeedback())
		return s, nil
	}

	if s.feedback != nil {
		if key != "enter" && key != "space" {
			return s, nil
		}
		if s.feedback.TierComplete {
			return s.showResult()
		}
		s.loadQuestion()
		// A spoken cue superseded the question read on activation. The
		// channel drops this when that reading is still the latest.
		if s.deps.Narration.NarrateOnQuestion() {
			s.deps.Narration.RequestNarration(s.question.SpeechText())
		}
		return s, s.Init()
	}

	switch s.question.Tier {
	case quiz.TierMultipleChoice:
		var id string
		s.choices, id = s.choices.Update(msg)
		if id != "" {
			return s.submit(engine.ChoiceResponse(id))
		}
	case quiz.TierJudgment:
		var done bool
		s.toggles, done = s.toggles.Update(msg)
		if done {
			return s.submit(engine.JudgmentResponse(s.toggles.Truths()))
		}
	case quiz.TierShortAnswer:
		if key == "enter" {
			if s.input.Value() == "" {
				return s, nil
			}
			return s.submit(engine.TextResponse(s.input.Value()))
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit scores resp and shows the feedback overlay.
func (s *PlayScreen) submit(resp engine.Response) (screen.Screen, tea.Cmd) {
	out, err := s.deps.Controller.SubmitAnswer(s.question.Position, resp)
	if err != nil {
		if errors.Is(err, engine.ErrStaleSubmission) {
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""
	s.feedback = &out
	s.deps.Narration.RequestFeedback(out.Correct)

	switch s.question.Tier {
	case quiz.TierMultipleChoice:
		s.choices.Reveal(out.CorrectChoiceID)
	case quiz.TierJudgment:
		s.toggles.Reveal(out.PerStatement)
	case quiz.TierShortAnswer:
		s.input.Submit(out.Correct)
	}
	return s, nil
}

func (s *PlayScreen) showResult() (screen.Screen, tea.Cmd) {
	st := s.feedback.State
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: result.New(s.deps, st)}
	}
}

// leave abandons the tier and silences narration.
func (s *PlayScreen) leave() (screen.Screen, tea.Cmd) {
	s.confirmQuit = false
	s.deps.Narration.Stop()
	if s.feedback != nil && s.feedback.TierComplete {
		return s.showResult()
	}
	if err := s.deps.Controller.AbandonTier(); err != nil {
		s.deps.Log.Warn("abandon tier", "error", err)
	}
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}
