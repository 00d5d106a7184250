// Package topic asks for a topic and generates its question set.
package topic

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tkha/tierquiz/internal/questionset"
	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/router"
	"github.com/tkha/tierquiz/internal/screen"
	"github.com/tkha/tierquiz/internal/screens/tiers"
	"github.com/tkha/tierquiz/internal/ui/components"
	"github.com/tkha/tierquiz/internal/ui/layout"
	"github.com/tkha/tierquiz/internal/ui/theme"
)

// loadedMsg carries the outcome of one generation request.
type loadedMsg struct {
	ticket questionset.Ticket
	set    *quiz.QuestionSet
	err    error
}

// TopicScreen collects a topic and runs generation in the background.
type TopicScreen struct {
	deps    *screen.Deps
	subject string

	input   components.TextInput
	spinner spinner.Model

	loading bool
	ticket  questionset.Ticket
	cancel  context.CancelFunc
	topic   string
	errMsg  string
}

var (
	_ screen.Screen          = (*TopicScreen)(nil)
	_ screen.KeyHintProvider = (*TopicScreen)(nil)
	_ screen.EscapeHandler   = (*TopicScreen)(nil)
)

// New creates the topic prompt for subject.
func New(deps *screen.Deps, subject string) *TopicScreen {
	return &TopicScreen{
		deps:    deps,
		subject: subject,
		input:   components.NewTextInput("e.g. Quadratic functions", 120),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (s *TopicScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *TopicScreen) Title() string {
	return s.deps.SubjectName(s.subject)
}

// CapturesEscape keeps Esc on this screen while a load is running so it
// cancels the load instead of leaving.
func (s *TopicScreen) CapturesEscape() bool { return s.loading }

func (s *TopicScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.loading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case s.errMsg != "" && s.topic != "":
		return []layout.KeyHint{
			{Key: "Ctrl+R", Description: "Retry"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TopicScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		return s.handleLoaded(msg)

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TopicScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.loading {
		if msg.String() == "esc" {
			s.stopLoading()
			s.errMsg = "Generation cancelled."
		}
		return s, nil
	}

	switch msg.String() {
	case "enter":
		topic := strings.TrimSpace(s.input.Value())
		if topic == "" {
			return s, nil
		}
		return s, s.start(topic)
	case "ctrl+r":
		if s.topic != "" && s.errMsg != "" {
			return s, s.start(s.topic)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// start begins a generation. Any earlier request is cancelled and its
// ticket goes stale, so only the latest result is applied.
func (s *TopicScreen) start(topic string) tea.Cmd {
	s.stopLoading()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.ticket = s.deps.Loader.Begin()
	s.loading = true
	s.topic = topic
	s.errMsg = ""

	loader, ticket, subject := s.deps.Loader, s.ticket, s.subject
	s.deps.Log.Info("generating question set", "subject", subject, "topic", topic)
	load := func() tea.Msg {
		set, err := loader.LoadTicket(ctx, ticket, subject, topic)
		return loadedMsg{ticket: ticket, set: set, err: err}
	}
	return tea.Batch(load, s.spinner.Tick)
}

func (s *TopicScreen) stopLoading() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.loading = false
}

func (s *TopicScreen) handleLoaded(msg loadedMsg) (screen.Screen, tea.Cmd) {
	if msg.ticket != s.ticket || !s.loading {
		return s, nil
	}
	s.stopLoading()

	if msg.err != nil {
		if errors.Is(msg.err, questionset.ErrSuperseded) || errors.Is(msg.err, context.Canceled) {
			return s, nil
		}
		s.errMsg = describeError(msg.err)
		s.deps.Log.Warn("question set unavailable", "subject", s.subject, "topic", s.topic, "error", msg.err)
		return s, nil
	}

	if err := s.deps.Controller.LoadTopic(msg.set); err != nil {
		s.errMsg = "The generated questions could not be used: " + err.Error()
		return s, nil
	}
	s.input.Reset()
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: tiers.New(s.deps)}
	}
}

// describeError turns a generation failure into a learner-facing line.
func describeError(err error) string {
	var genErr *questionset.GenerationError
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case questionset.KindUnreachable:
			return "The question service could not be reached. Check your connection and retry."
		case questionset.KindMalformed, questionset.KindContract:
			return "The generated questions were incomplete. Retry for a fresh set."
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Generation took too long. Retry in a moment."
	}
	return "Something went wrong: " + err.Error()
}

func (s *TopicScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(s.deps.SubjectName(s.subject)))
	b.WriteString("\n\n")

	if s.loading {
		line := s.spinner.View() + " Preparing questions on " + lipgloss.NewStyle().Bold(true).Render(s.topic) + "..."
		b.WriteString(layout.Centered(theme.Body.Render(line), width))
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Width(width).Render("This can take up to a minute."))
		return b.String()
	}

	b.WriteString(theme.Subtitle.Width(width).Render("Which topic would you like to practise?"))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered("Topic: "+s.input.View(), width))
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Incorrect.Render(s.errMsg), width))
	}
	return b.String()
}
