// Package gate asks for a license key before a locked subject opens.
package gate

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/tkha/tierquiz/internal/access"
	"github.com/tkha/tierquiz/internal/router"
	"github.com/tkha/tierquiz/internal/screen"
	"github.com/tkha/tierquiz/internal/screens/topic"
	"github.com/tkha/tierquiz/internal/ui/components"
	"github.com/tkha/tierquiz/internal/ui/layout"
	"github.com/tkha/tierquiz/internal/ui/theme"
)

// GateScreen unlocks one subject. On success it is replaced by the topic
// prompt for that subject.
type GateScreen struct {
	deps    *screen.Deps
	subject string
	input   components.TextInput
	errMsg  string
}

var (
	_ screen.Screen          = (*GateScreen)(nil)
	_ screen.KeyHintProvider = (*GateScreen)(nil)
)

// New creates the key prompt for subject.
func New(deps *screen.Deps, subject string) *GateScreen {
	return &GateScreen{
		deps:    deps,
		subject: subject,
		input:   components.NewTextInput("License key", 64),
	}
}

func (s *GateScreen) Init() tea.Cmd { return s.input.Init() }

func (s *GateScreen) Title() string { return "Unlock " + s.deps.SubjectName(s.subject) }

func (s *GateScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Unlock"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return s.unlock()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *GateScreen) unlock() (screen.Screen, tea.Cmd) {
	key := strings.TrimSpace(s.input.Value())
	if key == "" {
		return s, nil
	}
	fresh, err := s.deps.Gate.Unlock(key, s.subject)
	if err != nil {
		if errors.Is(err, access.ErrInvalidKey) {
			s.errMsg = "That key does not unlock " + s.deps.SubjectName(s.subject) + "."
		} else {
			s.errMsg = err.Error()
		}
		s.input.Reset()
		return s, nil
	}
	s.deps.Log.Info("subjects unlocked", "subject", s.subject, "count", len(fresh))
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: topic.New(s.deps, s.subject)}
	}
}

func (s *GateScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(s.deps.SubjectName(s.subject) + " is locked"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Enter a license key to open it."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered("Key: "+s.input.View(), width))
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Incorrect.Render(s.errMsg), width))
	}
	return b.String()
}
