// Package tiers lists the three tiers of a loaded topic.
package tiers

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/router"
	"github.com/tkha/tierquiz/internal/screen"
	"github.com/tkha/tierquiz/internal/screens/play"
	"github.com/tkha/tierquiz/internal/ui/components"
	"github.com/tkha/tierquiz/internal/ui/layout"
	"github.com/tkha/tierquiz/internal/ui/theme"
)

// TiersScreen is the tier menu for the controller's loaded topic.
type TiersScreen struct {
	deps   *screen.Deps
	menu   components.Menu
	errMsg string
}

var (
	_ screen.Screen          = (*TiersScreen)(nil)
	_ screen.KeyHintProvider = (*TiersScreen)(nil)
	_ screen.EscapeHandler   = (*TiersScreen)(nil)
)

// New builds the menu from the loaded set's item counts.
func New(deps *screen.Deps) *TiersScreen {
	s := &TiersScreen{deps: deps}
	set := deps.Controller.Set()
	var items []components.MenuItem
	for _, t := range quiz.AllTiers {
		item := components.MenuItem{
			Label:  fmt.Sprintf("%-12s %s", t.String(), describe(t, set)),
			Action: s.enter(t),
		}
		if set == nil || set.ItemCount(t) == 0 {
			item.Disabled = true
		}
		items = append(items, item)
	}
	s.menu = components.NewMenu(items)
	return s
}

func describe(t quiz.Tier, set *quiz.QuestionSet) string {
	n := 0
	if set != nil {
		n = set.ItemCount(t)
	}
	switch t {
	case quiz.TierMultipleChoice:
		return fmt.Sprintf("%d multiple-choice questions", n)
	case quiz.TierJudgment:
		return fmt.Sprintf("%d true/false clusters", n)
	case quiz.TierShortAnswer:
		return fmt.Sprintf("%d short answers", n)
	}
	return ""
}

func (s *TiersScreen) enter(t quiz.Tier) func() tea.Cmd {
	return func() tea.Cmd {
		if err := s.deps.Controller.EnterTier(t); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.errMsg = ""
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: play.New(s.deps)}
		}
	}
}

func (s *TiersScreen) Init() tea.Cmd { return nil }

func (s *TiersScreen) Title() string {
	return s.deps.Controller.State().Topic
}

func (s *TiersScreen) CapturesEscape() bool { return true }

func (s *TiersScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start tier"},
		{Key: "Esc", Description: "New topic"},
	}
}

func (s *TiersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "esc" {
		s.deps.Narration.Stop()
		s.deps.Controller.ResetTopic()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *TiersScreen) View(width, height int) string {
	st := s.deps.Controller.State()
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(st.Topic))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(s.deps.SubjectName(st.Subject)))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(s.menu.View(), width))
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Incorrect.Render(s.errMsg), width))
	}
	return b.String()
}
