// Package result shows the score of a finished tier.
package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tkha/tierquiz/internal/engine"
	"github.com/tkha/tierquiz/internal/router"
	"github.com/tkha/tierquiz/internal/screen"
	"github.com/tkha/tierquiz/internal/ui/layout"
	"github.com/tkha/tierquiz/internal/ui/theme"
)

// ResultScreen displays the final score of a tier. Leaving it dismisses
// the tier on the controller and returns to the tier menu.
type ResultScreen struct {
	deps  *screen.Deps
	state engine.SessionState
}

var (
	_ screen.Screen          = (*ResultScreen)(nil)
	_ screen.KeyHintProvider = (*ResultScreen)(nil)
	_ screen.EscapeHandler   = (*ResultScreen)(nil)
)

// New creates a result screen for a completed tier snapshot.
func New(deps *screen.Deps, state engine.SessionState) *ResultScreen {
	return &ResultScreen{deps: deps, state: state}
}

func (s *ResultScreen) Init() tea.Cmd { return nil }

func (s *ResultScreen) Title() string { return "Result" }

func (s *ResultScreen) CapturesEscape() bool { return true }

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to tiers"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc", "q":
		if err := s.deps.Controller.ExitTier(); err != nil {
			s.deps.Log.Warn("exit tier", "error", err)
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	st := s.state
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(st.ActiveTier.String() + " complete"))
	b.WriteString("\n\n")

	pct := 0
	if st.TotalScorable > 0 {
		pct = st.Score * 100 / st.TotalScorable
	}
	score := lipgloss.NewStyle().
		Foreground(theme.TierColor(st.ActiveTier)).
		Bold(true).
		Render(fmt.Sprintf("%d / %d", st.Score, st.TotalScorable))
	b.WriteString(layout.Centered(score, width))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("%d%% correct", pct)))
	b.WriteString("\n\n")

	var banner string
	if st.Perfect() {
		banner = theme.Correct.Render("Excellent! A perfect score.")
	} else {
		banner = lipgloss.NewStyle().Foreground(theme.Text).Render(encouragement(pct))
	}
	b.WriteString(layout.Centered(theme.Card.Render(banner), width))
	return b.String()
}

func encouragement(pct int) string {
	switch {
	case pct >= 75:
		return "Great work. One more run for a perfect score?"
	case pct >= 50:
		return "Good effort. Review the explanations and try again."
	default:
		return "Keep practising. Loading the topic again brings a fresh set."
	}
}
