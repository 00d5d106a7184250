// Package subjects is the home screen: the subject catalogue with lock
// badges.
package subjects

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/tkha/tierquiz/internal/router"
	"github.com/tkha/tierquiz/internal/screen"
	"github.com/tkha/tierquiz/internal/screens/gate"
	"github.com/tkha/tierquiz/internal/screens/topic"
	"github.com/tkha/tierquiz/internal/ui/components"
	"github.com/tkha/tierquiz/internal/ui/layout"
	"github.com/tkha/tierquiz/internal/ui/theme"
)

// lockBadge marks subjects that still need a key.
const lockBadge = "locked"

// SubjectsScreen lists the configured subjects.
type SubjectsScreen struct {
	deps *screen.Deps
	ids  []string
	menu components.Menu
}

var (
	_ screen.Screen          = (*SubjectsScreen)(nil)
	_ screen.KeyHintProvider = (*SubjectsScreen)(nil)
)

// New builds the menu in catalogue order.
func New(deps *screen.Deps) *SubjectsScreen {
	s := &SubjectsScreen{deps: deps}
	var items []components.MenuItem
	for _, subj := range deps.Config.Subjects {
		s.ids = append(s.ids, subj.ID)
		items = append(items, components.MenuItem{
			Label:  subj.Name,
			Action: s.open(subj.ID),
		})
	}
	s.menu = components.NewMenu(items)
	s.refreshBadges()
	return s
}

// open routes locked subjects through the key prompt.
func (s *SubjectsScreen) open(id string) func() tea.Cmd {
	return func() tea.Cmd {
		var next screen.Screen
		if s.deps.Gate.IsUnlocked(id) {
			next = topic.New(s.deps, id)
		} else {
			next = gate.New(s.deps, id)
		}
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

// refreshBadges re-reads the gate; a key entered on another screen may
// have unlocked several subjects at once.
func (s *SubjectsScreen) refreshBadges() {
	for i, id := range s.ids {
		if s.deps.Gate.IsUnlocked(id) {
			s.menu.Items[i].Badge = ""
		} else {
			s.menu.Items[i].Badge = lockBadge
		}
	}
}

func (s *SubjectsScreen) Init() tea.Cmd { return nil }

func (s *SubjectsScreen) Title() string { return "Subjects" }

func (s *SubjectsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "N", Description: "Auto-read"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SubjectsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "n" {
		s.deps.Narration.SetNarrateOnQuestion(!s.deps.Narration.NarrateOnQuestion())
		return s, nil
	}
	s.refreshBadges()
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SubjectsScreen) View(width, height int) string {
	s.refreshBadges()
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Choose a subject"))
	b.WriteString("\n")
	auto := "off"
	if s.deps.Narration.NarrateOnQuestion() {
		auto = "on"
	}
	b.WriteString(theme.Subtitle.Width(width).Render("Questions are read aloud: " + auto))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(s.menu.View(), width))
	return b.String()
}
