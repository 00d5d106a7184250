// Package app hosts the Bubble Tea program for an interactive session.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tkha/tierquiz/internal/engine"
	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/narration"
	"github.com/tkha/tierquiz/internal/router"
	"github.com/tkha/tierquiz/internal/screen"
	"github.com/tkha/tierquiz/internal/screens/subjects"
	"github.com/tkha/tierquiz/internal/ui/layout"
)

// Options are the services the session runs on. Narration and Log may be
// nil; everything else is required.
type Options = screen.Deps

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   *screen.Deps
	router *router.Router
	width  int
	height int
}

// New wires the narration channel to question events and opens the
// subject list.
func New(opts Options) AppModel {
	deps := opts
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	if deps.Narration == nil {
		deps.Narration = narration.New(nil, nil, narration.Options{}, deps.Log)
	}
	deps.Controller.Subscribe(deps.Narration)
	return AppModel{
		deps:   &deps,
		router: router.New(subjects.New(&deps)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.deps.Narration.Stop()
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status is the header's right-hand text: subject and running score.
func (m AppModel) status() string {
	st := m.deps.Controller.State()
	if st.Subject == "" {
		return ""
	}
	s := m.deps.SubjectName(st.Subject)
	if st.HasTier {
		s += fmt.Sprintf("  %d/%d", st.Score, st.TotalScorable)
	}
	return s + "  "
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until the learner quits.
// Narration is silenced on the way out.
func Run(opts Options, progOpts ...tea.ProgramOption) error {
	m := New(opts)
	defer m.deps.Narration.Stop()
	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
