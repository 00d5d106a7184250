package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/tkha/tierquiz/internal/screen"
)

type plainScreen struct{}

func (s *plainScreen) Init() tea.Cmd                           { return nil }
func (s *plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *plainScreen) View(int, int) string                    { return "plain" }
func (s *plainScreen) Title() string                           { return "plain" }

type capturingScreen struct {
	plainScreen
	escapes int
}

func (s *capturingScreen) CapturesEscape() bool { return true }

func (s *capturingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "esc" {
		s.escapes++
	}
	return s, nil
}
