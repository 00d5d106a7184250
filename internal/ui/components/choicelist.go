package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/ui/theme"
)

// ChoiceList selects one option of a multiple-choice item. Options are
// picked with the arrows plus Enter, or directly by their letter id.
type ChoiceList struct {
	Choices  []quiz.Choice
	Selected int

	chosen    string
	revealed  bool
	correctID string
}

// NewChoiceList creates a list with the first option highlighted.
func NewChoiceList(choices []quiz.Choice) ChoiceList {
	return ChoiceList{Choices: choices}
}

// Update moves the highlight. It returns the id of the submitted choice,
// or "" when the key did not submit.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, string) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || c.revealed || len(c.Choices) == 0 {
		return c, ""
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
		return c, ""
	case "down", "j":
		if c.Selected < len(c.Choices)-1 {
			c.Selected++
		}
		return c, ""
	case "enter":
		c.chosen = c.Choices[c.Selected].ID
		return c, c.chosen
	}

	for i, ch := range c.Choices {
		if strings.EqualFold(ch.ID, key) {
			c.Selected = i
			c.chosen = ch.ID
			return c, c.chosen
		}
	}
	return c, ""
}

// Reveal freezes the list and marks the correct and chosen options.
func (c *ChoiceList) Reveal(correctID string) {
	c.revealed = true
	c.correctID = correctID
}

// View renders the options.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, ch := range c.Choices {
		prefix := "  "
		if i == c.Selected && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, strings.ToUpper(ch.ID), ch.Text)

		var style lipgloss.Style
		switch {
		case c.revealed && ch.ID == c.correctID:
			style = theme.Correct
		case c.revealed && ch.ID == c.chosen:
			style = theme.Incorrect
		case c.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
