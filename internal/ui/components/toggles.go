package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/ui/theme"
)

// JudgmentToggles collects a true/false verdict for every sub-statement of
// a judgment item. A statement starts undecided.
type JudgmentToggles struct {
	Statements []quiz.SubStatement
	Cursor     int

	values   map[string]bool
	revealed map[string]bool
}

// NewJudgmentToggles creates toggles with every statement undecided.
func NewJudgmentToggles(statements []quiz.SubStatement) JudgmentToggles {
	return JudgmentToggles{Statements: statements, values: make(map[string]bool)}
}

// Update handles navigation and verdicts. Up/down move the cursor, t and
// f set the verdict under it, space flips it, and a statement's letter
// flips that statement directly. It reports true when Enter is pressed
// with every statement decided.
func (j JudgmentToggles) Update(msg tea.Msg) (JudgmentToggles, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || j.revealed != nil || len(j.Statements) == 0 {
		return j, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if j.Cursor > 0 {
			j.Cursor--
		}
	case "down", "j":
		if j.Cursor < len(j.Statements)-1 {
			j.Cursor++
		}
	case "t":
		j.set(j.Statements[j.Cursor].ID, true)
	case "f":
		j.set(j.Statements[j.Cursor].ID, false)
	case "space":
		j.flip(j.Statements[j.Cursor].ID)
	case "enter":
		return j, j.Complete()
	default:
		for i, s := range j.Statements {
			if strings.EqualFold(s.ID, key) {
				j.Cursor = i
				j.flip(s.ID)
				break
			}
		}
	}
	return j, false
}

// set copies values before writing so earlier copies of the component
// keep their own verdicts.
func (j *JudgmentToggles) set(id string, v bool) {
	next := make(map[string]bool, len(j.values)+1)
	for k, old := range j.values {
		next[k] = old
	}
	next[id] = v
	j.values = next
}

// flip turns undecided into true and otherwise inverts the verdict.
func (j *JudgmentToggles) flip(id string) {
	v, ok := j.values[id]
	j.set(id, !ok || !v)
}

// Complete reports whether every statement has a verdict.
func (j JudgmentToggles) Complete() bool {
	for _, s := range j.Statements {
		if _, ok := j.values[s.ID]; !ok {
			return false
		}
	}
	return true
}

// Truths returns a copy of the verdicts keyed by statement id.
func (j JudgmentToggles) Truths() map[string]bool {
	out := make(map[string]bool, len(j.values))
	for k, v := range j.values {
		out[k] = v
	}
	return out
}

// Reveal freezes the toggles and marks each statement right or wrong.
func (j *JudgmentToggles) Reveal(perStatement map[string]bool) {
	j.revealed = perStatement
	if j.revealed == nil {
		j.revealed = map[string]bool{}
	}
}

// View renders one line per statement.
func (j JudgmentToggles) View() string {
	var b strings.Builder
	for i, s := range j.Statements {
		verdict := "[ ? ]"
		if v, ok := j.values[s.ID]; ok {
			verdict = "[ F ]"
			if v {
				verdict = "[ T ]"
			}
		}
		prefix := "  "
		if i == j.Cursor && j.revealed == nil {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s) %s  %s", prefix, s.ID, verdict, s.Statement)

		style := theme.Unselected
		if j.revealed != nil {
			if j.revealed[s.ID] {
				style = theme.Correct
			} else {
				style = theme.Incorrect
			}
		} else if i == j.Cursor {
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	if j.revealed == nil && !j.Complete() {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("\nDecide every statement, then press Enter"))
	}
	return b.String()
}
