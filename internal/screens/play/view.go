package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/ui/components"
	"github.com/tkha/tierquiz/internal/ui/layout"
	"github.com/tkha/tierquiz/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	if s.question.Prompt == "" {
		return theme.Subtitle.Width(width).Render("\n\n" + s.errMsg + "\nPress any key to go back.")
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	q := s.question
	var b strings.Builder

	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(min(width-4, 90)).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(layout.Centered(prompt, width))
	b.WriteString("\n\n")

	var answer string
	switch q.Tier {
	case quiz.TierMultipleChoice:
		answer = s.choices.View()
	case quiz.TierJudgment:
		answer = s.toggles.View()
	case quiz.TierShortAnswer:
		answer = "Answer: " + s.input.View()
	}
	b.WriteString(layout.Centered(answer, width))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Incorrect.Render(s.errMsg), width))
	}
	if s.feedback != nil {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(s.renderFeedback(min(width-8, 80)), width))
	}
	return b.String()
}

// renderInfoLine shows the tier progress on the left and the running
// score plus narration state on the right.
func (s *PlayScreen) renderInfoLine(width int) string {
	q := s.question
	done := q.Position
	if s.feedback != nil {
		done++
	}
	bar := components.NewProgressBar(q.Tier.String(), done, q.Count, min(width/2, 50), theme.TierColor(q.Tier))

	st := s.deps.Controller.State()
	auto := "off"
	if s.deps.Narration.NarrateOnQuestion() {
		auto = "on"
	}
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Score %d/%d   Auto-read %s", st.Score, st.TotalScorable, auto))

	line := "  " + bar.View()
	if pad := width - lipgloss.Width(line) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (s *PlayScreen) renderFeedback(width int) string {
	out := s.feedback
	var b strings.Builder

	if out.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
	}
	if s.question.Tier == quiz.TierJudgment {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d/%d statements right", out.Points, len(s.question.Statements))))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("Answer: " + out.CorrectAnswer))
	if out.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(width - 4).Render(out.Explanation))
	}
	b.WriteString("\n\n")
	next := "Press Enter for the next question"
	if out.TierComplete {
		next = "Press Enter to see your result"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(next))

	return theme.Card.Width(width).Render(b.String())
}

func renderQuitConfirm(width int) string {
	msg := theme.Body.Render("Leave this tier? Your progress in it will be lost.") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Y to leave, N to keep going")
	return "\n\n" + layout.Centered(theme.Card.Render(msg), width)
}
