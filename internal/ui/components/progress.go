package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tkha/tierquiz/internal/ui/theme"
)

// ProgressBar displays how far through a tier the learner is.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
	Fill  color.Color
}

// NewProgressBar creates a new progress bar. A nil fill uses the
// secondary color.
func NewProgressBar(label string, done, total, width int, fill color.Color) ProgressBar {
	if fill == nil {
		fill = theme.Secondary
	}
	return ProgressBar{Label: label, Done: done, Total: total, Width: width, Fill: fill}
}

// Fraction returns Done/Total clamped to [0,1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	return min(max(f, 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	count := fmt.Sprintf("  %d/%d", p.Done, p.Total)

	barWidth := max(p.Width-lipgloss.Width(result)-len(count), 4)
	filled := int(float64(barWidth) * p.Fraction())

	result += lipgloss.NewStyle().Background(p.Fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(count)
	return result
}
