package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/agentcost/internal/tui/theme"
)

// Share is one labelled slice of a total.
type Share struct {
	Label string
	Value float64
	Note  string
}

// ShareBars renders one bar per share, scaled to the share of the sum.
// Labels are padded to a common width. Zero totals render empty bars.
func ShareBars(shares []Share, width int) string {
	if len(shares) == 0 {
		return ""
	}
	t := theme.Active

	total := 0.0
	labelW := 0
	for _, s := range shares {
		total += s.Value
		if w := lipgloss.Width(s.Label); w > labelW {
			labelW = w
		}
	}

	barW := width - labelW - 18
	if barW < 10 {
		barW = 10
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	var b strings.Builder
	for i, s := range shares {
		pct := 0.0
		if total > 0 {
			pct = s.Value / total
		}
		if i > 0 {
			b.WriteString("\n")
		}
		label := s.Label + strings.Repeat(" ", labelW-lipgloss.Width(s.Label))
		b.WriteString(labelStyle.Render(label))
		b.WriteString(space)
		b.WriteString(bar.ViewAs(pct))
		b.WriteString(space)
		b.WriteString(pctStyle.Render(fmt.Sprintf("%5.1f%%", pct*100)))
		if s.Note != "" {
			b.WriteString(space)
			b.WriteString(noteStyle.Render(s.Note))
		}
	}
	return b.String()
}
