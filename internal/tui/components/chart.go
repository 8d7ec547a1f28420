package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/agentcost/internal/tui/theme"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// ColumnChart renders one column per value with a labelled y-axis and the
// given x labels under each column. Heights below 3 fall back to a sparkline.
func ColumnChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if height < 3 || width < 20 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	topLabel := AxisLabel(peak)
	axisW := max(len(topLabel), 4)
	n := len(values)
	colW := max((width-axisW-1)/n-1, 1)
	colW = min(colW, 6)

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	partial := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		label := ""
		switch row {
		case height:
			label = topLabel
		case (height + 1) / 2:
			label = AxisLabel(peak / 2)
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", axisW, label)))

		top := peak * float64(row) / float64(height)
		bottom := peak * float64(row-1) / float64(height)
		for _, v := range values {
			b.WriteString(blank.Render(" "))
			switch {
			case v >= top:
				b.WriteString(bar.Render(strings.Repeat("█", colW)))
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * 8)
				idx = min(max(idx, 1), 8)
				b.WriteString(bar.Render(strings.Repeat(string(partial[idx]), colW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", colW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", axisW, "0", strings.Repeat("─", n*(colW+1)))))
	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", axisW+1)))
		for _, l := range labels {
			if len(l) > colW {
				l = l[:colW]
			}
			b.WriteString(axis.Render(fmt.Sprintf(" %-*s", colW, l)))
		}
	}
	return b.String()
}

// AxisLabel formats v compactly for chart axes.
func AxisLabel(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
