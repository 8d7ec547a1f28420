package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/agentcost/internal/cli"
	"github.com/theirongolddev/agentcost/internal/tui/components"
	"github.com/theirongolddev/agentcost/internal/tui/theme"
)

func (a App) renderCompareTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if a.opts.Comparisons == nil {
		return components.ContentCard("Comparisons", muted.Render("No comparison database is configured."), cw)
	}
	if len(a.entries) == 0 {
		return components.ContentCard("Comparisons",
			muted.Render("Nothing saved yet. Press [a] to add the current result."), cw)
	}

	innerW := components.CardInnerWidth(cw)
	selected := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	normal := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	up := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	down := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	const costW = 14
	labelW := max(innerW-2*costW-4, 20)

	var list strings.Builder
	list.WriteString(muted.Render(fmt.Sprintf("  %-*s %*s %*s", labelW, "Label", costW, "Monthly", costW, "vs current")))
	for i, e := range a.entries {
		list.WriteString("\n")
		delta := cli.FormatDelta(e.Result.MonthlyCostUSD, a.result.MonthlyCostUSD)
		deltaStyle := down
		if e.Result.MonthlyCostUSD > a.result.MonthlyCostUSD {
			deltaStyle = up
		}

		line := fmt.Sprintf("%-*s %*s ", labelW, truncateRunes(e.Label, labelW), costW, cli.FormatCost(e.Result.MonthlyCostUSD))
		if i == a.compareCursor {
			list.WriteString(selected.Render("> " + line))
		} else {
			list.WriteString(normal.Render("  " + line))
		}
		list.WriteString(deltaStyle.Render(fmt.Sprintf("%*s", costW, delta)))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(fmt.Sprintf("Comparisons (%d)", len(a.entries)), list.String(), cw))
	b.WriteString("\n")

	e := a.entries[a.compareCursor]
	shares := make([]components.Share, 0, len(e.Result.Steps))
	for _, s := range e.Result.Steps {
		shares = append(shares, components.Share{Label: s.Name, Value: s.CostUSD})
	}
	detail := muted.Render(fmt.Sprintf("Saved %s · %s per request · [d] delete",
		e.CreatedAt.Local().Format("2006-01-02 15:04"), cli.FormatCost(e.Result.CostPerRequest)))
	detail += "\n" + components.ShareBars(shares, innerW)
	b.WriteString(components.ContentCard(e.Label, detail, cw))
	return b.String()
}
