package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/agentcost/internal/cli"
	"github.com/theirongolddev/agentcost/internal/tui/components"
	"github.com/theirongolddev/agentcost/internal/tui/theme"
)

// renderStepsTable renders the per-step breakdown shown in the Steps
// viewport. Monthly costs are scaled by monthly/perRequest so they include
// the safety margin.
func (a App) renderStepsTable(cw int) string {
	t := theme.Active
	r := a.result
	innerW := components.CardInnerWidth(cw)

	monthlyFactor := 0.0
	if r.CostPerRequest > 0 {
		monthlyFactor = r.MonthlyCostUSD / r.CostPerRequest
	}

	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	costStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	const numW = 10
	nameW := 20
	modelW := max(innerW-nameW-4*numW-5, 12)

	row := func(cells ...string) string {
		return fmt.Sprintf("%-*s %-*s %*s %*s %*s %*s",
			nameW, truncateRunes(cells[0], nameW),
			modelW, truncateRunes(cells[1], modelW),
			numW, cells[2], numW, cells[3], numW, cells[4], numW, cells[5])
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(row("Step", "Model", "In tok", "Out tok", "Per req", "Monthly")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(innerW, nameW+modelW+4*numW+5))))

	for _, s := range r.Steps {
		modelName := s.ModelName
		if modelName == "" {
			modelName = "-"
		}
		b.WriteString("\n")
		line := row(s.Name, modelName,
			cli.FormatNumber(s.InputTokens), cli.FormatNumber(s.OutputTokens),
			cli.FormatCost(s.CostUSD), cli.FormatCost(s.CostUSD*monthlyFactor))
		b.WriteString(nameStyle.Render(line))
		if s.Description != "" {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("  " + truncateRunes(s.Description, innerW-2)))
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(innerW, nameW+modelW+4*numW+5))))
	b.WriteString("\n")
	b.WriteString(costStyle.Render(row("Total", "",
		cli.FormatNumber(r.TotalInputTokens), cli.FormatNumber(r.TotalOutputTokens),
		cli.FormatCost(r.CostPerRequest), cli.FormatCost(r.MonthlyCostUSD))))
	return b.String()
}
