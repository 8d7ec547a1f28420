package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/agentcost/internal/cli"
	"github.com/theirongolddev/agentcost/internal/model"
	"github.com/theirongolddev/agentcost/internal/tui/components"
	"github.com/theirongolddev/agentcost/internal/tui/theme"
)

func (a App) renderGrowthTab(cw int) string {
	t := theme.Active
	p := a.projection
	cur, rate := a.currency(), a.exchangeRate()
	var b strings.Builder

	mode := "custom multipliers"
	if a.growth.Mode == model.GrowthMonthlyRate {
		mode = fmt.Sprintf("%+g%% per month", a.growth.MonthlyGrowthRate)
	}
	last := model.MonthlyProjection{}
	if len(p.Projections) > 0 {
		last = p.Projections[len(p.Projections)-1]
	}

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Growth", Value: mode, Note: "[+/-] rate  [m] mode"},
		{Label: "Month 12", Value: cli.FormatMoney(last.MonthlyCostUSD, cur, rate), Note: cli.FormatMultiplier(last.Multiplier)},
		{Label: "First year total", Value: cli.FormatMoney(p.TotalAnnualCostUSD, cur, rate),
			Note: "flat: " + cli.FormatCost(a.result.MonthlyCostUSD*12)},
	}, cw))
	b.WriteString("\n")

	values := make([]float64, len(p.Projections))
	labels := make([]string, len(p.Projections))
	for i, m := range p.Projections {
		values[i] = m.MonthlyCostUSD
		labels[i] = fmt.Sprintf("M%d", m.Month)
	}
	chartH := 10
	if a.isCompactLayout() {
		chartH = 6
	}
	b.WriteString(components.ContentCard("Monthly cost (USD)",
		components.ColumnChart(values, labels, t.Blue, components.CardInnerWidth(cw), chartH), cw))
	b.WriteString("\n")

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	var table strings.Builder
	table.WriteString(muted.Render(fmt.Sprintf("%-6s %-8s %16s %16s", "Month", "x", "Monthly", "Cumulative")))
	for _, m := range p.Projections {
		table.WriteString("\n")
		table.WriteString(fmt.Sprintf("%-6d %-8s %16s %16s", m.Month, cli.FormatMultiplier(m.Multiplier),
			cli.FormatCost(m.MonthlyCostUSD), cli.FormatCost(m.CumulativeCostUSD)))
	}
	b.WriteString(components.ContentCard("Projection", table.String(), cw))
	return b.String()
}
