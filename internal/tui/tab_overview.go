package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/agentcost/internal/cli"
	"github.com/theirongolddev/agentcost/internal/compare"
	"github.com/theirongolddev/agentcost/internal/tui/components"
	"github.com/theirongolddev/agentcost/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	r := a.result
	cur, rate := a.currency(), a.exchangeRate()
	var b strings.Builder

	// Row 1: headline costs
	metrics := []components.Metric{
		{Label: "Per request", Value: cli.FormatCost(r.CostPerRequest),
			Note: cli.FormatTokens(r.TotalInputTokens) + " in / " + cli.FormatTokens(r.TotalOutputTokens) + " out"},
		{Label: "Daily", Value: cli.FormatMoney(r.DailyCostUSD, cur, rate),
			Note: cli.FormatNumber(int64(r.Assumptions.DailyRequests)) + " requests"},
		{Label: "Monthly", Value: cli.FormatMoney(r.MonthlyCostUSD, cur, rate),
			Note: fmt.Sprintf("incl. +%g%% margin", r.SafetyMarginRate)},
		{Label: "Annual", Value: cli.FormatMoney(r.AnnualCostUSD, cur, rate),
			Note: fmt.Sprintf("%d working days/month", r.Assumptions.MonthlyWorkingDays)},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: cost share per step, assumptions beside it on wide terminals
	shares := make([]components.Share, 0, len(r.Steps))
	for _, s := range r.Steps {
		shares = append(shares, components.Share{Label: s.Name, Value: s.CostUSD})
	}

	var notes []string
	if r.LongContextSurcharge {
		notes = append(notes, "Long-context surcharge applied to the main model.")
	}
	if r.ReembeddingMonthlyUSD > 0 {
		notes = append(notes, "Re-embedding adds "+cli.FormatMoney(r.ReembeddingMonthlyUSD, cur, rate)+" per month (not included above).")
	}
	warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	if a.isCompactLayout() {
		shareBody := components.ShareBars(shares, components.CardInnerWidth(cw))
		for _, n := range notes {
			shareBody += "\n" + warn.Render(n)
		}
		b.WriteString(components.ContentCard("Cost share by step", shareBody, cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Assumptions", a.renderAssumptions(components.CardInnerWidth(cw)), cw))
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	shareBody := components.ShareBars(shares, components.CardInnerWidth(halves[0]))
	for _, n := range notes {
		shareBody += "\n" + warn.Render(n)
	}
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Cost share by step", shareBody, halves[0]),
		components.ContentCard("Assumptions", a.renderAssumptions(components.CardInnerWidth(halves[1])), halves[1]),
	}))
	return b.String()
}

func (a App) renderAssumptions(width int) string {
	t := theme.Active
	as := a.result.Assumptions

	keyStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	aux := as.AuxiliaryModelName
	if aux == "" {
		aux = "(same as main model)"
	}
	options := compare.BaseConfiguration
	if len(as.EnabledOptions) > 0 {
		options = strings.Join(as.EnabledOptions, ", ")
	}

	rows := [][2]string{
		{"Main model", fmt.Sprintf("%s (%s)", as.ModelName, as.ProviderName)},
		{"Auxiliary", aux},
		{"Input / output", cli.FormatNumber(int64(as.MaxInputChars)) + " / " + cli.FormatNumber(int64(as.MaxOutputChars)) + " chars"},
		{"Language", cli.LanguageName(as.Language)},
		{"System prompt", cli.FormatNumber(int64(as.SystemPromptChars)) + " chars"},
		{"Turns/session", fmt.Sprintf("%d", as.AvgTurnsPerSession)},
		{"Options", options},
	}

	labelW := 0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r[0]))
	}
	valW := max(width-labelW-2, 10)

	lines := make([]string, len(rows))
	for i, r := range rows {
		v := r[1]
		if lipgloss.Width(v) > valW {
			v = truncateRunes(v, valW-1) + "…"
		}
		lines[i] = keyStyle.Render(fmt.Sprintf("%-*s  ", labelW, r[0])) + valStyle.Render(v)
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	rs := []rune(s)
	if n < 0 {
		n = 0
	}
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}
