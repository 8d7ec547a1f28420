// Package report renders saved comparisons as a markdown document.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/theirongolddev/agentcost/internal/model"
)

// Title is the first line of every report.
const Title = "# LLM running cost comparison"

const sameAsMain = "(same as main model)"

// Options controls money formatting.
type Options struct {
	// Currency JPY appends a yen amount to every money value.
	Currency model.Currency
	// ExchangeRate is used for entries that carry no rate of their own.
	ExchangeRate float64
}

// Markdown renders entries as a report.
func Markdown(entries []model.ComparisonEntry, opts Options) string {
	var b strings.Builder
	_ = Write(&b, entries, opts)
	return b.String()
}

// Write renders entries as a report to w.
func Write(w io.Writer, entries []model.ComparisonEntry, opts Options) error {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("%s", Title)
	add("")

	if len(entries) >= 2 {
		add("## Summary")
		add("")

		headers := []string{"Item"}
		for i := range entries {
			headers = append(headers, fmt.Sprintf("Plan %d", i+1))
		}
		add("| %s |", strings.Join(headers, " | "))
		add("| %s |", strings.TrimSuffix(strings.Repeat("--- | ", len(headers)), " | "))

		row := func(label string, value func(e model.ComparisonEntry) string) {
			vals := make([]string, len(entries))
			for i, e := range entries {
				vals[i] = value(e)
			}
			add("| %s | %s |", label, strings.Join(vals, " | "))
		}

		row("Main model", func(e model.ComparisonEntry) string {
			return fmt.Sprintf("%s (%s)", e.Result.Assumptions.ModelName, e.Result.Assumptions.ProviderName)
		})
		row("Auxiliary model", func(e model.ComparisonEntry) string { return auxName(e.Result.Assumptions) })
		row("Monthly cost", func(e model.ComparisonEntry) string {
			return fmt.Sprintf("%s (incl. +%s%% margin)", money(e.Result, e.Result.MonthlyCostUSD, 2, opts), trimFloat(e.Result.SafetyMarginRate))
		})
		row("Annual cost", func(e model.ComparisonEntry) string { return money(e.Result, e.Result.AnnualCostUSD, 2, opts) })
		row("Daily cost", func(e model.ComparisonEntry) string { return money(e.Result, e.Result.DailyCostUSD, 2, opts) })
		row("Cost per request", func(e model.ComparisonEntry) string { return money(e.Result, e.Result.CostPerRequest, 6, opts) })
		row("Requests per day", func(e model.ComparisonEntry) string { return group(int64(e.Result.Assumptions.DailyRequests)) })
		row("Working days per month", func(e model.ComparisonEntry) string {
			return fmt.Sprintf("%d days", e.Result.Assumptions.MonthlyWorkingDays)
		})
		row("Input chars", func(e model.ComparisonEntry) string {
			return group(int64(e.Result.Assumptions.MaxInputChars)) + " chars"
		})
		row("Output chars", func(e model.ComparisonEntry) string {
			return group(int64(e.Result.Assumptions.MaxOutputChars)) + " chars"
		})
		row("Enabled options", func(e model.ComparisonEntry) string { return options(e.Result.Assumptions) })
		add("")
	}

	for i, e := range entries {
		r := e.Result
		a := r.Assumptions

		add("## Plan %d: %s", i+1, e.Label)
		add("")

		add("### Assumptions")
		add("")
		add("- Main model: %s (%s)", a.ModelName, a.ProviderName)
		add("- Auxiliary model: %s", auxName(a))
		add("- Requests per day: %s", group(int64(a.DailyRequests)))
		add("- Working days per month: %d days", a.MonthlyWorkingDays)
		add("- Max input: %s chars", group(int64(a.MaxInputChars)))
		add("- Max output: %s chars", group(int64(a.MaxOutputChars)))
		add("- Language: %s", language(a.Language))
		add("- System prompt: %s chars", group(int64(a.SystemPromptChars)))
		add("- Average turns: %d", a.AvgTurnsPerSession)
		add("- Safety margin: %s%%", trimFloat(a.SafetyMarginPercent))
		if len(a.EnabledOptions) > 0 {
			add("- Enabled options: %s", strings.Join(a.EnabledOptions, ", "))
		}
		for _, d := range a.OptionDetails {
			add("  - %s: %s", d.Key, d.Value)
		}
		add("")

		add("### Cost summary")
		add("")
		add("- Monthly cost: %s (incl. +%s%% safety margin)", money(r, r.MonthlyCostUSD, 2, opts), trimFloat(r.SafetyMarginRate))
		add("- Monthly cost before margin: %s", money(r, r.MonthlyCostBeforeMargin, 2, opts))
		add("- Annual cost: %s", money(r, r.AnnualCostUSD, 2, opts))
		add("- Daily cost: %s", money(r, r.DailyCostUSD, 2, opts))
		add("- Total per request: %s", money(r, r.CostPerRequest, 6, opts))
		if r.ReembeddingMonthlyUSD > 0 {
			add("- Re-embedding (monthly, not included above): %s", money(r, r.ReembeddingMonthlyUSD, 2, opts))
		}
		if r.LongContextSurcharge {
			add("- Note: the long-context surcharge applies")
		}
		add("")

		add("### Cost breakdown (per step, monthly)")
		add("")

		mult := 0.0
		if r.CostPerRequest > 0 {
			mult = r.MonthlyCostUSD / r.CostPerRequest
		}

		add("| Step | Purpose | Model | Input tokens | Output tokens | Monthly cost |")
		add("| --- | --- | --- | --- | --- | --- |")
		for _, s := range r.Steps {
			add("| %s | %s | %s | %s | %s | %s |",
				s.Name, orDash(s.Description), orDash(s.ModelName),
				group(s.InputTokens), group(s.OutputTokens), money(r, s.CostUSD*mult, 2, opts))
		}
		add("")
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func money(r model.CostResult, usd float64, decimals int, opts Options) string {
	s := "$" + strconv.FormatFloat(usd, 'f', decimals, 64)
	if opts.Currency != model.CurrencyJPY {
		return s
	}
	rate := r.ExchangeRate
	if rate == 0 {
		rate = opts.ExchangeRate
	}
	yen := int64(usd*rate + 0.5)
	return fmt.Sprintf("%s (¥%s)", s, group(yen))
}

func auxName(a model.Assumptions) string {
	if a.AuxiliaryModelName == "" {
		return sameAsMain
	}
	return a.AuxiliaryModelName
}

func options(a model.Assumptions) string {
	if len(a.EnabledOptions) == 0 {
		return "Base configuration"
	}
	return strings.Join(a.EnabledOptions, ", ")
}

func language(l model.Language) string {
	switch l {
	case model.LangJapanese:
		return "Japanese"
	case model.LangEnglish:
		return "English"
	case model.LangMixed:
		return "Mixed"
	}
	return string(l)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func group(n int64) string {
	if n < 0 {
		return "-" + group(-n)
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
