package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/cli"
	"github.com/theirongolddev/agentcost/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagGrowthBase        float64
	flagGrowthFile        string
	flagGrowthMultipliers string
	flagGrowthRate        float64
	flagGrowthExchange    float64
)

var growthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Project a monthly cost over twelve months",
	Long: "Project a base monthly cost over twelve months of traffic growth.\n" +
		"The base is --base USD or the monthly cost of a --file scenario.\n" +
		"Growth is --multipliers 1,1,1.5,... or --rate PERCENT per month.",
	RunE: runGrowth,
}

func init() {
	f := growthCmd.Flags()
	f.Float64Var(&flagGrowthBase, "base", 0, "Base monthly cost in USD")
	f.StringVarP(&flagGrowthFile, "file", "f", "", "Scenario file to take the base cost from")
	f.StringVar(&flagGrowthMultipliers, "multipliers", "", "Comma-separated monthly multipliers")
	f.Float64Var(&flagGrowthRate, "rate", 0, "Compound monthly growth in percent")
	f.Float64Var(&flagGrowthExchange, "exchange-rate", 0, "JPY per USD (default from config)")
	growthCmd.MarkFlagsMutuallyExclusive("base", "file")
	growthCmd.MarkFlagsMutuallyExclusive("multipliers", "rate")

	rootCmd.AddCommand(growthCmd)
}

func runGrowth(cmd *cobra.Command, _ []string) error {
	fs := cmd.Flags()
	if !fs.Changed("base") && !fs.Changed("file") {
		return errors.New("pass --base or --file")
	}

	e, err := openEnv(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer e.Close()
	applyConfigPresets(&e.presets, e.cfg)

	base := flagGrowthBase
	rate := e.presets.Defaults.ExchangeRate
	currency := displayCurrency(e.cfg.Defaults.Currency, "")
	var sc model.GrowthScenario

	if flagGrowthFile != "" {
		cat := e.source.Snapshot()
		s, err := loadScenario(flagGrowthFile, baseInput(e.presets, e.cfg), cat)
		if err != nil {
			return err
		}
		if err := calc.ValidateDetailed(s.DetailedInput); err != nil {
			return err
		}
		res, err := calc.Calculate(s.DetailedInput, cat, e.pairs.RecommendAuxiliary)
		if err != nil {
			return err
		}
		base = res.MonthlyCostUSD
		rate = res.ExchangeRate
		currency = displayCurrency(e.cfg.Defaults.Currency, s.Currency)
		if s.Growth != nil {
			sc = *s.Growth
		}
	}
	if base < 0 {
		return errors.New("base cost must be >= 0")
	}
	if fs.Changed("exchange-rate") {
		rate = flagGrowthExchange
	}

	switch {
	case fs.Changed("multipliers"):
		mults, err := parseMultipliers(flagGrowthMultipliers)
		if err != nil {
			return err
		}
		sc = model.GrowthScenario{Mode: model.GrowthMultiplier, MonthlyMultipliers: mults}
	case fs.Changed("rate"):
		sc = model.GrowthScenario{Mode: model.GrowthMonthlyRate, MonthlyGrowthRate: flagGrowthRate}
	case sc.Mode == "":
		sc = model.GrowthScenario{Mode: model.GrowthMultiplier}
	}

	proj := calc.CalcGrowthProjection(base, rate, sc)
	if flagJSON {
		return printJSON(proj)
	}
	printProjection(proj, base, sc, currency, rate)
	return nil
}

func printProjection(proj model.AnnualProjection, base float64, sc model.GrowthScenario, currency model.Currency, rate float64) {
	money := func(usd float64) string { return cli.FormatMoney(usd, currency, rate) }

	mode := "multipliers"
	if sc.Mode == model.GrowthMonthlyRate {
		mode = strconv.FormatFloat(sc.MonthlyGrowthRate, 'f', -1, 64) + "% per month"
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("GROWTH PROJECTION  12 months"))
	fmt.Println()
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Base monthly", money(base)},
		{"Growth", mode},
		{"Annual total", money(proj.TotalAnnualCostUSD)},
	}))
	fmt.Println()

	values := make([]float64, len(proj.Projections))
	rows := make([][]string, len(proj.Projections))
	for i, p := range proj.Projections {
		values[i] = p.MonthlyCostUSD
		rows[i] = []string{
			fmt.Sprintf("M%d", p.Month),
			cli.FormatMultiplier(p.Multiplier),
			money(p.MonthlyCostUSD),
			money(p.CumulativeCostUSD),
		}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Scale", "Monthly", "Cumulative"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  Trend  %s\n\n", cli.RenderSparkline(values))
}
