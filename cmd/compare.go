package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/cli"
	"github.com/theirongolddev/agentcost/internal/compare"
	"github.com/theirongolddev/agentcost/internal/model"
	"github.com/theirongolddev/agentcost/internal/report"
	"github.com/theirongolddev/agentcost/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagCompareFile     string
	flagCompareOut      string
	flagCompareCurrency string
)

var compareCmd = &cobra.Command{
	Use:     "compare",
	Aliases: []string{"cmp"},
	Short:   "Manage saved comparisons",
	RunE:    runCompareList,
}

var compareListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved comparisons",
	Args:  cobra.NoArgs,
	RunE:  runCompareList,
}

var compareShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one saved comparison",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompareShow,
}

var compareAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Calculate a scenario file and save the result",
	Args:  cobra.NoArgs,
	RunE:  runCompareAdd,
}

var compareRmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"remove"},
	Short:   "Remove a saved comparison",
	Args:    cobra.ExactArgs(1),
	RunE:    runCompareRm,
}

var compareClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved comparison",
	Args:  cobra.NoArgs,
	RunE:  runCompareClear,
}

var compareExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write saved comparisons as a markdown report",
	Args:  cobra.NoArgs,
	RunE:  runCompareExport,
}

func init() {
	compareAddCmd.Flags().StringVarP(&flagCompareFile, "file", "f", "", "Scenario file (.toml, .yaml, .json)")
	_ = compareAddCmd.MarkFlagRequired("file")
	compareExportCmd.Flags().StringVarP(&flagCompareOut, "out", "o", "", "Output file (default stdout)")
	compareExportCmd.Flags().StringVar(&flagCompareCurrency, "currency", "", "Add amounts in this currency: USD or JPY")

	compareCmd.AddCommand(compareListCmd, compareShowCmd, compareAddCmd, compareRmCmd, compareClearCmd, compareExportCmd)
	rootCmd.AddCommand(compareCmd)
}

func runCompareList(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.Close()

	entries, err := e.compares.List(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("\n  No saved comparisons. Save one with `agentcost estimate --save`.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COMPARISONS  %d saved", len(entries))))
	fmt.Println()

	cheapest := entries[0].Result.MonthlyCostUSD
	for _, en := range entries[1:] {
		cheapest = min(cheapest, en.Result.MonthlyCostUSD)
	}

	rows := make([][]string, 0, len(entries))
	for _, en := range entries {
		r := en.Result
		rows = append(rows, []string{
			shortID(en.ID),
			en.Label,
			cli.FormatCost(r.CostPerRequest),
			cli.FormatCost(r.MonthlyCostUSD),
			cli.FormatDelta(r.MonthlyCostUSD, cheapest),
			en.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Label", "Per req", "Monthly", "vs cheapest", "Saved"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runCompareShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	entry, err := findEntry(ctx, e.compares, args[0])
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(entry)
	}
	r := entry.Result
	printResult(r, displayCurrency(e.cfg.Defaults.Currency, r.Assumptions.Currency), r.ExchangeRate)
	fmt.Printf("  %s  saved %s\n\n", entry.ID, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func runCompareAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()
	applyConfigPresets(&e.presets, e.cfg)

	cat := e.source.Snapshot()
	sc, err := loadScenario(flagCompareFile, baseInput(e.presets, e.cfg), cat)
	if err != nil {
		return err
	}
	if err := calc.ValidateDetailed(sc.DetailedInput); err != nil {
		return err
	}
	res, err := calc.Calculate(sc.DetailedInput, cat, e.pairs.RecommendAuxiliary)
	if err != nil {
		return err
	}

	entry, added, err := e.compares.Add(ctx, res)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(entry)
	}
	printSaved(entry, added)
	return nil
}

func runCompareRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	entry, err := findEntry(ctx, e.compares, args[0])
	if err != nil {
		return err
	}
	if err := e.compares.Remove(ctx, entry.ID); err != nil {
		return err
	}
	fmt.Printf("  Removed %s (%s)\n", shortID(entry.ID), entry.Label)
	return nil
}

func runCompareClear(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.Close()

	n, err := e.compares.Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("  Removed %d comparisons\n", n)
	return nil
}

func runCompareExport(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.Close()

	entries, err := e.compares.List(cmd.Context())
	if err != nil {
		return err
	}

	currency := model.Currency(strings.ToUpper(flagCompareCurrency))
	if currency == "" {
		currency = model.Currency(e.cfg.Defaults.Currency)
	}
	if currency != model.CurrencyUSD && currency != model.CurrencyJPY {
		return fmt.Errorf("unknown currency %q (want USD or JPY)", flagCompareCurrency)
	}
	opts := report.Options{Currency: currency, ExchangeRate: e.cfg.Defaults.ExchangeRate}

	if flagCompareOut == "" {
		return report.Write(os.Stdout, entries, opts)
	}
	//nolint:gosec // report path is supplied by the local user
	if err := os.WriteFile(flagCompareOut, []byte(report.Markdown(entries, opts)), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Printf("  Wrote %d comparisons to %s\n", len(entries), flagCompareOut)
	return nil
}

// findEntry resolves a full id, or an unambiguous id prefix as printed by
// `compare list`.
func findEntry(ctx context.Context, m *compare.Manager, ref string) (model.ComparisonEntry, error) {
	entry, err := m.Get(ctx, ref)
	if err == nil || !errors.Is(err, store.ErrNotFound) {
		return entry, err
	}

	entries, err := m.List(ctx)
	if err != nil {
		return model.ComparisonEntry{}, err
	}
	var matches []model.ComparisonEntry
	for _, en := range entries {
		if strings.HasPrefix(en.ID, ref) {
			matches = append(matches, en)
		}
	}
	switch len(matches) {
	case 0:
		return model.ComparisonEntry{}, fmt.Errorf("comparison %q: %w", ref, store.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return model.ComparisonEntry{}, fmt.Errorf("comparison id %q is ambiguous (%d matches)", ref, len(matches))
}
