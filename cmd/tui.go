package cmd

import (
	"fmt"

	"github.com/theirongolddev/agentcost/internal/model"
	"github.com/theirongolddev/agentcost/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagTUIFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive estimator",
	Long: "Launch the interactive estimator. With --file the scenario is calculated\n" +
		"on start; otherwise the quick estimate form runs first.",
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&flagTUIFile, "file", "f", "", "Scenario file (.toml, .yaml, .json)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// openEnv also applies the configured theme.
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.Close()
	applyConfigPresets(&e.presets, e.cfg)

	cat := e.source.Snapshot()
	opts := tui.Options{
		Catalog:      cat,
		Pairings:     e.pairs,
		Presets:      e.presets,
		Comparisons:  e.compares,
		Currency:     model.Currency(e.cfg.Defaults.Currency),
		ExchangeRate: e.presets.Defaults.ExchangeRate,
	}
	if flagTUIFile != "" {
		sc, err := loadScenario(flagTUIFile, baseInput(e.presets, e.cfg), cat)
		if err != nil {
			return err
		}
		opts.Input = &sc.DetailedInput
		opts.Currency = displayCurrency(e.cfg.Defaults.Currency, sc.Currency)
		opts.ExchangeRate = sc.ExchangeRate
		if sc.Growth != nil {
			opts.Growth = *sc.Growth
		}
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	p := tea.NewProgram(tui.NewApp(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
