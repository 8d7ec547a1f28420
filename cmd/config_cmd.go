package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/agentcost/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(cfg)
	}

	path := config.ConfigPath()
	if flagConfig != "" {
		path = flagConfig
	}
	fmt.Printf("  Config file: %s\n", path)
	if _, err := os.Stat(path); err == nil {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Defaults]")
	fmt.Printf("    Language:          %s\n", cfg.Defaults.Language)
	fmt.Printf("    Working days:      %d\n", cfg.Defaults.MonthlyWorkingDays)
	fmt.Printf("    Safety margin:     %.0f%%\n", cfg.Defaults.SafetyMarginPercent)
	fmt.Printf("    Currency:          %s\n", cfg.Defaults.Currency)
	fmt.Printf("    Exchange rate:     %.2f JPY/USD\n", cfg.Defaults.ExchangeRate)
	fmt.Printf("    Prompt caching:    %v\n", cfg.Defaults.PromptCaching)
	fmt.Println()

	fmt.Println("  [Catalog]")
	if cfg.Catalog.Path != "" {
		fmt.Printf("    Path:  %s\n", cfg.Catalog.Path)
		fmt.Printf("    Watch: %v\n", cfg.Catalog.Watch)
	} else {
		fmt.Println("    Path:  not set (stored or built-in catalog)")
	}
	fmt.Println()

	fmt.Println("  [Storage]")
	fmt.Printf("    Database: %s\n", config.DBPath(cfg))
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:        %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Events buffer:  %d\n", cfg.Daemon.EventsBuffer)
	if cfg.Daemon.RetentionDays > 0 {
		fmt.Printf("    Retention:      %d days (%s)\n", cfg.Daemon.RetentionDays, cfg.Daemon.PruneSchedule)
	} else {
		fmt.Println("    Retention:      keep forever")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:  %s\n", cfg.Log.Level)
	fmt.Printf("    Format: %s\n", cfg.Log.Format)
	fmt.Println()

	fmt.Println("  Run `agentcost setup` to reconfigure.")
	return nil
}
