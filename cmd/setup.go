package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/agentcost/internal/config"
	"github.com/theirongolddev/agentcost/internal/tui/theme"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	path := config.ConfigPath()
	if flagConfig != "" {
		path = flagConfig
	}

	// Load existing config or defaults
	cfg, _ := config.LoadFile(path)

	fmt.Println()
	fmt.Println("  Welcome to agentcost!")
	if config.Exists() || flagConfig != "" {
		fmt.Printf("  Editing %s. Press Enter to keep a value.\n", path)
	}
	fmt.Println()

	cfg = setupWizard(os.Stdin, os.Stdout, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveFile(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", path)
	fmt.Println("  Run `agentcost setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

// setupWizard asks the setup questions on in and returns cfg with the
// answers applied. Empty or invalid answers keep the current value.
func setupWizard(in io.Reader, out io.Writer, cfg config.Config) config.Config {
	reader := bufio.NewReader(in)
	ask := func() string {
		fmt.Fprint(out, "     > ")
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	// 1. Language
	fmt.Fprintln(out, "  1. Main language of user messages")
	fmt.Fprintln(out, "     (1) Japanese")
	fmt.Fprintln(out, "     (2) English")
	fmt.Fprintln(out, "     (3) Mixed")
	fmt.Fprintf(out, "     Current: %s\n", cfg.Defaults.Language)
	switch ask() {
	case "1":
		cfg.Defaults.Language = "ja"
	case "2":
		cfg.Defaults.Language = "en"
	case "3":
		cfg.Defaults.Language = "mixed"
	}
	fmt.Fprintln(out)

	// 2. Currency
	fmt.Fprintln(out, "  2. Display currency")
	fmt.Fprintln(out, "     (1) USD")
	fmt.Fprintln(out, "     (2) JPY (USD with yen alongside)")
	fmt.Fprintf(out, "     Current: %s\n", cfg.Defaults.Currency)
	switch ask() {
	case "1":
		cfg.Defaults.Currency = "USD"
	case "2":
		cfg.Defaults.Currency = "JPY"
	}
	fmt.Fprintln(out)

	// 3. Exchange rate
	fmt.Fprintln(out, "  3. Exchange rate (JPY per USD)")
	fmt.Fprintf(out, "     Current: %g\n", cfg.Defaults.ExchangeRate)
	if s := ask(); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			cfg.Defaults.ExchangeRate = v
		} else {
			fmt.Fprintf(out, "     Ignoring %q: not a positive number\n", s)
		}
	}
	fmt.Fprintln(out)

	// 4. Theme
	names := theme.Names()
	fmt.Fprintln(out, "  4. Color theme")
	for i, n := range names {
		fmt.Fprintf(out, "     (%d) %s\n", i+1, n)
	}
	fmt.Fprintf(out, "     Current: %s\n", cfg.Appearance.Theme)
	if n, err := strconv.Atoi(ask()); err == nil && n >= 1 && n <= len(names) {
		cfg.Appearance.Theme = names[n-1]
	}

	return cfg
}
