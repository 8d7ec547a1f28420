package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/agentcost/internal/catalog"
	"github.com/theirongolddev/agentcost/internal/cli"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect, export or import the model catalog",
	Long: "The active catalog is [catalog].path when set, else a catalog imported\n" +
		"into the local store, else the built-in one.",
	RunE: runCatalogShow,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogShow,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write the active catalog as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogExport,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Validate a YAML catalog and store it as the active catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogImport,
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd, catalogExportCmd, catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogShow(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.Close()

	cat := e.source.Snapshot()
	info := e.source.Info()
	if flagJSON {
		return printJSON(cat)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CATALOG  " + info.Origin))
	fmt.Println()
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Providers", strconv.Itoa(len(cat.Providers))},
		{"Chat models", fmt.Sprintf("%d (%d active)", len(cat.Models), len(cat.ActiveModels()))},
		{"Embedding models", strconv.Itoa(len(cat.EmbeddingModels))},
		{"Web search tools", strconv.Itoa(len(cat.WebSearchTools))},
	}))
	fmt.Println()

	embRows := make([][]string, 0, len(cat.EmbeddingModels))
	for _, m := range cat.EmbeddingModels {
		embRows = append(embRows, []string{
			strconv.Itoa(m.ID), m.Name, m.ProviderName, string(m.PricingTier), cli.FormatCost(m.InputPrice),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Embedding models",
		Headers: []string{"ID", "Model", "Provider", "Tier", "In /MTok"},
		Rows:    embRows,
	}))
	fmt.Println()

	toolRows := make([][]string, 0, len(cat.WebSearchTools))
	for _, t := range cat.WebSearchTools {
		toolRows = append(toolRows, []string{
			strconv.Itoa(t.ID), t.Name, t.ProviderName, cli.FormatCost(t.PricePerKCalls),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Web search tools",
		Headers: []string{"ID", "Tool", "Provider", "Per 1K calls"},
		Rows:    toolRows,
	}))
	fmt.Println()
	fmt.Println("  Run `agentcost models` for chat model prices.")
	return nil
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := catalog.WriteFile(args[0], e.source.Snapshot()); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s catalog to %s\n", e.source.Info().Origin, args[0])
	return nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.Close()

	c, err := catalog.LoadFile(args[0])
	if err != nil {
		return err
	}
	if err := e.db.SaveCatalog(cmd.Context(), c); err != nil {
		return fmt.Errorf("storing catalog: %w", err)
	}

	fmt.Printf("  Imported %d models, %d embedding models, %d web search tools\n",
		len(c.Models), len(c.EmbeddingModels), len(c.WebSearchTools))
	if e.cfg.Catalog.Path != "" {
		fmt.Println(cli.RenderWarning("[catalog].path is set, so the file catalog still takes precedence"))
	}
	return nil
}
