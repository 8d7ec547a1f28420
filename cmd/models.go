package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/agentcost/internal/catalog"
	"github.com/theirongolddev/agentcost/internal/cli"
	"github.com/theirongolddev/agentcost/internal/model"

	"github.com/spf13/cobra"
)

var flagModelsAll bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List chat models with prices and recommended auxiliary",
	RunE:  runModels,
}

func init() {
	modelsCmd.Flags().BoolVarP(&flagModelsAll, "all", "a", false, "Include legacy models")
	rootCmd.AddCommand(modelsCmd)
}

// modelRow is the JSON shape of one models entry.
type modelRow struct {
	model.Model
	RecommendedAuxiliary string `json:"recommendedAuxiliary,omitempty"`
}

func runModels(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.Close()

	cat := e.source.Snapshot()
	models := cat.ActiveModels()
	if flagModelsAll {
		models = cat.AllModels()
	}
	listed := modelRows(cat, e.pairs, models)

	if flagJSON {
		return printJSON(listed)
	}
	if len(listed) == 0 {
		fmt.Println("\n  No models in the catalog.")
		return nil
	}

	info := e.source.Info()
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MODELS  %d from %s", len(listed), info.Origin)))
	fmt.Println()

	rows := make([][]string, 0, len(listed))
	for _, r := range listed {
		name := r.Name
		if r.IsLegacy {
			name += " (legacy)"
		}
		aux := r.RecommendedAuxiliary
		if aux == "" {
			aux = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			name,
			r.ProviderName,
			string(r.Category),
			cli.FormatCost(r.InputPrice),
			cli.FormatCost(r.OutputPrice),
			aux,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Model", "Provider", "Category", "In /MTok", "Out /MTok", "Auxiliary"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func modelRows(cat *catalog.Catalog, pairs catalog.Pairings, models []model.Model) []modelRow {
	out := make([]modelRow, 0, len(models))
	for _, m := range models {
		r := modelRow{Model: m}
		if aux, ok := pairs.RecommendAuxiliary(m, cat.AllModels()); ok {
			r.RecommendedAuxiliary = aux.Name
		}
		out = append(out, r)
	}
	return out
}
