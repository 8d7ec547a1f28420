package cmd

import (
	"fmt"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/cli"
	"github.com/theirongolddev/agentcost/internal/model"

	"github.com/spf13/cobra"
)

var flagPromptSet []string

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Estimate system prompt size from design factors",
	Long: "Estimate system prompt chars from up to twenty design factors, each\n" +
		"none, low, medium or high. Unset factors count as none.\n\n" +
		"  agentcost prompt --set a1Guardrails=high,b2FewShotExamples=medium",
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().StringSliceVar(&flagPromptSet, "set", nil, "factor=level pairs")
	rootCmd.AddCommand(promptCmd)
}

type promptEstimate struct {
	SystemPromptChars int                          `json:"systemPromptChars"`
	Factors           model.SystemPromptEstimation `json:"factors"`
}

func runPrompt(_ *cobra.Command, _ []string) error {
	est, err := parseFactorLevels(flagPromptSet)
	if err != nil {
		return err
	}
	table := calc.DefaultEstimationTable()
	chars := table.Estimate(est)

	if flagJSON {
		return printJSON(promptEstimate{SystemPromptChars: chars, Factors: est})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SYSTEM PROMPT ESTIMATE"))
	fmt.Println()

	rows := [][]string{{"base", "-", cli.FormatNumber(calc.BasePromptChars)}}
	for _, f := range model.Factors() {
		lvl, ok := est[f]
		if !ok || lvl == model.LevelNone {
			continue
		}
		rows = append(rows, []string{string(f), string(lvl),
			cli.FormatNumber(int64(table.Estimate(model.SystemPromptEstimation{f: lvl}) - calc.BasePromptChars))})
	}
	rows = append(rows, []string{"Total", "", cli.FormatNumber(int64(chars))})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Factor", "Level", "Chars"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
