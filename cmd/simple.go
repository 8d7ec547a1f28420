package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/model"
	"github.com/theirongolddev/agentcost/internal/tui"

	"github.com/spf13/cobra"
)

var (
	flagSimpleModel       string
	flagSimpleRequests    int
	flagSimpleInput       string
	flagSimpleOutput      string
	flagSimpleInputChars  int
	flagSimpleOutputChars int
	flagSimpleUseCase     string
	flagSimpleInteractive bool
	flagSimpleSave        bool
)

var simpleCmd = &cobra.Command{
	Use:   "simple",
	Short: "Quick estimate from five answers",
	Long: "Quick estimate from a model, daily requests, input and output length,\n" +
		"and a use case preset. Use --interactive for a guided form.",
	RunE: runSimple,
}

func init() {
	f := simpleCmd.Flags()
	f.StringVarP(&flagSimpleModel, "model", "m", "", "Main model name or id")
	f.IntVarP(&flagSimpleRequests, "requests", "r", 100, "Requests per day")
	f.StringVar(&flagSimpleInput, "input", string(model.LengthMedium), "Input length: short, medium, long, custom")
	f.StringVar(&flagSimpleOutput, "output", string(model.LengthMedium), "Output length: short, medium, long, custom")
	f.IntVar(&flagSimpleInputChars, "input-chars", 0, "Input chars when --input=custom")
	f.IntVar(&flagSimpleOutputChars, "output-chars", 0, "Output chars when --output=custom")
	f.StringVarP(&flagSimpleUseCase, "use-case", "u", string(model.UseCaseSimpleQA),
		"Use case: simpleQA, knowledgeSearch, customerSupport, generalAssistant")
	f.BoolVarP(&flagSimpleInteractive, "interactive", "i", false, "Answer the questions in a form")
	f.BoolVar(&flagSimpleSave, "save", false, "Add the result to saved comparisons")

	rootCmd.AddCommand(simpleCmd)
}

func runSimple(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, flagSimpleSave)
	if err != nil {
		return err
	}
	defer e.Close()

	applyConfigPresets(&e.presets, e.cfg)
	cat := e.source.Snapshot()

	var in model.SimpleInput
	if flagSimpleInteractive {
		vals := tui.DefaultFormValues(cat.MainModels(e.pairs))
		if err := tui.NewSimpleForm(cat.MainModels(e.pairs), vals).Run(); err != nil {
			return fmt.Errorf("form: %w", err)
		}
		if in, err = vals.Input(); err != nil {
			return err
		}
	} else {
		if flagSimpleModel == "" {
			return fmt.Errorf("--model is required (or use --interactive)")
		}
		m, err := lookupModel(cat, flagSimpleModel)
		if err != nil {
			return err
		}
		in = simpleInputFromFlags(m.ID)
	}

	if err := calc.ValidateSimple(in, e.presets); err != nil {
		return err
	}
	res, err := calc.CalculateSimple(in, cat, e.pairs.RecommendAuxiliary, e.presets)
	if err != nil {
		return err
	}

	var (
		entry model.ComparisonEntry
		added bool
	)
	if flagSimpleSave {
		if entry, added, err = e.compares.Add(ctx, res); err != nil {
			return err
		}
	}

	if flagJSON {
		return printJSON(res)
	}
	printResult(res, displayCurrency(e.cfg.Defaults.Currency, ""), res.ExchangeRate)
	if flagSimpleSave {
		printSaved(entry, added)
	}
	return nil
}

func simpleInputFromFlags(modelID int) model.SimpleInput {
	in := model.SimpleInput{
		ModelID:       modelID,
		DailyRequests: flagSimpleRequests,
		InputLength:   model.LengthPreset(strings.ToLower(flagSimpleInput)),
		OutputLength:  model.LengthPreset(strings.ToLower(flagSimpleOutput)),
		UseCase:       model.UseCase(flagSimpleUseCase),
	}
	// An unset custom count falls back to the medium preset.
	if in.InputLength == model.LengthCustom && flagSimpleInputChars > 0 {
		n := flagSimpleInputChars
		in.CustomInputChars = &n
	}
	if in.OutputLength == model.LengthCustom && flagSimpleOutputChars > 0 {
		n := flagSimpleOutputChars
		in.CustomOutputChars = &n
	}
	return in
}
