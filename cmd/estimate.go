package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/cli"
	"github.com/theirongolddev/agentcost/internal/model"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	flagEstFile  string
	flagEstSave  bool
	flagEstModel string
	flagEstAux   string

	flagEstRequests    int
	flagEstDays        int
	flagEstInputChars  int
	flagEstOutputChars int
	flagEstLanguage    string
	flagEstPromptChars int
	flagEstTurns       int
	flagEstMargin      float64
	flagEstCaching     bool
	flagEstCurrency    string
	flagEstRate        float64

	flagEstClassification bool
	flagEstOrchestrator   bool
	flagEstSubAgentCalls  int
	flagEstRAG            bool
	flagEstReranking      bool
	flagEstHistory        bool
	flagEstHistoryTurns   int
	flagEstCompression    bool
	flagEstWebSearch      bool
	flagEstSummarize      bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate cost from a detailed scenario",
	Long: "Estimate the per-request, monthly and annual cost of a detailed scenario.\n" +
		"The scenario comes from --file (TOML, YAML or JSON) and/or flags; flags win.",
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringVarP(&flagEstFile, "file", "f", "", "Scenario file (.toml, .yaml, .json)")
	f.BoolVar(&flagEstSave, "save", false, "Add the result to saved comparisons")
	f.StringVarP(&flagEstModel, "model", "m", "", "Main model name or id")
	f.StringVar(&flagEstAux, "aux-model", "", "Auxiliary model name or id (default: recommended)")

	f.IntVarP(&flagEstRequests, "requests", "r", 0, "Requests per day")
	f.IntVar(&flagEstDays, "days", 0, "Working days per month")
	f.IntVar(&flagEstInputChars, "input-chars", 0, "Max user input chars")
	f.IntVar(&flagEstOutputChars, "output-chars", 0, "Max output chars")
	f.StringVar(&flagEstLanguage, "language", "", "Language: ja, en, mixed")
	f.IntVar(&flagEstPromptChars, "prompt-chars", 0, "System prompt chars")
	f.IntVar(&flagEstTurns, "turns", 0, "Average turns per session")
	f.Float64Var(&flagEstMargin, "margin", 0, "Safety margin percent")
	f.BoolVar(&flagEstCaching, "caching", false, "Enable prompt caching")
	f.StringVar(&flagEstCurrency, "currency", "", "Display currency: USD or JPY")
	f.Float64Var(&flagEstRate, "rate", 0, "JPY per USD")

	f.BoolVar(&flagEstClassification, "classification", false, "Enable topic classification")
	f.BoolVar(&flagEstOrchestrator, "orchestrator", false, "Enable the orchestrator")
	f.IntVar(&flagEstSubAgentCalls, "sub-agent-calls", 0, "Sub-agent calls per request")
	f.BoolVar(&flagEstRAG, "rag", false, "Enable semantic search")
	f.BoolVar(&flagEstReranking, "reranking", false, "Enable reranking of search results")
	f.BoolVar(&flagEstHistory, "history", false, "Enable conversation history")
	f.IntVar(&flagEstHistoryTurns, "history-turns", 0, "Max history turns")
	f.BoolVar(&flagEstCompression, "compression", false, "Enable history compression")
	f.BoolVar(&flagEstWebSearch, "web-search", false, "Enable web search")
	f.BoolVar(&flagEstSummarize, "summarize", false, "Summarize web search results")

	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, flagEstSave)
	if err != nil {
		return err
	}
	defer e.Close()

	applyConfigPresets(&e.presets, e.cfg)
	cat := e.source.Snapshot()

	in := baseInput(e.presets, e.cfg)
	if flagEstFile != "" {
		sc, err := loadScenario(flagEstFile, in, cat)
		if err != nil {
			return err
		}
		in = sc.DetailedInput
	}
	if err := applyEstimateFlags(cmd.Flags(), &in, func(ref string) (int, error) {
		m, err := lookupModel(cat, ref)
		return m.ID, err
	}); err != nil {
		return err
	}
	if in.MainModelID == 0 {
		return fmt.Errorf("no main model: pass --model or set main_model in the scenario")
	}
	if err := calc.ValidateDetailed(in); err != nil {
		return err
	}

	res, err := calc.Calculate(in, cat, e.pairs.RecommendAuxiliary)
	if err != nil {
		return err
	}
	e.logger.Debug("estimate calculated", "model", res.Assumptions.ModelName, "cost_per_request", res.CostPerRequest)

	var (
		entry model.ComparisonEntry
		added bool
	)
	if flagEstSave {
		if entry, added, err = e.compares.Add(ctx, res); err != nil {
			return err
		}
	}

	if flagJSON {
		return printJSON(res)
	}
	printResult(res, displayCurrency(e.cfg.Defaults.Currency, res.Assumptions.Currency), res.ExchangeRate)
	if flagEstSave {
		printSaved(entry, added)
	}
	return nil
}

// applyEstimateFlags overrides in with every flag the user set.
func applyEstimateFlags(fs *pflag.FlagSet, in *model.DetailedInput, resolve func(string) (int, error)) error {
	if fs.Changed("model") {
		id, err := resolve(flagEstModel)
		if err != nil {
			return err
		}
		in.MainModelID = id
	}
	if fs.Changed("aux-model") {
		id, err := resolve(flagEstAux)
		if err != nil {
			return err
		}
		in.AuxiliaryModelID = &id
	}

	setInt := func(name string, dst *int, v int) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	setBool := func(name string, dst *bool, v bool) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	setInt("requests", &in.DailyRequests, flagEstRequests)
	setInt("days", &in.MonthlyWorkingDays, flagEstDays)
	setInt("input-chars", &in.MaxInputChars, flagEstInputChars)
	setInt("output-chars", &in.MaxOutputChars, flagEstOutputChars)
	setInt("prompt-chars", &in.SystemPromptChars, flagEstPromptChars)
	setInt("turns", &in.AvgTurnsPerSession, flagEstTurns)
	setInt("sub-agent-calls", &in.SubAgentMaxCalls, flagEstSubAgentCalls)
	setInt("history-turns", &in.MaxHistoryTurns, flagEstHistoryTurns)
	setBool("caching", &in.PromptCaching, flagEstCaching)
	setBool("classification", &in.TopicClassification, flagEstClassification)
	setBool("orchestrator", &in.Orchestrator, flagEstOrchestrator)
	setBool("rag", &in.SemanticSearch, flagEstRAG)
	setBool("reranking", &in.Reranking, flagEstReranking)
	setBool("history", &in.ConversationHistory, flagEstHistory)
	setBool("compression", &in.HistoryCompression, flagEstCompression)
	setBool("web-search", &in.WebSearch, flagEstWebSearch)
	setBool("summarize", &in.WebSearchSummarization, flagEstSummarize)

	if fs.Changed("margin") {
		in.SafetyMargin = flagEstMargin
	}
	if fs.Changed("rate") {
		in.ExchangeRate = flagEstRate
	}
	if fs.Changed("language") {
		in.Language = model.Language(strings.ToLower(flagEstLanguage))
	}
	if fs.Changed("currency") {
		in.Currency = model.Currency(strings.ToUpper(flagEstCurrency))
	}
	return nil
}

// displayCurrency prefers the scenario's currency over the config default.
func displayCurrency(cfgCurrency string, scenario model.Currency) model.Currency {
	if scenario != "" {
		return scenario
	}
	if cfgCurrency != "" {
		return model.Currency(cfgCurrency)
	}
	return model.CurrencyUSD
}

// printResult renders a cost result as summary, steps and assumptions.
func printResult(res model.CostResult, currency model.Currency, rate float64) {
	a := res.Assumptions
	money := func(usd float64) string { return cli.FormatMoney(usd, currency, rate) }

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COST ESTIMATE  %s (%s)", a.ModelName, a.ProviderName)))
	fmt.Println()

	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Monthly", money(res.MonthlyCostUSD)},
		{"Before margin", money(res.MonthlyCostBeforeMargin)},
		{"Annual", money(res.AnnualCostUSD)},
		{"Daily", money(res.DailyCostUSD)},
		{"Per request", cli.FormatCost(res.CostPerRequest)},
		{"Safety margin", fmt.Sprintf("+%s%%", strconv.FormatFloat(res.SafetyMarginRate, 'f', -1, 64))},
		{"Tokens / request", fmt.Sprintf("%s in, %s out",
			cli.FormatNumber(res.TotalInputTokens), cli.FormatNumber(res.TotalOutputTokens))},
	}))
	if res.ReembeddingMonthlyUSD > 0 {
		fmt.Print(cli.RenderKeyValues([][2]string{{"Re-embedding / month", money(res.ReembeddingMonthlyUSD)}}))
	}
	if res.LongContextSurcharge {
		fmt.Println(cli.RenderWarning("Long-context surcharge applied (input over 200K tokens)"))
	}
	fmt.Println()

	fmt.Print(cli.RenderTable(stepsTable(res)))
	fmt.Println()

	aux := a.AuxiliaryModelName
	if aux == "" {
		aux = "(same as main model)"
	}
	options := "base configuration"
	if len(a.EnabledOptions) > 0 {
		options = strings.Join(a.EnabledOptions, ", ")
	}
	pairs := [][2]string{
		{"Auxiliary model", aux},
		{"Requests / day", cli.FormatNumber(int64(a.DailyRequests))},
		{"Working days / month", strconv.Itoa(a.MonthlyWorkingDays)},
		{"Input chars", cli.FormatNumber(int64(a.MaxInputChars))},
		{"Output chars", cli.FormatNumber(int64(a.MaxOutputChars))},
		{"Language", cli.LanguageName(a.Language)},
		{"System prompt chars", cli.FormatNumber(int64(a.SystemPromptChars))},
		{"Turns / session", strconv.Itoa(a.AvgTurnsPerSession)},
		{"Options", options},
	}
	for _, d := range a.OptionDetails {
		pairs = append(pairs, [2]string{"  " + d.Key, d.Value})
	}
	fmt.Print(cli.RenderKeyValues(pairs))
	fmt.Println()
}

// stepsTable lists each pipeline step. Monthly costs include the margin.
func stepsTable(res model.CostResult) cli.Table {
	monthlyFactor := 0.0
	if res.CostPerRequest > 0 {
		monthlyFactor = res.MonthlyCostUSD / res.CostPerRequest
	}

	rows := make([][]string, 0, len(res.Steps)+1)
	for _, s := range res.Steps {
		name := s.ModelName
		if name == "" {
			name = "-"
		}
		rows = append(rows, []string{
			s.Name,
			name,
			cli.FormatNumber(s.InputTokens),
			cli.FormatNumber(s.OutputTokens),
			cli.FormatCost(s.CostUSD),
			cli.FormatCost(s.CostUSD * monthlyFactor),
		})
	}
	rows = append(rows, []string{
		"Total", "",
		cli.FormatNumber(res.TotalInputTokens),
		cli.FormatNumber(res.TotalOutputTokens),
		cli.FormatCost(res.CostPerRequest),
		cli.FormatCost(res.MonthlyCostUSD),
	})

	return cli.Table{
		Title:   "Steps",
		Headers: []string{"Step", "Model", "In tok", "Out tok", "Per req", "Monthly"},
		Rows:    rows,
	}
}

func printSaved(entry model.ComparisonEntry, added bool) {
	if added {
		fmt.Printf("  Saved to comparisons as %s (%s)\n", shortID(entry.ID), entry.Label)
		return
	}
	fmt.Printf("  Already in comparisons as %s (%s)\n", shortID(entry.ID), entry.Label)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
