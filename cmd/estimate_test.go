package cmd

import (
	"testing"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/catalog"
	"github.com/theirongolddev/agentcost/internal/model"
)

func TestApplyEstimateFlags(t *testing.T) {
	fs := estimateCmd.Flags()
	if err := fs.Parse([]string{
		"--model", "Claude Sonnet 4.5",
		"--requests", "250",
		"--rag",
		"--language", "EN",
		"--currency", "jpy",
		"--margin", "0",
	}); err != nil {
		t.Fatal(err)
	}

	cat := catalog.Seed()
	in := testBase()
	err := applyEstimateFlags(fs, &in, func(ref string) (int, error) {
		m, err := lookupModel(cat, ref)
		return m.ID, err
	})
	if err != nil {
		t.Fatalf("applyEstimateFlags: %v", err)
	}

	sonnet, _ := cat.ModelByName("Claude Sonnet 4.5")
	if in.MainModelID != sonnet.ID {
		t.Errorf("MainModelID = %d, want %d", in.MainModelID, sonnet.ID)
	}
	if in.DailyRequests != 250 || !in.SemanticSearch {
		t.Errorf("requests=%d rag=%v", in.DailyRequests, in.SemanticSearch)
	}
	if in.Language != model.LangEnglish || in.Currency != model.CurrencyJPY {
		t.Errorf("language/currency = %s/%s", in.Language, in.Currency)
	}
	if in.SafetyMargin != 0 {
		t.Errorf("SafetyMargin = %v, want explicit 0", in.SafetyMargin)
	}
	// Unset flags leave the base alone.
	if in.MonthlyWorkingDays != 20 || in.WebSearch {
		t.Errorf("unset flags changed input: days=%d web=%v", in.MonthlyWorkingDays, in.WebSearch)
	}
}

func TestStepsTableScalesMonthlyWithMargin(t *testing.T) {
	in := testBase()
	in.MainModelID = 1
	in.SemanticSearch = true

	res, err := calc.Calculate(in, catalog.Seed(), catalog.DefaultPairings().RecommendAuxiliary)
	if err != nil {
		t.Fatal(err)
	}

	tbl := stepsTable(res)
	if len(tbl.Rows) != len(res.Steps)+1 {
		t.Fatalf("rows = %d, want steps+total = %d", len(tbl.Rows), len(res.Steps)+1)
	}
	total := tbl.Rows[len(tbl.Rows)-1]
	if total[0] != "Total" {
		t.Errorf("last row = %v", total)
	}
	for _, row := range tbl.Rows {
		if len(row) != len(tbl.Headers) {
			t.Errorf("row %v has %d cells, want %d", row, len(row), len(tbl.Headers))
		}
	}
}

func TestDisplayCurrency(t *testing.T) {
	if got := displayCurrency("JPY", model.CurrencyUSD); got != model.CurrencyUSD {
		t.Errorf("scenario currency should win, got %s", got)
	}
	if got := displayCurrency("JPY", ""); got != model.CurrencyJPY {
		t.Errorf("config currency fallback, got %s", got)
	}
	if got := displayCurrency("", ""); got != model.CurrencyUSD {
		t.Errorf("default USD, got %s", got)
	}
}

func TestSimpleInputFromFlags(t *testing.T) {
	flagSimpleRequests = 300
	flagSimpleInput = "custom"
	flagSimpleOutput = "Long"
	flagSimpleInputChars = 750
	flagSimpleOutputChars = 0
	flagSimpleUseCase = string(model.UseCaseKnowledgeSearch)
	t.Cleanup(func() {
		flagSimpleRequests = 100
		flagSimpleInput = string(model.LengthMedium)
		flagSimpleOutput = string(model.LengthMedium)
		flagSimpleInputChars = 0
		flagSimpleUseCase = string(model.UseCaseSimpleQA)
	})

	in := simpleInputFromFlags(1)
	if in.InputLength != model.LengthCustom || in.CustomInputChars == nil || *in.CustomInputChars != 750 {
		t.Errorf("input = %s %v", in.InputLength, in.CustomInputChars)
	}
	if in.OutputLength != model.LengthLong || in.CustomOutputChars != nil {
		t.Errorf("output = %s %v", in.OutputLength, in.CustomOutputChars)
	}
	if err := calc.ValidateSimple(in, calc.DefaultPresets()); err != nil {
		t.Errorf("ValidateSimple: %v", err)
	}
}
