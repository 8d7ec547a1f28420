package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/catalog"
	"github.com/theirongolddev/agentcost/internal/config"
	"github.com/theirongolddev/agentcost/internal/model"
)

func testBase() model.DetailedInput {
	return baseInput(calc.DefaultPresets(), config.DefaultConfig())
}

func TestBaseInputUsesPresetDefaults(t *testing.T) {
	in := testBase()
	if in.DailyRequests != 100 || in.MonthlyWorkingDays != 20 {
		t.Errorf("requests/days = %d/%d, want 100/20", in.DailyRequests, in.MonthlyWorkingDays)
	}
	if in.MaxInputChars != 1000 || in.MaxOutputChars != 1500 {
		t.Errorf("chars = %d/%d, want medium presets 1000/1500", in.MaxInputChars, in.MaxOutputChars)
	}
	if in.Currency != model.CurrencyUSD || in.Language != model.LangJapanese {
		t.Errorf("currency/language = %s/%s", in.Currency, in.Language)
	}
	if in.SemanticSearch || in.WebSearch || in.Orchestrator {
		t.Error("optional stages should start disabled")
	}
	if err := calc.ValidateDetailed(in); err != nil {
		t.Errorf("base input should validate: %v", err)
	}
}

func TestApplyConfigPresets(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.Language = "en"
	cfg.Defaults.MonthlyWorkingDays = 22
	cfg.Defaults.SafetyMarginPercent = 10
	cfg.Defaults.ExchangeRate = 140
	cfg.Defaults.PromptCaching = true

	p := calc.DefaultPresets()
	applyConfigPresets(&p, cfg)

	d := p.Defaults
	if d.Language != model.LangEnglish || d.MonthlyWorkingDays != 22 || d.SafetyMargin != 10 ||
		d.ExchangeRate != 140 || !d.PromptCaching {
		t.Errorf("defaults not applied: %+v", d)
	}
}

func TestDecodeScenarioFormats(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"s.toml", "main_model = \"GPT-4.1\"\ndaily_requests = 500\nsemantic_search = true\n\n[growth]\nmode = \"monthlyRate\"\nmonthly_growth_rate = 10\n"},
		{"s.yaml", "main_model: GPT-4.1\ndaily_requests: 500\nsemantic_search: true\ngrowth:\n  mode: monthlyRate\n  monthly_growth_rate: 10\n"},
		{"s.json", `{"mainModel": "GPT-4.1", "dailyRequests": 500, "semanticSearchEnabled": true, "growth": {"mode": "monthlyRate", "monthlyGrowthRate": 10}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := decodeScenario(tt.name, []byte(tt.data), testBase())
			if err != nil {
				t.Fatalf("decodeScenario: %v", err)
			}
			if sc.MainModel != "GPT-4.1" {
				t.Errorf("MainModel = %q", sc.MainModel)
			}
			if sc.DailyRequests != 500 || !sc.SemanticSearch {
				t.Errorf("requests=%d rag=%v", sc.DailyRequests, sc.SemanticSearch)
			}
			// Fields absent from the file keep the base values.
			if sc.MonthlyWorkingDays != 20 || sc.MaxOutputChars != 1500 {
				t.Errorf("base values lost: days=%d out=%d", sc.MonthlyWorkingDays, sc.MaxOutputChars)
			}
			if sc.Growth == nil || sc.Growth.Mode != model.GrowthMonthlyRate || sc.Growth.MonthlyGrowthRate != 10 {
				t.Errorf("growth = %+v", sc.Growth)
			}
		})
	}
}

func TestDecodeScenarioRejects(t *testing.T) {
	if _, err := decodeScenario("s.ini", []byte("x=1"), testBase()); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := decodeScenario("s.json", []byte(`{"dailyRequestz": 5}`), testBase()); err == nil {
		t.Error("expected error for unknown JSON field")
	}
	if _, err := decodeScenario("s.yaml", []byte("daily_requests: [1"), testBase()); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadScenarioBindsModels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := "main_model: gpt-5.2\nauxiliary_model: \"3\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cat := catalog.Seed()
	sc, err := loadScenario(path, testBase(), cat)
	if err != nil {
		t.Fatalf("loadScenario: %v", err)
	}
	if sc.MainModelID != 1 {
		t.Errorf("MainModelID = %d, want 1 (GPT-5.2)", sc.MainModelID)
	}
	if sc.AuxiliaryModelID == nil || *sc.AuxiliaryModelID != 3 {
		t.Errorf("AuxiliaryModelID = %v, want 3", sc.AuxiliaryModelID)
	}

	res, err := calc.Calculate(sc.DetailedInput, cat, catalog.DefaultPairings().RecommendAuxiliary)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Assumptions.ModelName != "GPT-5.2" {
		t.Errorf("ModelName = %q", res.Assumptions.ModelName)
	}
}

func TestLookupModel(t *testing.T) {
	cat := catalog.Seed()

	m, err := lookupModel(cat, "1")
	if err != nil || m.Name != "GPT-5.2" {
		t.Errorf("by id: %v %q", err, m.Name)
	}
	m, err = lookupModel(cat, "GPT-5.2")
	if err != nil || m.ID != 1 {
		t.Errorf("by name: %v %d", err, m.ID)
	}
	m, err = lookupModel(cat, " gpt-5.2 ")
	if err != nil || m.ID != 1 {
		t.Errorf("case-insensitive: %v %d", err, m.ID)
	}

	if _, err := lookupModel(cat, "no such model"); !errors.Is(err, calc.ErrUnknownModel) {
		t.Errorf("unknown name: err = %v, want ErrUnknownModel", err)
	}
	if _, err := lookupModel(cat, "9999"); !errors.Is(err, calc.ErrUnknownModel) {
		t.Errorf("unknown id: err = %v, want ErrUnknownModel", err)
	}
}

func TestParseMultipliers(t *testing.T) {
	got, err := parseMultipliers("1, 1.2,1.5")
	if err != nil {
		t.Fatalf("parseMultipliers: %v", err)
	}
	want := []float64{1, 1.2, 1.5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	for _, bad := range []string{"1,x", "1,-2", "1,1,1,1,1,1,1,1,1,1,1,1,1"} {
		if _, err := parseMultipliers(bad); err == nil {
			t.Errorf("parseMultipliers(%q) should fail", bad)
		}
	}
}

func TestParseFactorLevels(t *testing.T) {
	est, err := parseFactorLevels([]string{"a1Guardrails=high", "b2FewShotExamples= medium"})
	if err != nil {
		t.Fatalf("parseFactorLevels: %v", err)
	}
	if est[model.FactorGuardrails] != model.LevelHigh || est[model.FactorFewShotExamples] != model.LevelMedium {
		t.Errorf("est = %v", est)
	}
	if got := calc.EstimateSystemPromptChars(est); got <= calc.BasePromptChars {
		t.Errorf("chars = %d, want more than the base", got)
	}

	for _, bad := range [][]string{{"a1Guardrails"}, {"zzFactor=low"}, {"a1Guardrails=huge"}} {
		if _, err := parseFactorLevels(bad); err == nil {
			t.Errorf("parseFactorLevels(%v) should fail", bad)
		}
	}
}
