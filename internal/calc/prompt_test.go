package calc

import (
	"testing"

	"github.com/theirongolddev/agentcost/internal/model"
)

func TestEstimateSystemPromptChars(t *testing.T) {
	allAt := func(l model.Level) model.SystemPromptEstimation {
		est := model.SystemPromptEstimation{}
		for _, f := range model.Factors() {
			est[f] = l
		}
		return est
	}

	tests := []struct {
		name string
		est  model.SystemPromptEstimation
		want int
	}{
		{"empty", model.SystemPromptEstimation{}, 200},
		{"all none", allAt(model.LevelNone), 200},
		{"all high", allAt(model.LevelHigh), 20100},
		{
			name: "mixed",
			est: model.SystemPromptEstimation{
				model.FactorGuardrails:      model.LevelHigh,
				model.FactorFewShotExamples: model.LevelMedium,
				model.FactorResponseLength:  model.LevelLow,
			},
			want: 200 + 1500 + 1000 + 50,
		},
		{"unknown factor ignored", model.SystemPromptEstimation{"z9Unknown": model.LevelHigh}, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateSystemPromptChars(tt.est); got != tt.want {
				t.Errorf("EstimateSystemPromptChars() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimationTableCoversEveryFactor(t *testing.T) {
	table := DefaultEstimationTable()
	for _, f := range model.Factors() {
		lc, ok := table[f]
		if !ok {
			t.Errorf("factor %s missing from table", f)
			continue
		}
		if lc.None != 0 || lc.Low > lc.Medium || lc.Medium > lc.High {
			t.Errorf("factor %s levels not ordered: %+v", f, lc)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := model.ParseLevel("medium"); err != nil || l != model.LevelMedium {
		t.Errorf("ParseLevel(medium) = %q, %v", l, err)
	}
	if _, err := model.ParseLevel("extreme"); err == nil {
		t.Error("ParseLevel(extreme) returned nil error")
	}
}
