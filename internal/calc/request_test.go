package calc

import (
	"testing"

	"github.com/theirongolddev/agentcost/internal/model"
)

func baseInput(m model.Model) model.RequestCostInput {
	return model.RequestCostInput{
		MainModel:         m,
		Language:          model.LangJapanese,
		SystemPromptChars: 2000,
		MaxInputChars:     1000,
		MaxOutputChars:    1500,
	}
}

func TestCalcRequestCostBaseline(t *testing.T) {
	rc := CalcRequestCost(baseInput(gpt41))

	if len(rc.Steps) != 1 || rc.Steps[0].Name != StageMainAgent {
		t.Fatalf("steps = %+v, want main agent only", rc.Steps)
	}
	if rc.TotalInputTokens != 4500 || rc.TotalOutputTokens != 2250 {
		t.Errorf("tokens = %d/%d, want 4500/2250", rc.TotalInputTokens, rc.TotalOutputTokens)
	}
	approx(t, "CostPerRequest", rc.CostPerRequest, 0.027)
	if rc.LongContextSurcharge {
		t.Error("unexpected long-context surcharge")
	}
}

func allOptions(m model.Model) model.RequestCostInput {
	in := baseInput(m)
	in.TopicClassification = true
	in.ClassificationFallbackRate = 20
	in.ClassificationModel = &gpt41Mini
	in.Orchestrator = true
	in.OrchestratorModel = &gpt41Mini
	in.SubAgentMaxCalls = 2
	in.SubAgentModel = &m
	in.SemanticSearch = true
	in.SearchChunkCount = 5
	in.SearchChunkSize = 500
	in.EmbeddingModel = &embSmall
	in.Reranking = true
	in.RerankingModel = &gpt41Mini
	in.ConversationHistory = true
	in.MaxHistoryTurns = 10
	in.HistoryCompression = true
	in.CompressionFrequency = 5
	in.CompressionModel = &gpt41Mini
	in.WebSearch = true
	in.WebSearchTool = &webTool
	in.WebSearchCalls = 1
	in.WebSearchResultCount = 3
	in.WebSearchSummarization = true
	in.SummarizationModel = &gpt41Mini
	return in
}

func TestCalcRequestCostStepOrder(t *testing.T) {
	rc := CalcRequestCost(allOptions(gpt41))

	want := []string{
		StageClassification, StageOrchestrator, StageSemanticSearch, StageWebSearch,
		StageHistory, StageMainAgent, StageSubAgent, StageCompression,
	}
	if len(rc.Steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(rc.Steps), len(want))
	}
	for i, name := range want {
		if rc.Steps[i].Name != name {
			t.Errorf("step %d = %q, want %q", i, rc.Steps[i].Name, name)
		}
	}

	var sum float64
	var in, out int64
	for _, s := range rc.Steps {
		if s.CostUSD < 0 {
			t.Errorf("%s has negative cost %v", s.Name, s.CostUSD)
		}
		sum += s.CostUSD
		in += s.InputTokens
		out += s.OutputTokens
	}
	approx(t, "CostPerRequest", rc.CostPerRequest, sum)
	if rc.TotalInputTokens != in || rc.TotalOutputTokens != out {
		t.Errorf("totals = %d/%d, want %d/%d", rc.TotalInputTokens, rc.TotalOutputTokens, in, out)
	}

	main := rc.Steps[5]
	if main.InputTokens != 4500+18750+3750+9000 {
		t.Errorf("main agent input = %d, want history, chunk and web tokens added", main.InputTokens)
	}
}

func TestCalcRequestCostSearchWithoutModelsStillFeedsTokens(t *testing.T) {
	in := baseInput(gpt41)
	in.SemanticSearch = true
	in.SearchChunkCount = 2
	in.SearchChunkSize = 1000

	rc := CalcRequestCost(in)
	if len(rc.Steps) != 2 || rc.Steps[0].Name != StageSemanticSearch {
		t.Fatalf("steps = %+v, want search then main agent", rc.Steps)
	}
	if rc.Steps[0].CostUSD != 0 {
		t.Errorf("search cost = %v, want 0 without models", rc.Steps[0].CostUSD)
	}
	if rc.Steps[1].InputTokens != 4500+3000 {
		t.Errorf("main input = %d, want 7500", rc.Steps[1].InputTokens)
	}
}

func longContextInput(m model.Model) model.RequestCostInput {
	in := model.RequestCostInput{
		MainModel:           m,
		Language:            model.LangJapanese,
		SystemPromptChars:   50000,
		MaxInputChars:       3000,
		MaxOutputChars:      3000,
		SemanticSearch:      true,
		SearchChunkCount:    20,
		SearchChunkSize:     2000,
		ConversationHistory: true,
		MaxHistoryTurns:     20,
	}
	return in
}

func TestLongContextSurcharge(t *testing.T) {
	openAI := sonnet
	openAI.ProviderName = "OpenAI"
	google := sonnet
	google.ProviderName = "Google"

	// 75000 sys + 4500 user + 90000 history + 60000 chunks = 229500 input tokens
	const base = 229500.0/1e6*3.0 + 4500.0/1e6*15.0

	tests := []struct {
		name      string
		m         model.Model
		surcharge bool
	}{
		{"anthropic", sonnet, true},
		{"google", google, true},
		{"openai", openAI, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := CalcRequestCost(longContextInput(tt.m))
			if rc.LongContextSurcharge != tt.surcharge {
				t.Fatalf("LongContextSurcharge = %v, want %v", rc.LongContextSurcharge, tt.surcharge)
			}

			var main model.StepCost
			for _, s := range rc.Steps {
				if s.Name == StageMainAgent {
					main = s
				}
			}
			if main.InputTokens != 229500 {
				t.Fatalf("main input = %d, want 229500", main.InputTokens)
			}
			want := base
			if tt.surcharge {
				want *= 2
			}
			approx(t, "main cost", main.CostUSD, want)
		})
	}
}

func TestLongContextSurchargeThresholdIsExclusive(t *testing.T) {
	in := baseInput(sonnet)
	in.SystemPromptChars = 0
	in.MaxInputChars = 0
	in.SemanticSearch = true
	in.SearchChunkCount = 1
	in.SearchChunkSize = 200_000 * 4 // en: 0.25 tokens per char
	in.Language = model.LangEnglish

	rc := CalcRequestCost(in)
	if rc.LongContextSurcharge {
		t.Error("surcharge applied at exactly 200000 tokens")
	}
}

func TestLongContextSurchargeModelOverride(t *testing.T) {
	exempt := sonnet
	exempt.LongContextSurcharge = ptr(false)
	if CalcRequestCost(longContextInput(exempt)).LongContextSurcharge {
		t.Error("model flag false did not exempt an Anthropic model")
	}

	forced := gpt41
	forced.LongContextSurcharge = ptr(true)
	if !CalcRequestCost(longContextInput(forced)).LongContextSurcharge {
		t.Error("model flag true did not surcharge an OpenAI model")
	}
}

func TestPromptCachingNeverCostsMore(t *testing.T) {
	for _, m := range []model.Model{gpt41, gpt41Mini, sonnet} {
		for _, sys := range []int{0, 500, 2000, 50000} {
			in := allOptions(m)
			in.SystemPromptChars = sys

			off := CalcRequestCost(in)
			in.PromptCaching = true
			on := CalcRequestCost(in)

			if on.CostPerRequest > off.CostPerRequest+1e-12 {
				t.Errorf("%s sys=%d: caching %v > no caching %v", m.Name, sys, on.CostPerRequest, off.CostPerRequest)
			}
		}
	}
}

func TestHistoryTurnsIncreaseCost(t *testing.T) {
	in := baseInput(gpt41)
	in.ConversationHistory = true

	prev := -1.0
	for turns := 2; turns <= 20; turns += 2 {
		in.MaxHistoryTurns = turns
		cost := CalcRequestCost(in).CostPerRequest
		if cost <= prev {
			t.Fatalf("turns=%d cost %v not above previous %v", turns, cost, prev)
		}
		prev = cost
	}
}
