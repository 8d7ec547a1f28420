package calc

import "github.com/theirongolddev/agentcost/internal/model"

// LongContextThreshold is the main-agent input size above which surcharging
// providers bill at twice the normal rate.
const LongContextThreshold = 200_000

// RequestCost is the per-request half of a CostResult.
type RequestCost struct {
	CostPerRequest       float64
	Steps                []model.StepCost
	TotalInputTokens     int64
	TotalOutputTokens    int64
	LongContextSurcharge bool
}

// SurchargesLongContext reports whether m is billed 2x above the long-context
// threshold. An explicit per-model flag wins; otherwise Anthropic and Google
// models surcharge and every other provider is exempt.
func SurchargesLongContext(m model.Model) bool {
	if m.LongContextSurcharge != nil {
		return *m.LongContextSurcharge
	}
	return m.ProviderName == "Anthropic" || m.ProviderName == "Google"
}

// CalcRequestCost prices one request through every enabled stage. Missing
// optional models collapse their stage to zero; it never fails.
func CalcRequestCost(in model.RequestCostInput) RequestCost {
	classification := ClassificationCost(in.TopicClassification, in.ClassificationFallbackRate,
		in.ClassificationModel, in.EmbeddingModel, in.Language, in.MaxInputChars)

	orchestrator := OrchestratorCost(in.Orchestrator, in.OrchestratorModel,
		in.Language, in.MaxInputChars, in.MaxOutputChars)

	search := SemanticSearchCost(in.SemanticSearch, in.SearchChunkCount, in.SearchChunkSize,
		in.EmbeddingModel, in.Reranking, in.RerankingModel, in.Language, in.MaxInputChars)

	web := WebSearchCost(in.WebSearch, in.WebSearchTool, in.WebSearchCalls, in.WebSearchResultCount,
		in.WebSearchSummarization, in.SummarizationModel, in.Language)

	history := HistoryCost(in.ConversationHistory, in.MaxHistoryTurns,
		in.Language, in.MaxInputChars, in.MaxOutputChars)

	main := MainAgentCost(in.MainModel, in.Language, in.SystemPromptChars, in.MaxInputChars, in.MaxOutputChars,
		history.InputTokens, search.InputTokens, web.InputTokens, in.PromptCaching)

	surcharge := false
	if main.InputTokens > LongContextThreshold && SurchargesLongContext(in.MainModel) {
		main.CostUSD *= 2
		surcharge = true
	}

	subAgent := SubAgentCost(in.SubAgentMaxCalls, in.SubAgentModel,
		in.Language, in.MaxInputChars, in.MaxOutputChars)

	compression := CompressionCost(in.HistoryCompression, in.CompressionFrequency, in.CompressionModel,
		in.Language, in.MaxInputChars, in.MaxOutputChars, in.MaxHistoryTurns)

	steps := make([]model.StepCost, 0, 8)
	if classification.CostUSD > 0 {
		steps = append(steps, classification)
	}
	if orchestrator.CostUSD > 0 {
		steps = append(steps, orchestrator)
	}
	if in.SemanticSearch {
		steps = append(steps, search)
	}
	if in.WebSearch {
		steps = append(steps, web)
	}
	if history.InputTokens > 0 {
		steps = append(steps, history)
	}
	steps = append(steps, main)
	if subAgent.CostUSD > 0 {
		steps = append(steps, subAgent)
	}
	if compression.CostUSD > 0 {
		steps = append(steps, compression)
	}

	rc := RequestCost{Steps: steps, LongContextSurcharge: surcharge}
	for _, s := range steps {
		rc.CostPerRequest += s.CostUSD
		rc.TotalInputTokens += s.InputTokens
		rc.TotalOutputTokens += s.OutputTokens
	}
	return rc
}
