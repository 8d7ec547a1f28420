package calc

import "github.com/theirongolddev/agentcost/internal/model"

// ToDetailed expands a simple-mode input into a detailed input. A non-nil
// auxModelID is copied into every optional-stage model field; with a nil
// auxModelID those fields stay nil for Resolve to fill.
func ToDetailed(in model.SimpleInput, auxModelID *int, p Presets) model.DetailedInput {
	flags := p.UseCases[in.UseCase]
	d := p.Defaults

	subAgentCalls := 0
	if flags.Orchestrator {
		subAgentCalls = d.SubAgentMaxCalls
	}
	compressionFrequency := 0
	if flags.ConversationHistory {
		compressionFrequency = d.CompressionFrequency
	}

	out := model.DetailedInput{
		MainModelID:        in.ModelID,
		AuxiliaryModelID:   copyID(auxModelID),
		DailyRequests:      in.DailyRequests,
		MonthlyWorkingDays: d.MonthlyWorkingDays,
		MaxInputChars:      lengthChars(in.InputLength, in.CustomInputChars, p.InputLengths),
		MaxOutputChars:     lengthChars(in.OutputLength, in.CustomOutputChars, p.OutputLengths),
		Language:           d.Language,
		SystemPromptChars:  d.SystemPromptChars,
		AvgTurnsPerSession: d.AvgTurnsPerSession,

		TopicClassification:        flags.TopicClassification,
		ClassificationFallbackRate: d.ClassificationFallbackRate,
		ClassificationModelID:      copyID(auxModelID),
		Orchestrator:               flags.Orchestrator,
		OrchestratorModelID:        copyID(auxModelID),
		SubAgentMaxCalls:           subAgentCalls,
		SubAgentModelID:            copyID(auxModelID),

		SemanticSearch:          flags.SemanticSearch,
		SearchChunkCount:        d.SearchChunkCount,
		SearchChunkSize:         d.SearchChunkSize,
		RerankingModelID:        copyID(auxModelID),
		ReembeddingMonthlyChars: d.ReembeddingMonthlyChars,

		ConversationHistory:  flags.ConversationHistory,
		MaxHistoryTurns:      d.MaxHistoryTurns,
		HistoryCompression:   flags.ConversationHistory,
		CompressionFrequency: compressionFrequency,
		CompressionModelID:   copyID(auxModelID),

		WebSearch:            flags.WebSearch,
		WebSearchCalls:       d.WebSearchCalls,
		WebSearchResultCount: d.WebSearchResultCount,
		SummarizationModelID: copyID(auxModelID),

		PromptCaching: d.PromptCaching,
		SafetyMargin:  d.SafetyMargin,
		Currency:      model.CurrencyUSD,
		ExchangeRate:  d.ExchangeRate,
	}
	return out
}

// lengthChars resolves a preset. Custom uses the caller's count, falling back
// to the medium preset when none was given.
func lengthChars(preset model.LengthPreset, custom *int, table map[model.LengthPreset]int) int {
	if preset == model.LengthCustom {
		if custom != nil {
			return *custom
		}
		return table[model.LengthMedium]
	}
	if n, ok := table[preset]; ok {
		return n
	}
	return table[model.LengthMedium]
}

func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
