package calc

import "github.com/theirongolddev/agentcost/internal/model"

// UseCaseFlags are the optional stages a use case turns on.
type UseCaseFlags struct {
	SemanticSearch      bool
	ConversationHistory bool
	WebSearch           bool
	TopicClassification bool
	Orchestrator        bool
}

// SimpleDefaults fills every detailed field simple mode does not ask for.
type SimpleDefaults struct {
	Language                   model.Language
	MonthlyWorkingDays         int
	SystemPromptChars          int
	AvgTurnsPerSession         int
	SearchChunkCount           int
	SearchChunkSize            int
	ReembeddingMonthlyChars    int
	MaxHistoryTurns            int
	CompressionFrequency       int
	WebSearchCalls             int
	WebSearchResultCount       int
	ClassificationFallbackRate float64
	SubAgentMaxCalls           int
	PromptCaching              bool
	SafetyMargin               float64
	ExchangeRate               float64
}

// Presets bundles the lookup tables the mode adapter reads.
type Presets struct {
	UseCases      map[model.UseCase]UseCaseFlags
	InputLengths  map[model.LengthPreset]int
	OutputLengths map[model.LengthPreset]int
	Defaults      SimpleDefaults
}

// DefaultPresets returns fresh copies of the built-in tables.
func DefaultPresets() Presets {
	return Presets{
		UseCases: map[model.UseCase]UseCaseFlags{
			model.UseCaseSimpleQA:        {},
			model.UseCaseKnowledgeSearch: {SemanticSearch: true},
			model.UseCaseCustomerSupport: {
				SemanticSearch:      true,
				ConversationHistory: true,
				TopicClassification: true,
				Orchestrator:        true,
			},
			model.UseCaseGeneralAssistant: {
				SemanticSearch:      true,
				ConversationHistory: true,
				WebSearch:           true,
				TopicClassification: true,
				Orchestrator:        true,
			},
		},
		InputLengths: map[model.LengthPreset]int{
			model.LengthShort:  200,
			model.LengthMedium: 1000,
			model.LengthLong:   3000,
		},
		OutputLengths: map[model.LengthPreset]int{
			model.LengthShort:  500,
			model.LengthMedium: 1500,
			model.LengthLong:   3000,
		},
		Defaults: SimpleDefaults{
			Language:                   model.LangJapanese,
			MonthlyWorkingDays:         20,
			SystemPromptChars:          2000,
			AvgTurnsPerSession:         5,
			SearchChunkCount:           5,
			SearchChunkSize:            500,
			ReembeddingMonthlyChars:    0,
			MaxHistoryTurns:            10,
			CompressionFrequency:       5,
			WebSearchCalls:             1,
			WebSearchResultCount:       3,
			ClassificationFallbackRate: 20,
			SubAgentMaxCalls:           2,
			PromptCaching:              false,
			SafetyMargin:               20,
			ExchangeRate:               150,
		},
	}
}
