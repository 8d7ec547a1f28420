package calc

import (
	"testing"

	"github.com/theirongolddev/agentcost/internal/model"
)

func TestToDetailedUseCases(t *testing.T) {
	p := DefaultPresets()

	tests := []struct {
		useCase model.UseCase
		flags   UseCaseFlags
	}{
		{model.UseCaseSimpleQA, UseCaseFlags{}},
		{model.UseCaseKnowledgeSearch, UseCaseFlags{SemanticSearch: true}},
		{model.UseCaseCustomerSupport, UseCaseFlags{SemanticSearch: true, ConversationHistory: true, TopicClassification: true, Orchestrator: true}},
		{model.UseCaseGeneralAssistant, UseCaseFlags{SemanticSearch: true, ConversationHistory: true, WebSearch: true, TopicClassification: true, Orchestrator: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.useCase), func(t *testing.T) {
			d := ToDetailed(model.SimpleInput{
				ModelID: 1, DailyRequests: 100,
				InputLength: model.LengthMedium, OutputLength: model.LengthMedium,
				UseCase: tt.useCase,
			}, nil, p)

			got := UseCaseFlags{
				SemanticSearch:      d.SemanticSearch,
				ConversationHistory: d.ConversationHistory,
				WebSearch:           d.WebSearch,
				TopicClassification: d.TopicClassification,
				Orchestrator:        d.Orchestrator,
			}
			if got != tt.flags {
				t.Errorf("flags = %+v, want %+v", got, tt.flags)
			}
			if d.HistoryCompression != tt.flags.ConversationHistory {
				t.Errorf("HistoryCompression = %v, want %v", d.HistoryCompression, tt.flags.ConversationHistory)
			}
			wantCalls := 0
			if tt.flags.Orchestrator {
				wantCalls = 2
			}
			if d.SubAgentMaxCalls != wantCalls {
				t.Errorf("SubAgentMaxCalls = %d, want %d", d.SubAgentMaxCalls, wantCalls)
			}
		})
	}
}

func TestToDetailedDefaults(t *testing.T) {
	d := ToDetailed(model.SimpleInput{
		ModelID: 7, DailyRequests: 250,
		InputLength: model.LengthShort, OutputLength: model.LengthLong,
		UseCase: model.UseCaseSimpleQA,
	}, nil, DefaultPresets())

	if d.MainModelID != 7 || d.DailyRequests != 250 {
		t.Errorf("model/requests = %d/%d", d.MainModelID, d.DailyRequests)
	}
	if d.MaxInputChars != 200 || d.MaxOutputChars != 3000 {
		t.Errorf("chars = %d/%d, want 200/3000", d.MaxInputChars, d.MaxOutputChars)
	}
	if d.Language != model.LangJapanese || d.MonthlyWorkingDays != 20 || d.SystemPromptChars != 2000 {
		t.Errorf("defaults not applied: %+v", d)
	}
	if d.SafetyMargin != 20 || d.ExchangeRate != 150 || d.Currency != model.CurrencyUSD {
		t.Errorf("money defaults = %v/%v/%q", d.SafetyMargin, d.ExchangeRate, d.Currency)
	}
	if d.CompressionFrequency != 0 {
		t.Errorf("CompressionFrequency = %d without history, want 0", d.CompressionFrequency)
	}
	if d.AuxiliaryModelID != nil || d.ClassificationModelID != nil || d.EmbeddingModelID != nil {
		t.Error("model ids should stay nil without an auxiliary")
	}
}

func TestToDetailedAuxiliaryPropagates(t *testing.T) {
	aux := 42
	d := ToDetailed(model.SimpleInput{
		ModelID: 1, UseCase: model.UseCaseGeneralAssistant,
		InputLength: model.LengthMedium, OutputLength: model.LengthMedium,
	}, &aux, DefaultPresets())

	ids := map[string]*int{
		"auxiliary":      d.AuxiliaryModelID,
		"classification": d.ClassificationModelID,
		"orchestrator":   d.OrchestratorModelID,
		"subAgent":       d.SubAgentModelID,
		"reranking":      d.RerankingModelID,
		"compression":    d.CompressionModelID,
		"summarization":  d.SummarizationModelID,
	}
	for name, id := range ids {
		if id == nil || *id != 42 {
			t.Errorf("%s id = %v, want 42", name, id)
		}
	}

	aux = 7
	if *d.AuxiliaryModelID != 42 {
		t.Error("ToDetailed aliased the caller's auxiliary id")
	}
}

func TestToDetailedCustomLength(t *testing.T) {
	p := DefaultPresets()

	d := ToDetailed(model.SimpleInput{
		InputLength: model.LengthCustom, CustomInputChars: ptr(4321),
		OutputLength: model.LengthCustom,
		UseCase:      model.UseCaseSimpleQA,
	}, nil, p)
	if d.MaxInputChars != 4321 {
		t.Errorf("custom input = %d, want 4321", d.MaxInputChars)
	}
	if d.MaxOutputChars != 1500 {
		t.Errorf("custom output without chars = %d, want medium 1500", d.MaxOutputChars)
	}

	d = ToDetailed(model.SimpleInput{InputLength: "huge", OutputLength: model.LengthShort}, nil, p)
	if d.MaxInputChars != 1000 || d.MaxOutputChars != 500 {
		t.Errorf("chars = %d/%d, want 1000/500", d.MaxInputChars, d.MaxOutputChars)
	}
}
