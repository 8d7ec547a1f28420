package calc

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/agentcost/internal/model"
)

// ErrUnknownModel is returned when the main model id is not in the catalog.
var ErrUnknownModel = errors.New("unknown model")

// MasterData is the read side of the model catalog.
type MasterData interface {
	Model(id int) (model.Model, bool)
	Embedding(id int) (model.EmbeddingModel, bool)
	WebSearchTool(id int) (model.WebSearchTool, bool)
	DefaultEmbedding() (model.EmbeddingModel, bool)
	DefaultWebSearchTool() (model.WebSearchTool, bool)
	AllModels() []model.Model
}

// AuxiliaryFunc recommends a cheaper model to pair with main.
type AuxiliaryFunc func(main model.Model, models []model.Model) (model.Model, bool)

// Resolution is a detailed input bound to concrete catalog records.
type Resolution struct {
	Input     model.RequestCostInput
	Main      model.Model
	Auxiliary model.Model
	// AuxiliaryDistinct is false when the auxiliary fell back to the main model.
	AuxiliaryDistinct bool
}

// Resolve binds every id in a detailed input to a catalog record. The
// auxiliary model is the explicit one if found, else the recommendation,
// else the main model. Step models default to the auxiliary, except the
// sub-agent which defaults to the main model. Nil embedding and web-search
// ids take the first catalog entry.
func Resolve(in model.DetailedInput, md MasterData, recommend AuxiliaryFunc) (Resolution, error) {
	main, ok := md.Model(in.MainModelID)
	if !ok {
		return Resolution{}, unknownMain(in.MainModelID)
	}

	aux, auxFound := model.Model{}, false
	if in.AuxiliaryModelID != nil {
		aux, auxFound = md.Model(*in.AuxiliaryModelID)
	}
	if !auxFound && recommend != nil {
		aux, auxFound = recommend(main, md.AllModels())
	}
	if !auxFound {
		aux = main
	}

	stepModel := func(id *int, fallback model.Model) *model.Model {
		if id != nil {
			if m, ok := md.Model(*id); ok {
				return &m
			}
		}
		m := fallback
		return &m
	}

	var emb *model.EmbeddingModel
	if in.EmbeddingModelID == nil {
		if e, ok := md.DefaultEmbedding(); ok {
			emb = &e
		}
	} else if e, ok := md.Embedding(*in.EmbeddingModelID); ok {
		emb = &e
	}

	var tool *model.WebSearchTool
	if in.WebSearchToolID == nil {
		if w, ok := md.DefaultWebSearchTool(); ok {
			tool = &w
		}
	} else if w, ok := md.WebSearchTool(*in.WebSearchToolID); ok {
		tool = &w
	}

	rci := model.RequestCostInput{
		MainModel:          main,
		Language:           in.Language,
		SystemPromptChars:  in.SystemPromptChars,
		MaxInputChars:      in.MaxInputChars,
		MaxOutputChars:     in.MaxOutputChars,
		AvgTurnsPerSession: in.AvgTurnsPerSession,

		TopicClassification:        in.TopicClassification,
		ClassificationFallbackRate: in.ClassificationFallbackRate,
		ClassificationModel:        stepModel(in.ClassificationModelID, aux),

		Orchestrator:      in.Orchestrator,
		OrchestratorModel: stepModel(in.OrchestratorModelID, aux),

		SubAgentMaxCalls: in.SubAgentMaxCalls,
		SubAgentModel:    stepModel(in.SubAgentModelID, main),

		SemanticSearch:          in.SemanticSearch,
		SearchChunkCount:        in.SearchChunkCount,
		SearchChunkSize:         in.SearchChunkSize,
		EmbeddingModel:          emb,
		Reranking:               in.Reranking,
		RerankingModel:          stepModel(in.RerankingModelID, aux),
		ReembeddingMonthlyChars: in.ReembeddingMonthlyChars,

		ConversationHistory:  in.ConversationHistory,
		MaxHistoryTurns:      in.MaxHistoryTurns,
		HistoryCompression:   in.HistoryCompression,
		CompressionFrequency: in.CompressionFrequency,
		CompressionModel:     stepModel(in.CompressionModelID, aux),

		WebSearch:              in.WebSearch,
		WebSearchTool:          tool,
		WebSearchCalls:         in.WebSearchCalls,
		WebSearchResultCount:   in.WebSearchResultCount,
		WebSearchSummarization: in.WebSearchSummarization,
		SummarizationModel:     stepModel(in.SummarizationModelID, aux),

		PromptCaching: in.PromptCaching,
	}

	return Resolution{
		Input:             rci,
		Main:              main,
		Auxiliary:         aux,
		AuxiliaryDistinct: aux.ID != main.ID,
	}, nil
}

func unknownMain(id int) error {
	return fmt.Errorf("main model %d: %w", id, ErrUnknownModel)
}
