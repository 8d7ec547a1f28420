package calc

import (
	"math"
	"testing"

	"github.com/theirongolddev/agentcost/internal/model"
)

func ptr[T any](v T) *T { return &v }

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %.10f, want %.10f", name, got, want)
	}
}

// fakeCatalog is a minimal MasterData for resolution tests.
type fakeCatalog struct {
	models     []model.Model
	embeddings []model.EmbeddingModel
	tools      []model.WebSearchTool
}

func (f fakeCatalog) Model(id int) (model.Model, bool) {
	for _, m := range f.models {
		if m.ID == id {
			return m, true
		}
	}
	return model.Model{}, false
}

func (f fakeCatalog) Embedding(id int) (model.EmbeddingModel, bool) {
	for _, e := range f.embeddings {
		if e.ID == id {
			return e, true
		}
	}
	return model.EmbeddingModel{}, false
}

func (f fakeCatalog) WebSearchTool(id int) (model.WebSearchTool, bool) {
	for _, w := range f.tools {
		if w.ID == id {
			return w, true
		}
	}
	return model.WebSearchTool{}, false
}

func (f fakeCatalog) DefaultEmbedding() (model.EmbeddingModel, bool) {
	if len(f.embeddings) == 0 {
		return model.EmbeddingModel{}, false
	}
	return f.embeddings[0], true
}

func (f fakeCatalog) DefaultWebSearchTool() (model.WebSearchTool, bool) {
	if len(f.tools) == 0 {
		return model.WebSearchTool{}, false
	}
	return f.tools[0], true
}

func (f fakeCatalog) AllModels() []model.Model { return f.models }

var (
	gpt41 = model.Model{
		ID: 1, ProviderID: 1, ProviderName: "OpenAI", Name: "GPT-4.1",
		Category: model.CategoryFlagship, InputPrice: 2.0, OutputPrice: 8.0, CacheReadPrice: ptr(0.5),
	}
	gpt41Mini = model.Model{
		ID: 2, ProviderID: 1, ProviderName: "OpenAI", Name: "GPT-4.1 mini",
		Category: model.CategoryStandard, InputPrice: 0.4, OutputPrice: 1.6, CacheReadPrice: ptr(0.1),
	}
	sonnet = model.Model{
		ID: 3, ProviderID: 2, ProviderName: "Anthropic", Name: "Claude Sonnet 4.5",
		Category: model.CategoryFlagship, InputPrice: 3.0, OutputPrice: 15.0,
		CacheWritePrice: ptr(3.75), CacheReadPrice: ptr(0.3),
	}
	embSmall = model.EmbeddingModel{
		ID: 1, ProviderID: 1, ProviderName: "OpenAI", Name: "text-embedding-3-small",
		InputPrice: 0.02, PricingTier: model.TierOnline,
	}
	webTool = model.WebSearchTool{
		ID: 1, ProviderID: 1, ProviderName: "OpenAI", Name: "OpenAI Web Search", PricePerKCalls: 10,
	}
)

func testCatalog() fakeCatalog {
	return fakeCatalog{
		models:     []model.Model{gpt41, gpt41Mini, sonnet},
		embeddings: []model.EmbeddingModel{embSmall},
		tools:      []model.WebSearchTool{webTool},
	}
}

func pairWithMini(main model.Model, models []model.Model) (model.Model, bool) {
	if main.ID != gpt41.ID {
		return model.Model{}, false
	}
	for _, m := range models {
		if m.ID == gpt41Mini.ID {
			return m, true
		}
	}
	return model.Model{}, false
}
