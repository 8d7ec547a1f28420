package catalog

import "github.com/theirongolddev/agentcost/internal/model"

// Provider ids in the built-in catalog.
const (
	ProviderOpenAI    = 1
	ProviderAnthropic = 2
	ProviderGoogle    = 3
)

func price(v float64) *float64 { return &v }
func size(v int) *int           { return &v }

// Seed returns the built-in catalog. Prices are USD per million tokens,
// last checked 2026-02-14. Every call returns a fresh, validated copy.
func Seed() *Catalog {
	c := &Catalog{
		Providers: []model.Provider{
			{ID: ProviderOpenAI, Name: "OpenAI"},
			{ID: ProviderAnthropic, Name: "Anthropic"},
			{ID: ProviderGoogle, Name: "Google"},
		},
		Models: seedModels(),
		EmbeddingModels: []model.EmbeddingModel{
			{ID: 1, ProviderID: ProviderOpenAI, Name: "text-embedding-3-small", InputPrice: 0.02, Dimensions: size(1536), PricingTier: model.TierOnline},
			{ID: 2, ProviderID: ProviderOpenAI, Name: "text-embedding-3-large", InputPrice: 0.13, Dimensions: size(3072), PricingTier: model.TierOnline},
			{ID: 3, ProviderID: ProviderGoogle, Name: "Gemini Embedding (online)", InputPrice: 0.15, PricingTier: model.TierOnline},
			{ID: 4, ProviderID: ProviderGoogle, Name: "Gemini Embedding (batch)", InputPrice: 0.12, PricingTier: model.TierBatch},
		},
		WebSearchTools: []model.WebSearchTool{
			{ID: 1, ProviderID: ProviderOpenAI, Name: "OpenAI Web Search", PricePerKCalls: 10,
				AdditionalPricingNotes: "Search content tokens are billed at the model's input price"},
			{ID: 2, ProviderID: ProviderAnthropic, Name: "Anthropic Web Search", PricePerKCalls: 10,
				AdditionalPricingNotes: "Input and output tokens are billed separately at model prices"},
			{ID: 3, ProviderID: ProviderGoogle, Name: "Google Grounding (Gemini 3)", PricePerKCalls: 14,
				AdditionalPricingNotes: "5,000 free queries per month (free tier not applied here)"},
			{ID: 4, ProviderID: ProviderGoogle, Name: "Google Grounding (Gemini 2.x)", PricePerKCalls: 35,
				AdditionalPricingNotes: "1,500 free prompts per day (free tier not applied here)"},
		},
	}
	if err := c.Validate(); err != nil {
		panic("catalog: invalid seed: " + err.Error())
	}
	return c
}

func seedModels() []model.Model {
	type row struct {
		provider int
		name     string
		category model.Category
		in, out  float64
		cw, cr   *float64
		maxCtx   *int
		legacy   bool
	}
	rows := []row{
		{ProviderOpenAI, "GPT-5.2", model.CategoryFlagship, 1.75, 14.0, nil, price(0.175), nil, false},
		{ProviderOpenAI, "GPT-5.2 pro", model.CategoryFlagship, 21.0, 168.0, nil, nil, nil, false},
		{ProviderOpenAI, "GPT-5 mini", model.CategoryFlagship, 0.25, 2.0, nil, price(0.025), nil, false},
		{ProviderOpenAI, "GPT-4.1", model.CategoryStandard, 2.0, 8.0, nil, price(0.5), size(1_000_000), false},
		{ProviderOpenAI, "GPT-4.1 mini", model.CategoryStandard, 0.4, 1.6, nil, price(0.1), size(1_000_000), false},
		{ProviderOpenAI, "GPT-4.1 nano", model.CategoryLightweight, 0.1, 0.4, nil, price(0.025), size(1_000_000), false},
		{ProviderOpenAI, "GPT-4o", model.CategoryStandard, 2.5, 10.0, nil, price(1.25), size(128_000), false},
		{ProviderOpenAI, "GPT-4o-mini", model.CategoryLightweight, 0.15, 0.6, nil, price(0.075), size(128_000), false},
		{ProviderOpenAI, "o4-mini", model.CategoryReasoning, 1.1, 4.4, nil, nil, nil, false},
		{ProviderOpenAI, "o3-mini", model.CategoryReasoning, 1.1, 4.4, nil, nil, nil, false},

		{ProviderAnthropic, "Claude Opus 4.6", model.CategoryFlagship, 5.0, 25.0, price(6.25), price(0.5), size(200_000), false},
		{ProviderAnthropic, "Claude Sonnet 4.5", model.CategoryStandard, 3.0, 15.0, price(3.75), price(0.3), size(200_000), false},
		{ProviderAnthropic, "Claude Haiku 4.5", model.CategoryLightweight, 1.0, 5.0, price(1.25), price(0.1), size(200_000), false},
		{ProviderAnthropic, "Claude Opus 4.5", model.CategoryFlagship, 5.0, 25.0, price(6.25), price(0.5), nil, true},
		{ProviderAnthropic, "Claude Opus 4.1", model.CategoryFlagship, 15.0, 75.0, price(18.75), price(1.5), nil, true},
		{ProviderAnthropic, "Claude Sonnet 4", model.CategoryStandard, 3.0, 15.0, price(3.75), price(0.3), nil, true},
		{ProviderAnthropic, "Claude Opus 4", model.CategoryFlagship, 15.0, 75.0, price(18.75), price(1.5), nil, true},
		{ProviderAnthropic, "Claude Haiku 3", model.CategoryLightweight, 0.25, 1.25, price(0.3), price(0.03), nil, true},

		{ProviderGoogle, "Gemini 3 Pro Preview", model.CategoryFlagship, 2.0, 12.0, nil, price(0.2), size(200_000), false},
		{ProviderGoogle, "Gemini 3 Flash Preview", model.CategoryStandard, 0.5, 3.0, nil, price(0.05), size(200_000), false},
		{ProviderGoogle, "Gemini 2.5 Pro", model.CategoryFlagship, 1.25, 10.0, nil, price(0.125), size(200_000), false},
		{ProviderGoogle, "Gemini 2.5 Flash", model.CategoryStandard, 0.3, 2.5, nil, price(0.03), size(200_000), false},
		{ProviderGoogle, "Gemini 2.5 Flash Lite", model.CategoryLightweight, 0.1, 0.4, nil, price(0.01), size(200_000), false},
		{ProviderGoogle, "Gemini 2.0 Flash", model.CategoryStandard, 0.15, 0.6, nil, nil, nil, false},
		{ProviderGoogle, "Gemini 2.0 Flash Lite", model.CategoryLightweight, 0.075, 0.3, nil, nil, nil, false},
	}

	out := make([]model.Model, len(rows))
	for i, r := range rows {
		out[i] = model.Model{
			ID:               i + 1,
			ProviderID:       r.provider,
			Name:             r.name,
			Category:         r.category,
			InputPrice:       r.in,
			OutputPrice:      r.out,
			CacheWritePrice:  r.cw,
			CacheReadPrice:   r.cr,
			MaxContextLength: r.maxCtx,
			IsLegacy:         r.legacy,
		}
	}
	return out
}
