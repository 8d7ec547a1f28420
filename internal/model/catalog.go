// Package model defines the domain types shared by the cost engine and its
// collaborators: catalog records, calculation inputs, and results.
package model

// Category classifies a model's tier in the catalog.
type Category string

// Model categories.
const (
	CategoryFlagship    Category = "flagship"
	CategoryStandard    Category = "standard"
	CategoryLightweight Category = "lightweight"
	CategoryReasoning   Category = "reasoning"
)

// PricingTier distinguishes online and batch embedding prices.
type PricingTier string

// Embedding pricing tiers.
const (
	TierOnline PricingTier = "online"
	TierBatch  PricingTier = "batch"
)

// Provider is an LLM vendor.
type Provider struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Model is a chat/completion model with per-million-token prices in USD.
//
// LongContextSurcharge overrides the provider-name surcharge rule when set.
// The built-in catalog leaves it nil, so Anthropic and Google models get the
// 2x surcharge above 200K input tokens and every other provider is exempt.
type Model struct {
	ID                   int      `json:"id" yaml:"id"`
	ProviderID           int      `json:"providerId" yaml:"provider_id"`
	ProviderName         string   `json:"providerName" yaml:"provider_name,omitempty"`
	Name                 string   `json:"name" yaml:"name"`
	Category             Category `json:"category" yaml:"category"`
	InputPrice           float64  `json:"inputPrice" yaml:"input_price"`
	OutputPrice          float64  `json:"outputPrice" yaml:"output_price"`
	CacheWritePrice      *float64 `json:"cacheWritePrice,omitempty" yaml:"cache_write_price,omitempty"`
	CacheReadPrice       *float64 `json:"cacheReadPrice,omitempty" yaml:"cache_read_price,omitempty"`
	MaxContextLength     *int     `json:"maxContextLength,omitempty" yaml:"max_context_length,omitempty"`
	IsLegacy             bool     `json:"isLegacy" yaml:"is_legacy,omitempty"`
	LongContextSurcharge *bool    `json:"longContextSurcharge,omitempty" yaml:"long_context_surcharge,omitempty"`
}

// EmbeddingModel is an embedding API priced per million input tokens.
type EmbeddingModel struct {
	ID           int         `json:"id" yaml:"id"`
	ProviderID   int         `json:"providerId" yaml:"provider_id"`
	ProviderName string      `json:"providerName" yaml:"provider_name,omitempty"`
	Name         string      `json:"name" yaml:"name"`
	InputPrice   float64     `json:"inputPrice" yaml:"input_price"`
	Dimensions   *int        `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	PricingTier  PricingTier `json:"pricingTier" yaml:"pricing_tier"`
}

// WebSearchTool is a hosted search API priced per thousand calls.
type WebSearchTool struct {
	ID                     int     `json:"id" yaml:"id"`
	ProviderID             int     `json:"providerId" yaml:"provider_id"`
	ProviderName           string  `json:"providerName" yaml:"provider_name,omitempty"`
	Name                   string  `json:"name" yaml:"name"`
	PricePerKCalls         float64 `json:"pricePerKCalls" yaml:"price_per_k_calls"`
	AdditionalPricingNotes string  `json:"additionalPricingNotes,omitempty" yaml:"additional_pricing_notes,omitempty"`
}
