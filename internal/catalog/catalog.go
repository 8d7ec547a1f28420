// Package catalog provides the model master data the cost engine prices
// against: providers, chat models, embedding models and web-search tools.
package catalog

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/agentcost/internal/model"
)

// Catalog is an immutable snapshot of the master data. Callers must not
// modify a Catalog after it has been published through a Source.
type Catalog struct {
	Providers       []model.Provider       `json:"providers" yaml:"providers"`
	Models          []model.Model          `json:"models" yaml:"models"`
	EmbeddingModels []model.EmbeddingModel `json:"embeddingModels" yaml:"embedding_models"`
	WebSearchTools  []model.WebSearchTool  `json:"webSearchTools" yaml:"web_search_tools"`
}

// Model returns the chat model with the given id.
func (c *Catalog) Model(id int) (model.Model, bool) {
	for _, m := range c.Models {
		if m.ID == id {
			return m, true
		}
	}
	return model.Model{}, false
}

// ModelByName returns the first chat model with the given display name.
func (c *Catalog) ModelByName(name string) (model.Model, bool) {
	for _, m := range c.Models {
		if m.Name == name {
			return m, true
		}
	}
	return model.Model{}, false
}

// Embedding returns the embedding model with the given id.
func (c *Catalog) Embedding(id int) (model.EmbeddingModel, bool) {
	for _, e := range c.EmbeddingModels {
		if e.ID == id {
			return e, true
		}
	}
	return model.EmbeddingModel{}, false
}

// WebSearchTool returns the web-search tool with the given id.
func (c *Catalog) WebSearchTool(id int) (model.WebSearchTool, bool) {
	for _, w := range c.WebSearchTools {
		if w.ID == id {
			return w, true
		}
	}
	return model.WebSearchTool{}, false
}

// DefaultEmbedding returns the first embedding model.
func (c *Catalog) DefaultEmbedding() (model.EmbeddingModel, bool) {
	if len(c.EmbeddingModels) == 0 {
		return model.EmbeddingModel{}, false
	}
	return c.EmbeddingModels[0], true
}

// DefaultWebSearchTool returns the first web-search tool.
func (c *Catalog) DefaultWebSearchTool() (model.WebSearchTool, bool) {
	if len(c.WebSearchTools) == 0 {
		return model.WebSearchTool{}, false
	}
	return c.WebSearchTools[0], true
}

// AllModels returns every chat model, legacy ones included.
func (c *Catalog) AllModels() []model.Model {
	return c.Models
}

// ActiveModels returns the non-legacy chat models in catalog order.
func (c *Catalog) ActiveModels() []model.Model {
	out := make([]model.Model, 0, len(c.Models))
	for _, m := range c.Models {
		if !m.IsLegacy {
			out = append(out, m)
		}
	}
	return out
}

// MainModels returns the non-legacy models that pairs recommends an
// auxiliary for.
func (c *Catalog) MainModels(pairs Pairings) []model.Model {
	var out []model.Model
	for _, m := range c.ActiveModels() {
		if pairs.IsMainEligible(m) {
			out = append(out, m)
		}
	}
	return out
}

// Validate checks ids, names and prices, and fills every record's
// ProviderName from the provider table.
func (c *Catalog) Validate() error {
	var errs []error

	providers := make(map[int]string, len(c.Providers))
	for _, p := range c.Providers {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("provider %d: empty name", p.ID))
		}
		if _, dup := providers[p.ID]; dup {
			errs = append(errs, fmt.Errorf("provider %d: duplicate id", p.ID))
		}
		providers[p.ID] = p.Name
	}

	providerName := func(kind string, id, providerID int) string {
		name, ok := providers[providerID]
		if !ok {
			errs = append(errs, fmt.Errorf("%s %d: unknown provider %d", kind, id, providerID))
		}
		return name
	}
	check := func(kind string, seen map[int]bool, id int, name string, prices ...float64) {
		if seen[id] {
			errs = append(errs, fmt.Errorf("%s %d: duplicate id", kind, id))
		}
		seen[id] = true
		if name == "" {
			errs = append(errs, fmt.Errorf("%s %d: empty name", kind, id))
		}
		for _, p := range prices {
			if p < 0 {
				errs = append(errs, fmt.Errorf("%s %d (%s): negative price %g", kind, id, name, p))
			}
		}
	}

	seen := map[int]bool{}
	for i := range c.Models {
		m := &c.Models[i]
		prices := []float64{m.InputPrice, m.OutputPrice}
		if m.CacheWritePrice != nil {
			prices = append(prices, *m.CacheWritePrice)
		}
		if m.CacheReadPrice != nil {
			prices = append(prices, *m.CacheReadPrice)
		}
		check("model", seen, m.ID, m.Name, prices...)
		m.ProviderName = providerName("model", m.ID, m.ProviderID)
	}

	seen = map[int]bool{}
	for i := range c.EmbeddingModels {
		e := &c.EmbeddingModels[i]
		check("embedding model", seen, e.ID, e.Name, e.InputPrice)
		e.ProviderName = providerName("embedding model", e.ID, e.ProviderID)
	}

	seen = map[int]bool{}
	for i := range c.WebSearchTools {
		w := &c.WebSearchTools[i]
		check("web search tool", seen, w.ID, w.Name, w.PricePerKCalls)
		w.ProviderName = providerName("web search tool", w.ID, w.ProviderID)
	}

	return errors.Join(errs...)
}
