package catalog

import (
	"strings"
	"testing"

	"github.com/theirongolddev/agentcost/internal/model"
)

func TestSeedIsValid(t *testing.T) {
	c := Seed()

	if len(c.Providers) != 3 {
		t.Fatalf("providers = %d, want 3", len(c.Providers))
	}
	if len(c.Models) != 25 {
		t.Errorf("models = %d, want 25", len(c.Models))
	}
	for _, m := range c.Models {
		if m.ProviderName == "" {
			t.Errorf("model %q has no provider name", m.Name)
		}
	}

	e, ok := c.DefaultEmbedding()
	if !ok || e.Name != "text-embedding-3-small" {
		t.Errorf("DefaultEmbedding = %q, %v", e.Name, ok)
	}
	w, ok := c.DefaultWebSearchTool()
	if !ok || w.Name != "OpenAI Web Search" || w.ProviderName != "OpenAI" {
		t.Errorf("DefaultWebSearchTool = %+v, %v", w, ok)
	}
}

func TestSeedReturnsFreshCopy(t *testing.T) {
	a := Seed()
	a.Models[0].InputPrice = 999
	if Seed().Models[0].InputPrice == 999 {
		t.Fatal("Seed shares state between calls")
	}
}

func TestLookups(t *testing.T) {
	c := Seed()

	m, ok := c.ModelByName("Claude Sonnet 4.5")
	if !ok {
		t.Fatal("Claude Sonnet 4.5 not found")
	}
	if m.ProviderName != "Anthropic" || m.InputPrice != 3.0 {
		t.Errorf("Sonnet = %+v", m)
	}
	byID, ok := c.Model(m.ID)
	if !ok || byID.Name != m.Name {
		t.Errorf("Model(%d) = %q, %v", m.ID, byID.Name, ok)
	}
	if _, ok := c.Model(9999); ok {
		t.Error("Model(9999) found")
	}
	if _, ok := c.Embedding(9999); ok {
		t.Error("Embedding(9999) found")
	}
	if _, ok := c.WebSearchTool(9999); ok {
		t.Error("WebSearchTool(9999) found")
	}
}

func TestActiveAndMainModels(t *testing.T) {
	c := Seed()
	pairs := DefaultPairings()

	for _, m := range c.ActiveModels() {
		if m.IsLegacy {
			t.Errorf("ActiveModels returned legacy %q", m.Name)
		}
	}

	mains := c.MainModels(pairs)
	if len(mains) != len(pairs) {
		t.Errorf("MainModels = %d, want one per pairing (%d)", len(mains), len(pairs))
	}
	for _, m := range mains {
		if !pairs.IsMainEligible(m) {
			t.Errorf("%q is not main-eligible", m.Name)
		}
	}
}

func TestEveryPairingResolves(t *testing.T) {
	c := Seed()
	pairs := DefaultPairings()

	for mainName, auxName := range pairs {
		main, ok := c.ModelByName(mainName)
		if !ok {
			t.Errorf("paired main %q missing from seed", mainName)
			continue
		}
		aux, ok := pairs.RecommendAuxiliary(main, c.Models)
		if !ok || aux.Name != auxName {
			t.Errorf("RecommendAuxiliary(%q) = %q, %v; want %q", mainName, aux.Name, ok, auxName)
		}
	}
}

func TestRecommendAuxiliarySkipsLegacy(t *testing.T) {
	pairs := Pairings{"Main": "Helper"}
	models := []model.Model{
		{ID: 1, Name: "Main"},
		{ID: 2, Name: "Helper", IsLegacy: true},
	}
	if _, ok := pairs.RecommendAuxiliary(models[0], models); ok {
		t.Error("legacy auxiliary recommended")
	}
	if _, ok := pairs.RecommendAuxiliary(model.Model{Name: "Unpaired"}, models); ok {
		t.Error("unpaired main got a recommendation")
	}
}

func TestDefaultPairingsIsFresh(t *testing.T) {
	p := DefaultPairings()
	delete(p, "GPT-4.1")
	if _, ok := DefaultPairings()["GPT-4.1"]; !ok {
		t.Fatal("DefaultPairings shares state between calls")
	}
}

func TestValidate(t *testing.T) {
	c := &Catalog{
		Providers: []model.Provider{{ID: 1, Name: "Acme"}},
		Models: []model.Model{
			{ID: 1, ProviderID: 1, Name: "a", InputPrice: 1},
			{ID: 1, ProviderID: 1, Name: "b"},
			{ID: 2, ProviderID: 7, Name: "c"},
			{ID: 3, ProviderID: 1, Name: "", OutputPrice: -1},
		},
	}

	err := c.Validate()
	if err == nil {
		t.Fatal("Validate accepted a broken catalog")
	}
	for _, want := range []string{"model 1: duplicate id", "unknown provider 7", "model 3: empty name", "negative price"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if c.Models[0].ProviderName != "Acme" {
		t.Errorf("provider name not filled: %q", c.Models[0].ProviderName)
	}
}
