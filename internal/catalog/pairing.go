package catalog

import "github.com/theirongolddev/agentcost/internal/model"

// Pairings maps a main model's name to the name of its recommended cheaper
// auxiliary model.
type Pairings map[string]string

// DefaultPairings returns a fresh copy of the built-in pairing table.
func DefaultPairings() Pairings {
	return Pairings{
		"GPT-5.2":      "GPT-4.1 mini",
		"GPT-5.2 pro":  "GPT-5 mini",
		"GPT-5 mini":   "GPT-4.1 nano",
		"GPT-4.1":      "GPT-4.1 nano",
		"GPT-4.1 mini": "GPT-4.1 nano",
		"GPT-4o":       "GPT-4o-mini",
		"o4-mini":      "GPT-4.1 nano",
		"o3-mini":      "GPT-4.1 nano",

		"Claude Opus 4.6":   "Claude Haiku 4.5",
		"Claude Sonnet 4.5": "Claude Haiku 4.5",

		"Gemini 3 Pro Preview":   "Gemini 3 Flash Preview",
		"Gemini 3 Flash Preview": "Gemini 2.5 Flash Lite",
		"Gemini 2.5 Pro":         "Gemini 2.5 Flash",
		"Gemini 2.5 Flash":       "Gemini 2.5 Flash Lite",
		"Gemini 2.0 Flash":       "Gemini 2.0 Flash Lite",
	}
}

// RecommendAuxiliary returns the first non-legacy model in models whose name
// is paired with main.
func (p Pairings) RecommendAuxiliary(main model.Model, models []model.Model) (model.Model, bool) {
	name, ok := p[main.Name]
	if !ok {
		return model.Model{}, false
	}
	for _, m := range models {
		if m.Name == name && !m.IsLegacy {
			return m, true
		}
	}
	return model.Model{}, false
}

// IsMainEligible reports whether m has a pairing, which is what makes it
// selectable as a simple-mode main model.
func (p Pairings) IsMainEligible(m model.Model) bool {
	_, ok := p[m.Name]
	return ok
}
