// Package calc is the cost engine: it converts text-length assumptions into
// tokens, prices each pipeline stage, and extrapolates per-request cost to
// daily, monthly, annual and 12-month growth figures.
//
// Every function in this package is pure. Reference data (models, pairing
// and preset tables) is passed in by the caller.
package calc

import (
	"math"

	"github.com/theirongolddev/agentcost/internal/model"
)

// TokenRate returns the tokens-per-character rate for a language.
// Unknown languages use the Japanese rate, the default language.
func TokenRate(lang model.Language) float64 {
	switch lang {
	case model.LangEnglish:
		return 0.25
	case model.LangMixed:
		return 0.7
	default:
		return 1.5
	}
}

// TokensFromChars converts a character count to tokens, rounding half away from zero.
func TokensFromChars(chars float64, lang model.Language) int64 {
	return int64(math.Round(chars * TokenRate(lang)))
}

// tokenCost prices tokens at a USD per-million-token rate.
func tokenCost(tokens int64, pricePerMTok float64) float64 {
	return float64(tokens) / 1_000_000 * pricePerMTok
}
