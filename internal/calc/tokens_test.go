package calc

import (
	"testing"

	"github.com/theirongolddev/agentcost/internal/model"
)

func TestTokensFromChars(t *testing.T) {
	tests := []struct {
		chars float64
		lang  model.Language
		want  int64
	}{
		{1000, model.LangJapanese, 1500},
		{1000, model.LangEnglish, 250},
		{1000, model.LangMixed, 700},
		{0, model.LangJapanese, 0},
		{1, model.LangEnglish, 0},
		{2, model.LangEnglish, 1},
		{3, model.LangJapanese, 5},
		{12500, model.LangJapanese, 18750},
	}

	for _, tt := range tests {
		got := TokensFromChars(tt.chars, tt.lang)
		if got != tt.want {
			t.Errorf("TokensFromChars(%v, %s) = %d, want %d", tt.chars, tt.lang, got, tt.want)
		}
	}
}

func TestTokensFromCharsZeroAndLinear(t *testing.T) {
	for _, lang := range []model.Language{model.LangJapanese, model.LangEnglish, model.LangMixed} {
		if got := TokensFromChars(0, lang); got != 0 {
			t.Errorf("%s: zero chars gave %d tokens", lang, got)
		}
		// Multiples of 20 chars give whole token counts at every rate.
		for _, k := range []float64{1, 2, 5, 50} {
			base := TokensFromChars(20, lang)
			if got := TokensFromChars(20*k, lang); got != int64(k)*base {
				t.Errorf("%s: %v x 20 chars = %d tokens, want %d", lang, k, got, int64(k)*base)
			}
		}
	}
}

func TestTokenRateUnknownLanguage(t *testing.T) {
	if got := TokenRate("fr"); got != TokenRate(model.LangJapanese) {
		t.Errorf("unknown language rate = %v, want Japanese rate", got)
	}
}
