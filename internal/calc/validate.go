package calc

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/agentcost/internal/model"
)

// ValidateDetailed checks the numeric preconditions the engine assumes.
// All violations are reported together.
func ValidateDetailed(in model.DetailedInput) error {
	var errs []error

	nonNegative := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %d", name, v))
		}
	}
	percent := func(name string, v float64) {
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Errorf("%s must be within 0-100, got %g", name, v))
		}
	}

	nonNegative("dailyRequests", in.DailyRequests)
	nonNegative("monthlyWorkingDays", in.MonthlyWorkingDays)
	nonNegative("maxInputChars", in.MaxInputChars)
	nonNegative("maxOutputChars", in.MaxOutputChars)
	nonNegative("systemPromptChars", in.SystemPromptChars)
	nonNegative("avgTurnsPerSession", in.AvgTurnsPerSession)
	nonNegative("subAgentMaxCalls", in.SubAgentMaxCalls)
	nonNegative("searchChunkCount", in.SearchChunkCount)
	nonNegative("searchChunkSize", in.SearchChunkSize)
	nonNegative("reembeddingMonthlyChars", in.ReembeddingMonthlyChars)
	nonNegative("maxHistoryTurns", in.MaxHistoryTurns)
	nonNegative("compressionFrequency", in.CompressionFrequency)
	nonNegative("webSearchCallsPerRequest", in.WebSearchCalls)
	nonNegative("webSearchResultCount", in.WebSearchResultCount)

	percent("classificationFallbackRate", in.ClassificationFallbackRate)
	percent("safetyMargin", in.SafetyMargin)

	if in.ExchangeRate < 0 {
		errs = append(errs, fmt.Errorf("exchangeRate must be >= 0, got %g", in.ExchangeRate))
	}

	switch in.Language {
	case model.LangJapanese, model.LangEnglish, model.LangMixed:
	default:
		errs = append(errs, fmt.Errorf("unknown language %q", in.Language))
	}
	switch in.Currency {
	case model.CurrencyUSD, model.CurrencyJPY:
	default:
		errs = append(errs, fmt.Errorf("unknown currency %q", in.Currency))
	}

	return errors.Join(errs...)
}

// ValidateSimple checks a simple-mode input against the preset tables.
func ValidateSimple(in model.SimpleInput, p Presets) error {
	var errs []error
	if in.DailyRequests < 0 {
		errs = append(errs, fmt.Errorf("dailyRequests must be >= 0, got %d", in.DailyRequests))
	}
	if _, ok := p.UseCases[in.UseCase]; !ok {
		errs = append(errs, fmt.Errorf("unknown use case %q", in.UseCase))
	}
	for _, lp := range []struct {
		name   string
		preset model.LengthPreset
		custom *int
		table  map[model.LengthPreset]int
	}{
		{"inputLengthPreset", in.InputLength, in.CustomInputChars, p.InputLengths},
		{"outputLengthPreset", in.OutputLength, in.CustomOutputChars, p.OutputLengths},
	} {
		if lp.preset == model.LengthCustom {
			if lp.custom != nil && *lp.custom < 0 {
				errs = append(errs, fmt.Errorf("%s custom chars must be >= 0, got %d", lp.name, *lp.custom))
			}
			continue
		}
		if _, ok := lp.table[lp.preset]; !ok {
			errs = append(errs, fmt.Errorf("unknown %s %q", lp.name, lp.preset))
		}
	}
	return errors.Join(errs...)
}
