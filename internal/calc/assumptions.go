package calc

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/agentcost/internal/model"
)

// Option labels used in Assumptions.EnabledOptions.
const (
	OptionClassification = StageClassification
	OptionOrchestrator   = StageOrchestrator
	OptionSemanticSearch = StageSemanticSearch
	OptionHistory        = StageHistory
	OptionCompression    = StageCompression
	OptionWebSearch      = StageWebSearch
	OptionPromptCaching  = "Prompt caching"
)

// BuildAssumptions restates a detailed input for display and comparison.
// aux is empty when no auxiliary model distinct from main was used.
func BuildAssumptions(in model.DetailedInput, main model.Model, aux string) model.Assumptions {
	a := model.Assumptions{
		ModelName:           main.Name,
		AuxiliaryModelName:  aux,
		ProviderName:        main.ProviderName,
		DailyRequests:       in.DailyRequests,
		MonthlyWorkingDays:  in.MonthlyWorkingDays,
		MaxInputChars:       in.MaxInputChars,
		MaxOutputChars:      in.MaxOutputChars,
		Language:            in.Language,
		SystemPromptChars:   in.SystemPromptChars,
		AvgTurnsPerSession:  in.AvgTurnsPerSession,
		SafetyMarginPercent: in.SafetyMargin,
		Currency:            in.Currency,
		ExchangeRate:        in.ExchangeRate,
		EnabledOptions:      []string{},
		OptionDetails:       []model.OptionDetail{},
	}

	detail := func(k, v string) {
		a.OptionDetails = append(a.OptionDetails, model.OptionDetail{Key: k, Value: v})
	}

	if in.TopicClassification {
		a.EnabledOptions = append(a.EnabledOptions, OptionClassification)
		detail("Fallback rate", strconv.FormatFloat(in.ClassificationFallbackRate, 'f', -1, 64)+"%")
	}
	if in.Orchestrator {
		a.EnabledOptions = append(a.EnabledOptions, OptionOrchestrator)
		detail("Sub-agent max calls", fmt.Sprintf("%d", in.SubAgentMaxCalls))
	}
	if in.SemanticSearch {
		a.EnabledOptions = append(a.EnabledOptions, OptionSemanticSearch)
		detail("Chunk count", fmt.Sprintf("%d", in.SearchChunkCount))
		detail("Chunk size", fmt.Sprintf("%d chars", in.SearchChunkSize))
		if in.ReembeddingMonthlyChars > 0 {
			detail("Re-embedding", fmt.Sprintf("%s chars/month", groupDigits(int64(in.ReembeddingMonthlyChars))))
		}
	}
	if in.ConversationHistory {
		a.EnabledOptions = append(a.EnabledOptions, OptionHistory)
		detail("Max history turns", fmt.Sprintf("%d", in.MaxHistoryTurns))
		if in.HistoryCompression {
			a.EnabledOptions = append(a.EnabledOptions, OptionCompression)
			detail("Compression frequency", fmt.Sprintf("every %d turns", in.CompressionFrequency))
		}
	}
	if in.WebSearch {
		a.EnabledOptions = append(a.EnabledOptions, OptionWebSearch)
		detail("Web searches", fmt.Sprintf("%d per request", in.WebSearchCalls))
		detail("Search results", fmt.Sprintf("%d", in.WebSearchResultCount))
	}
	if in.PromptCaching {
		a.EnabledOptions = append(a.EnabledOptions, OptionPromptCaching)
	}

	return a
}

// groupDigits formats n with comma thousands separators.
func groupDigits(n int64) string {
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
