package calc

import "github.com/theirongolddev/agentcost/internal/model"

// BasePromptChars is the floor every system prompt starts from.
const BasePromptChars = 200

// LevelChars holds a factor's char contribution at each level.
type LevelChars struct {
	None, Low, Medium, High int
}

func (lc LevelChars) at(l model.Level) int {
	switch l {
	case model.LevelLow:
		return lc.Low
	case model.LevelMedium:
		return lc.Medium
	case model.LevelHigh:
		return lc.High
	default:
		return lc.None
	}
}

// EstimationTable maps each factor to its per-level char counts.
type EstimationTable map[model.Factor]LevelChars

// DefaultEstimationTable returns a fresh copy of the built-in factor table.
func DefaultEstimationTable() EstimationTable {
	return EstimationTable{
		model.FactorGuardrails:       {0, 200, 600, 1500},
		model.FactorCompliance:       {0, 300, 600, 1000},
		model.FactorProhibitedTopics: {0, 100, 300, 500},
		model.FactorPriorityRules:    {0, 100, 250, 400},
		model.FactorErrorHandling:    {0, 200, 400, 600},

		model.FactorDomainKnowledge:    {0, 300, 1000, 2000},
		model.FactorFewShotExamples:    {0, 500, 1000, 2000},
		model.FactorWorkflowDefinition: {0, 300, 800, 1500},

		model.FactorOutputFormat:    {0, 100, 400, 800},
		model.FactorPersonaTone:     {0, 100, 250, 400},
		model.FactorResponseLength:  {0, 50, 100, 200},
		model.FactorCitationRules:   {0, 100, 200, 300},
		model.FactorMultiLanguage:   {0, 200, 400, 600},

		model.FactorToolDefinitions:       {0, 500, 1500, 3000},
		model.FactorReferenceInstructions: {0, 300, 500, 800},
		model.FactorAPIIntegration:        {0, 300, 600, 1000},

		model.FactorUserSegments:       {0, 300, 600, 1000},
		model.FactorDynamicContext:     {0, 100, 300, 500},
		model.FactorMultiStepReasoning: {0, 200, 500, 800},
		model.FactorExceptionHandling:  {0, 200, 500, 1000},
	}
}

// EstimateSystemPromptChars sums the built-in factor contributions on top of
// BasePromptChars.
func EstimateSystemPromptChars(est model.SystemPromptEstimation) int {
	return DefaultEstimationTable().Estimate(est)
}

// Estimate sums the table's contribution for each factor level. Factors not
// in the table are ignored.
func (t EstimationTable) Estimate(est model.SystemPromptEstimation) int {
	total := BasePromptChars
	for f, l := range est {
		if lc, ok := t[f]; ok {
			total += lc.at(l)
		}
	}
	return total
}
