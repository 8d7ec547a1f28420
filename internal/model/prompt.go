package model

import "fmt"

// Level is how heavily a system-prompt factor is used.
type Level string

// Estimation levels, in increasing order.
const (
	LevelNone   Level = "none"
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// ParseLevel validates a level string.
func ParseLevel(s string) (Level, error) {
	switch l := Level(s); l {
	case LevelNone, LevelLow, LevelMedium, LevelHigh:
		return l, nil
	}
	return "", fmt.Errorf("unknown level %q (want none, low, medium or high)", s)
}

// Factor names one system-prompt design factor.
type Factor string

// The twenty system-prompt factors, grouped A (policy), B (knowledge),
// C (output), D (tools) and E (advanced behaviour).
const (
	FactorGuardrails            Factor = "a1Guardrails"
	FactorCompliance            Factor = "a2Compliance"
	FactorProhibitedTopics      Factor = "a3ProhibitedTopics"
	FactorPriorityRules         Factor = "a4PriorityRules"
	FactorErrorHandling         Factor = "a5ErrorHandling"
	FactorDomainKnowledge       Factor = "b1DomainKnowledge"
	FactorFewShotExamples       Factor = "b2FewShotExamples"
	FactorWorkflowDefinition    Factor = "b3WorkflowDefinition"
	FactorOutputFormat          Factor = "c1OutputFormat"
	FactorPersonaTone           Factor = "c2PersonaTone"
	FactorResponseLength        Factor = "c3ResponseLength"
	FactorCitationRules         Factor = "c4CitationRules"
	FactorMultiLanguage         Factor = "c5MultiLanguage"
	FactorToolDefinitions       Factor = "d1ToolDefinitions"
	FactorReferenceInstructions Factor = "d2ReferenceInstructions"
	FactorAPIIntegration        Factor = "d3ApiIntegration"
	FactorUserSegments          Factor = "e1UserSegments"
	FactorDynamicContext        Factor = "e2DynamicContext"
	FactorMultiStepReasoning    Factor = "e3MultiStepReasoning"
	FactorExceptionHandling     Factor = "e4ExceptionHandling"
)

// Factors lists every factor in display order.
func Factors() []Factor {
	return []Factor{
		FactorGuardrails, FactorCompliance, FactorProhibitedTopics, FactorPriorityRules, FactorErrorHandling,
		FactorDomainKnowledge, FactorFewShotExamples, FactorWorkflowDefinition,
		FactorOutputFormat, FactorPersonaTone, FactorResponseLength, FactorCitationRules, FactorMultiLanguage,
		FactorToolDefinitions, FactorReferenceInstructions, FactorAPIIntegration,
		FactorUserSegments, FactorDynamicContext, FactorMultiStepReasoning, FactorExceptionHandling,
	}
}

// SystemPromptEstimation maps factors to levels. Missing factors count as none.
type SystemPromptEstimation map[Factor]Level
