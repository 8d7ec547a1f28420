package calc

import (
	"math"
	"strings"

	"github.com/theirongolddev/agentcost/internal/model"
)

// Canonical stage names, in pipeline order.
const (
	StageClassification = "Topic classification"
	StageOrchestrator   = "Orchestrator"
	StageSemanticSearch = "Semantic search"
	StageReembedding    = "Re-embedding"
	StageWebSearch      = "Web search"
	StageHistory        = "Conversation history"
	StageMainAgent      = "Main agent"
	StageSubAgent       = "Sub-agent"
	StageCompression    = "History compression"
)

// Fixed token and character volumes used by the stage formulas.
const (
	classificationOutputTokens = 50
	orchestratorMaxOutputChars = 500
	rerankOutputTokens         = 100
	webResultChars             = 2000
	summaryChars               = 500
)

// StepDescription returns the one-line business description of a stage.
func StepDescription(stage string) string {
	switch stage {
	case StageClassification:
		return "Classifies incoming requests and routes them to the right flow"
	case StageOrchestrator:
		return "Coordinates agents and decides the processing path"
	case StageSemanticSearch:
		return "Retrieves relevant passages from internal documents to ground answers"
	case StageReembedding:
		return "Keeps the search index current as documents are added or changed"
	case StageWebSearch:
		return "Searches the web so answers can use current information"
	case StageHistory:
		return "Carries earlier turns forward so replies stay consistent with the conversation"
	case StageMainAgent:
		return "Combines the gathered context and generates the final answer"
	case StageSubAgent:
		return "Handles delegated tasks such as translation, summarization or analysis"
	case StageCompression:
		return "Summarizes long histories to stay within the context window"
	}
	return ""
}

func zeroStep(name string) model.StepCost {
	return model.StepCost{Name: name}
}

func activeStep(name string, modelNames ...string) model.StepCost {
	var names []string
	for _, n := range modelNames {
		if n != "" {
			names = append(names, n)
		}
	}
	return model.StepCost{
		Name:        name,
		ModelName:   strings.Join(names, " + "),
		Description: StepDescription(name),
	}
}

// ClassificationCost prices topic classification: one embedding call on the
// user input, plus an LLM fallback weighted by fallbackRate (0-100).
func ClassificationCost(enabled bool, fallbackRate float64, llm *model.Model, emb *model.EmbeddingModel, lang model.Language, inputChars int) model.StepCost {
	if !enabled {
		return zeroStep(StageClassification)
	}

	var embName, llmName string
	inputTokens := TokensFromChars(float64(inputChars), lang)
	cost := 0.0
	var outputTokens int64

	if emb != nil {
		embName = emb.Name
		cost += tokenCost(inputTokens, emb.InputPrice)
	}
	if llm != nil && fallbackRate > 0 {
		llmName = llm.Name
		rate := fallbackRate / 100
		llmCost := tokenCost(inputTokens, llm.InputPrice) + tokenCost(classificationOutputTokens, llm.OutputPrice)
		cost += llmCost * rate
		outputTokens = int64(math.Round(classificationOutputTokens * rate))
	}

	step := activeStep(StageClassification, embName, llmName)
	step.InputTokens = inputTokens
	step.OutputTokens = outputTokens
	step.CostUSD = cost
	return step
}

// OrchestratorCost prices the routing call. Routing replies are capped at 500 chars.
func OrchestratorCost(enabled bool, m *model.Model, lang model.Language, inputChars, outputChars int) model.StepCost {
	if !enabled || m == nil {
		return zeroStep(StageOrchestrator)
	}

	in := TokensFromChars(float64(inputChars), lang)
	out := TokensFromChars(float64(min(outputChars, orchestratorMaxOutputChars)), lang)

	step := activeStep(StageOrchestrator, m.Name)
	step.InputTokens = in
	step.OutputTokens = out
	step.CostUSD = tokenCost(in, m.InputPrice) + tokenCost(out, m.OutputPrice)
	return step
}

// SemanticSearchCost prices retrieval: the query embedding plus optional LLM
// reranking over chunks and query. InputTokens reports the retrieved chunk
// tokens, which the main agent consumes.
func SemanticSearchCost(enabled bool, chunkCount, chunkSize int, emb *model.EmbeddingModel, reranking bool, reranker *model.Model, lang model.Language, inputChars int) model.StepCost {
	if !enabled {
		return zeroStep(StageSemanticSearch)
	}

	var embName, rerankName string
	queryTokens := TokensFromChars(float64(inputChars), lang)
	chunkTokens := TokensFromChars(float64(chunkCount*chunkSize), lang)
	cost := 0.0
	var outputTokens int64

	if emb != nil {
		embName = emb.Name
		cost += tokenCost(queryTokens, emb.InputPrice)
	}
	if reranking && reranker != nil {
		rerankName = reranker.Name
		outputTokens = rerankOutputTokens
		cost += tokenCost(chunkTokens+queryTokens, reranker.InputPrice) + tokenCost(outputTokens, reranker.OutputPrice)
	}

	step := activeStep(StageSemanticSearch, embName, rerankName)
	step.InputTokens = chunkTokens
	step.OutputTokens = outputTokens
	step.CostUSD = cost
	return step
}

// ReembeddingCost prices the monthly re-embedding of changed documents.
func ReembeddingCost(monthlyChars int, emb *model.EmbeddingModel, lang model.Language) model.StepCost {
	if monthlyChars <= 0 || emb == nil {
		return zeroStep(StageReembedding)
	}

	tokens := TokensFromChars(float64(monthlyChars), lang)
	step := activeStep(StageReembedding, emb.Name)
	step.InputTokens = tokens
	step.CostUSD = tokenCost(tokens, emb.InputPrice)
	return step
}

// WebSearchCost prices search API calls plus optional summarization of the
// results. Free-tier quotas are never applied. InputTokens reports the result
// tokens, which the main agent consumes.
func WebSearchCost(enabled bool, tool *model.WebSearchTool, calls, resultCount int, summarization bool, summarizer *model.Model, lang model.Language) model.StepCost {
	if !enabled || tool == nil {
		return zeroStep(StageWebSearch)
	}

	var sumName string
	cost := float64(calls) / 1000 * tool.PricePerKCalls
	resultTokens := TokensFromChars(float64(resultCount*webResultChars), lang)
	var outputTokens int64

	if summarization && summarizer != nil {
		sumName = summarizer.Name
		outputTokens = TokensFromChars(summaryChars, lang)
		cost += tokenCost(resultTokens, summarizer.InputPrice) + tokenCost(outputTokens, summarizer.OutputPrice)
	}

	step := activeStep(StageWebSearch, tool.Name, sumName)
	step.InputTokens = resultTokens
	step.OutputTokens = outputTokens
	step.CostUSD = cost
	return step
}

// HistoryCost reports the average history carried into the main agent:
// half the maximum turns, each one input plus one output. It is never priced
// itself; the tokens are billed as main-agent input.
func HistoryCost(enabled bool, maxTurns int, lang model.Language, inputChars, outputChars int) model.StepCost {
	if !enabled {
		return zeroStep(StageHistory)
	}

	historyChars := float64(maxTurns) / 2 * float64(inputChars+outputChars)
	step := activeStep(StageHistory)
	step.InputTokens = TokensFromChars(historyChars, lang)
	return step
}

// MainAgentCost prices the answering call. Its input is the system prompt,
// the user input and every upstream context contribution. With prompt caching
// and a cache-read price, the system prompt is billed at the cache-read rate.
func MainAgentCost(m model.Model, lang model.Language, systemPromptChars, inputChars, outputChars int, historyTokens, ragTokens, webTokens int64, promptCaching bool) model.StepCost {
	sysTokens := TokensFromChars(float64(systemPromptChars), lang)
	userTokens := TokensFromChars(float64(inputChars), lang)
	totalInput := sysTokens + userTokens + historyTokens + ragTokens + webTokens
	out := TokensFromChars(float64(outputChars), lang)

	var inputCost float64
	if promptCaching && m.CacheReadPrice != nil {
		inputCost = tokenCost(sysTokens, *m.CacheReadPrice) + tokenCost(totalInput-sysTokens, m.InputPrice)
	} else {
		inputCost = tokenCost(totalInput, m.InputPrice)
	}

	step := activeStep(StageMainAgent, m.Name)
	step.InputTokens = totalInput
	step.OutputTokens = out
	step.CostUSD = inputCost + tokenCost(out, m.OutputPrice)
	return step
}

// SubAgentCost prices up to maxCalls delegated calls, each the size of one turn.
func SubAgentCost(maxCalls int, m *model.Model, lang model.Language, inputChars, outputChars int) model.StepCost {
	if maxCalls <= 0 || m == nil {
		return zeroStep(StageSubAgent)
	}

	in := TokensFromChars(float64(inputChars), lang)
	out := TokensFromChars(float64(outputChars), lang)
	perCall := tokenCost(in, m.InputPrice) + tokenCost(out, m.OutputPrice)
	calls := int64(maxCalls)

	step := activeStep(StageSubAgent, m.Name)
	step.InputTokens = in * calls
	step.OutputTokens = out * calls
	step.CostUSD = perCall * float64(maxCalls)
	return step
}

// CompressionCost amortizes one history summarization every frequency turns.
// A frequency of zero disables the stage.
func CompressionCost(enabled bool, frequency int, m *model.Model, lang model.Language, inputChars, outputChars, maxTurns int) model.StepCost {
	if !enabled || frequency <= 0 || m == nil {
		return zeroStep(StageCompression)
	}

	historyTokens := TokensFromChars(float64(maxTurns*(inputChars+outputChars)), lang)
	summary := TokensFromChars(summaryChars, lang)
	perEvent := tokenCost(historyTokens, m.InputPrice) + tokenCost(summary, m.OutputPrice)

	step := activeStep(StageCompression, m.Name)
	step.InputTokens = historyTokens
	step.OutputTokens = summary
	step.CostUSD = perEvent / float64(frequency)
	return step
}
