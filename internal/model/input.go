package model

// Language selects a token-per-character rate.
type Language string

// Supported languages.
const (
	LangJapanese Language = "ja"
	LangEnglish  Language = "en"
	LangMixed    Language = "mixed"
)

// Currency is the display currency. Costs are always computed in USD.
type Currency string

// Display currencies.
const (
	CurrencyUSD Currency = "USD"
	CurrencyJPY Currency = "JPY"
)

// UseCase names a preset bundle of optional pipeline stages.
type UseCase string

// Use-case presets for simple mode.
const (
	UseCaseSimpleQA         UseCase = "simpleQA"
	UseCaseKnowledgeSearch  UseCase = "knowledgeSearch"
	UseCaseCustomerSupport  UseCase = "customerSupport"
	UseCaseGeneralAssistant UseCase = "generalAssistant"
)

// LengthPreset is a coarse text-length choice for simple mode.
type LengthPreset string

// Length presets. LengthCustom takes its char count from the input.
const (
	LengthShort  LengthPreset = "short"
	LengthMedium LengthPreset = "medium"
	LengthLong   LengthPreset = "long"
	LengthCustom LengthPreset = "custom"
)

// SimpleInput is the five-field quick estimate form.
type SimpleInput struct {
	ModelID           int          `json:"modelId" yaml:"model_id" toml:"model_id"`
	DailyRequests     int          `json:"dailyRequests" yaml:"daily_requests" toml:"daily_requests"`
	InputLength       LengthPreset `json:"inputLengthPreset" yaml:"input_length" toml:"input_length"`
	OutputLength      LengthPreset `json:"outputLengthPreset" yaml:"output_length" toml:"output_length"`
	CustomInputChars  *int         `json:"customInputChars,omitempty" yaml:"custom_input_chars,omitempty" toml:"custom_input_chars,omitempty"`
	CustomOutputChars *int         `json:"customOutputChars,omitempty" yaml:"custom_output_chars,omitempty" toml:"custom_output_chars,omitempty"`
	UseCase           UseCase      `json:"useCaseType" yaml:"use_case" toml:"use_case"`
}

// DetailedInput is the full estimate form. Model ids left nil are resolved
// against the catalog: step models default to the auxiliary model (the
// sub-agent defaults to the main model), and embedding and web-search tools
// default to the first catalog entry.
type DetailedInput struct {
	MainModelID        int      `json:"mainModelId" yaml:"main_model_id" toml:"main_model_id"`
	AuxiliaryModelID   *int     `json:"auxiliaryModelId,omitempty" yaml:"auxiliary_model_id,omitempty" toml:"auxiliary_model_id,omitempty"`
	DailyRequests      int      `json:"dailyRequests" yaml:"daily_requests" toml:"daily_requests"`
	MonthlyWorkingDays int      `json:"monthlyWorkingDays" yaml:"monthly_working_days" toml:"monthly_working_days"`
	MaxInputChars      int      `json:"maxInputChars" yaml:"max_input_chars" toml:"max_input_chars"`
	MaxOutputChars     int      `json:"maxOutputChars" yaml:"max_output_chars" toml:"max_output_chars"`
	Language           Language `json:"language" yaml:"language" toml:"language"`
	SystemPromptChars  int      `json:"systemPromptChars" yaml:"system_prompt_chars" toml:"system_prompt_chars"`
	AvgTurnsPerSession int      `json:"avgTurnsPerSession" yaml:"avg_turns_per_session" toml:"avg_turns_per_session"`

	TopicClassification        bool    `json:"topicClassification" yaml:"topic_classification" toml:"topic_classification"`
	ClassificationFallbackRate float64 `json:"classificationFallbackRate" yaml:"classification_fallback_rate" toml:"classification_fallback_rate"`
	ClassificationModelID      *int    `json:"classificationModelId,omitempty" yaml:"classification_model_id,omitempty" toml:"classification_model_id,omitempty"`
	Orchestrator               bool    `json:"orchestrator" yaml:"orchestrator" toml:"orchestrator"`
	OrchestratorModelID        *int    `json:"orchestratorModelId,omitempty" yaml:"orchestrator_model_id,omitempty" toml:"orchestrator_model_id,omitempty"`
	SubAgentMaxCalls           int     `json:"subAgentMaxCalls" yaml:"sub_agent_max_calls" toml:"sub_agent_max_calls"`
	SubAgentModelID            *int    `json:"subAgentModelId,omitempty" yaml:"sub_agent_model_id,omitempty" toml:"sub_agent_model_id,omitempty"`

	SemanticSearch          bool `json:"semanticSearchEnabled" yaml:"semantic_search" toml:"semantic_search"`
	SearchChunkCount        int  `json:"searchChunkCount" yaml:"search_chunk_count" toml:"search_chunk_count"`
	SearchChunkSize         int  `json:"searchChunkSize" yaml:"search_chunk_size" toml:"search_chunk_size"`
	EmbeddingModelID        *int `json:"embeddingModelId,omitempty" yaml:"embedding_model_id,omitempty" toml:"embedding_model_id,omitempty"`
	Reranking               bool `json:"rerankingEnabled" yaml:"reranking" toml:"reranking"`
	RerankingModelID        *int `json:"rerankingModelId,omitempty" yaml:"reranking_model_id,omitempty" toml:"reranking_model_id,omitempty"`
	ReembeddingMonthlyChars int  `json:"reembeddingMonthlyChars" yaml:"reembedding_monthly_chars" toml:"reembedding_monthly_chars"`

	ConversationHistory  bool `json:"conversationHistory" yaml:"conversation_history" toml:"conversation_history"`
	MaxHistoryTurns      int  `json:"maxHistoryTurns" yaml:"max_history_turns" toml:"max_history_turns"`
	HistoryCompression   bool `json:"historyCompression" yaml:"history_compression" toml:"history_compression"`
	CompressionFrequency int  `json:"compressionFrequency" yaml:"compression_frequency" toml:"compression_frequency"`
	CompressionModelID   *int `json:"compressionModelId,omitempty" yaml:"compression_model_id,omitempty" toml:"compression_model_id,omitempty"`

	WebSearch              bool `json:"webSearch" yaml:"web_search" toml:"web_search"`
	WebSearchToolID        *int `json:"webSearchToolId,omitempty" yaml:"web_search_tool_id,omitempty" toml:"web_search_tool_id,omitempty"`
	WebSearchCalls         int  `json:"webSearchCallsPerRequest" yaml:"web_search_calls" toml:"web_search_calls"`
	WebSearchResultCount   int  `json:"webSearchResultCount" yaml:"web_search_result_count" toml:"web_search_result_count"`
	WebSearchSummarization bool `json:"webSearchSummarization" yaml:"web_search_summarization" toml:"web_search_summarization"`
	SummarizationModelID   *int `json:"summarizationModelId,omitempty" yaml:"summarization_model_id,omitempty" toml:"summarization_model_id,omitempty"`

	PromptCaching bool     `json:"promptCaching" yaml:"prompt_caching" toml:"prompt_caching"`
	SafetyMargin  float64  `json:"safetyMargin" yaml:"safety_margin" toml:"safety_margin"`
	Currency      Currency `json:"currency" yaml:"currency" toml:"currency"`
	ExchangeRate  float64  `json:"exchangeRate" yaml:"exchange_rate" toml:"exchange_rate"`
}

// RequestCostInput is the fully resolved input to the request aggregator.
// Nil optional models collapse their stage to zero cost.
type RequestCostInput struct {
	MainModel          Model
	Language           Language
	SystemPromptChars  int
	MaxInputChars      int
	MaxOutputChars     int
	AvgTurnsPerSession int

	TopicClassification        bool
	ClassificationFallbackRate float64
	ClassificationModel        *Model

	Orchestrator      bool
	OrchestratorModel *Model

	SubAgentMaxCalls int
	SubAgentModel    *Model

	SemanticSearch          bool
	SearchChunkCount        int
	SearchChunkSize         int
	EmbeddingModel          *EmbeddingModel
	Reranking               bool
	RerankingModel          *Model
	ReembeddingMonthlyChars int

	ConversationHistory  bool
	MaxHistoryTurns      int
	HistoryCompression   bool
	CompressionFrequency int
	CompressionModel     *Model

	WebSearch              bool
	WebSearchTool          *WebSearchTool
	WebSearchCalls         int
	WebSearchResultCount   int
	WebSearchSummarization bool
	SummarizationModel     *Model

	PromptCaching bool
}
