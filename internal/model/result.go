package model

import "time"

// StepCost is the priced outcome of one pipeline stage for a single request.
type StepCost struct {
	Name         string  `json:"name"`
	ModelName    string  `json:"modelName"`
	Description  string  `json:"description"`
	InputTokens  int64   `json:"inputTokens"`
	OutputTokens int64   `json:"outputTokens"`
	CostUSD      float64 `json:"costUsd"`
}

// OptionDetail is one labelled parameter of an enabled option.
type OptionDetail struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Assumptions restates the input for display and for duplicate detection.
type Assumptions struct {
	ModelName           string         `json:"modelName"`
	AuxiliaryModelName  string         `json:"auxiliaryModelName,omitempty"`
	ProviderName        string         `json:"providerName"`
	DailyRequests       int            `json:"dailyRequests"`
	MonthlyWorkingDays  int            `json:"monthlyWorkingDays"`
	MaxInputChars       int            `json:"maxInputChars"`
	MaxOutputChars      int            `json:"maxOutputChars"`
	Language            Language       `json:"language"`
	SystemPromptChars   int            `json:"systemPromptChars"`
	AvgTurnsPerSession  int            `json:"avgTurnsPerSession"`
	SafetyMarginPercent float64        `json:"safetyMarginPercent"`
	Currency            Currency       `json:"currency"`
	ExchangeRate        float64        `json:"exchangeRate"`
	EnabledOptions      []string       `json:"enabledOptions"`
	OptionDetails       []OptionDetail `json:"optionDetails"`
}

// CostResult is the output of one calculation. Steps are in pipeline order.
type CostResult struct {
	CostPerRequest          float64    `json:"costPerRequest"`
	Steps                   []StepCost `json:"steps"`
	DailyCostUSD            float64    `json:"dailyCostUsd"`
	MonthlyCostUSD          float64    `json:"monthlyCostUsd"`
	MonthlyCostBeforeMargin float64    `json:"monthlyCostBeforeMargin"`
	MonthlyCostJPY          float64    `json:"monthlyCostJpy"`
	AnnualCostUSD           float64    `json:"annualCostUsd"`
	AnnualCostJPY           float64    `json:"annualCostJpy"`
	TotalInputTokens        int64      `json:"totalInputTokens"`
	TotalOutputTokens       int64      `json:"totalOutputTokens"`
	SafetyMarginRate        float64    `json:"safetyMarginRate"`
	ExchangeRate            float64    `json:"exchangeRate"`
	LongContextSurcharge    bool       `json:"longContextSurcharge"`

	// ReembeddingMonthlyUSD is the document re-embedding cost per month.
	// It is not part of MonthlyCostUSD.
	ReembeddingMonthlyUSD float64 `json:"reembeddingMonthlyUsd"`

	Assumptions Assumptions `json:"assumptions"`
}

// Clone returns a deep copy so stored comparison entries never alias a live result.
func (r CostResult) Clone() CostResult {
	out := r
	out.Steps = append([]StepCost(nil), r.Steps...)
	out.Assumptions.EnabledOptions = append([]string(nil), r.Assumptions.EnabledOptions...)
	out.Assumptions.OptionDetails = append([]OptionDetail(nil), r.Assumptions.OptionDetails...)
	return out
}

// ComparisonEntry is a stored CostResult snapshot.
type ComparisonEntry struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Result    CostResult `json:"result"`
	CreatedAt time.Time  `json:"createdAt"`
}
