package model

// GrowthMode selects how the 12-month projection scales the base cost.
type GrowthMode string

// Growth modes.
const (
	GrowthMultiplier  GrowthMode = "multiplier"
	GrowthMonthlyRate GrowthMode = "monthlyRate"
)

// GrowthScenario describes traffic growth over a year. MonthlyMultipliers is
// used in multiplier mode, MonthlyGrowthRate (percent) in monthlyRate mode.
type GrowthScenario struct {
	Mode               GrowthMode `json:"mode" yaml:"mode" toml:"mode"`
	MonthlyMultipliers []float64  `json:"monthlyMultipliers,omitempty" yaml:"monthly_multipliers,omitempty" toml:"monthly_multipliers,omitempty"`
	MonthlyGrowthRate  float64    `json:"monthlyGrowthRate" yaml:"monthly_growth_rate" toml:"monthly_growth_rate"`
}

// MonthlyProjection is one month of a growth projection.
type MonthlyProjection struct {
	Month             int     `json:"month"`
	Multiplier        float64 `json:"multiplier"`
	MonthlyCostUSD    float64 `json:"monthlyCostUsd"`
	MonthlyCostJPY    float64 `json:"monthlyCostJpy"`
	CumulativeCostUSD float64 `json:"cumulativeCostUsd"`
	CumulativeCostJPY float64 `json:"cumulativeCostJpy"`
}

// AnnualProjection is the 12-month trajectory plus totals.
type AnnualProjection struct {
	Projections        []MonthlyProjection `json:"projections"`
	TotalAnnualCostUSD float64             `json:"totalAnnualCostUsd"`
	TotalAnnualCostJPY float64             `json:"totalAnnualCostJpy"`
}
