package calc

import (
	"math"

	"github.com/theirongolddev/agentcost/internal/model"
)

// ProjectionMonths is the length of a growth projection.
const ProjectionMonths = 12

// GrowthMultiplier returns the cost multiplier for month m (1-based).
// In multiplier mode a missing entry counts as 1; any mode other than
// monthlyRate is treated as multiplier mode.
func GrowthMultiplier(sc model.GrowthScenario, m int) float64 {
	if sc.Mode == model.GrowthMonthlyRate {
		return math.Pow(1+sc.MonthlyGrowthRate/100, float64(m-1))
	}
	if m-1 < len(sc.MonthlyMultipliers) {
		return sc.MonthlyMultipliers[m-1]
	}
	return 1
}

// CalcGrowthProjection projects a monthly cost over twelve months.
func CalcGrowthProjection(baseMonthlyCostUSD, exchangeRate float64, sc model.GrowthScenario) model.AnnualProjection {
	out := model.AnnualProjection{
		Projections: make([]model.MonthlyProjection, 0, ProjectionMonths),
	}

	cumulative := 0.0
	for m := 1; m <= ProjectionMonths; m++ {
		mult := GrowthMultiplier(sc, m)
		cost := baseMonthlyCostUSD * mult
		cumulative += cost

		out.Projections = append(out.Projections, model.MonthlyProjection{
			Month:             m,
			Multiplier:        mult,
			MonthlyCostUSD:    cost,
			MonthlyCostJPY:    cost * exchangeRate,
			CumulativeCostUSD: cumulative,
			CumulativeCostJPY: cumulative * exchangeRate,
		})
	}

	out.TotalAnnualCostUSD = cumulative
	out.TotalAnnualCostJPY = cumulative * exchangeRate
	return out
}
