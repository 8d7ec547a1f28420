package calc

// MonthlyCost is the traffic-scaled half of a CostResult.
type MonthlyCost struct {
	DailyCostUSD            float64
	MonthlyCostBeforeMargin float64
	MonthlyCostUSD          float64
	MonthlyCostJPY          float64
	AnnualCostUSD           float64
	AnnualCostJPY           float64
}

// CalcMonthlyCost scales a per-request cost by traffic and working days, then
// applies the safety margin (percent) and the JPY-per-USD exchange rate.
func CalcMonthlyCost(costPerRequest float64, dailyRequests, monthlyWorkingDays int, safetyMarginPercent, exchangeRate float64) MonthlyCost {
	daily := costPerRequest * float64(dailyRequests)
	before := daily * float64(monthlyWorkingDays)
	monthly := before * (1 + safetyMarginPercent/100)
	annual := monthly * 12

	return MonthlyCost{
		DailyCostUSD:            daily,
		MonthlyCostBeforeMargin: before,
		MonthlyCostUSD:          monthly,
		MonthlyCostJPY:          monthly * exchangeRate,
		AnnualCostUSD:           annual,
		AnnualCostJPY:           annual * exchangeRate,
	}
}
