package calc

import "testing"

func TestCalcMonthlyCost(t *testing.T) {
	mc := CalcMonthlyCost(0.027, 100, 20, 20, 150)

	approx(t, "DailyCostUSD", mc.DailyCostUSD, 2.70)
	approx(t, "MonthlyCostBeforeMargin", mc.MonthlyCostBeforeMargin, 54.0)
	approx(t, "MonthlyCostUSD", mc.MonthlyCostUSD, 64.80)
	approx(t, "MonthlyCostJPY", mc.MonthlyCostJPY, 9720.0)
	approx(t, "AnnualCostUSD", mc.AnnualCostUSD, 777.6)
	approx(t, "AnnualCostJPY", mc.AnnualCostJPY, 116640.0)
}

func TestCalcMonthlyCostMonotonic(t *testing.T) {
	const cost = 0.013
	base := CalcMonthlyCost(cost, 100, 20, 20, 150).MonthlyCostUSD

	tests := []struct {
		name string
		vary func(i int) float64
	}{
		{"dailyRequests", func(i int) float64 { return CalcMonthlyCost(cost, 100+i*50, 20, 20, 150).MonthlyCostUSD }},
		{"workingDays", func(i int) float64 { return CalcMonthlyCost(cost, 100, 20+i, 20, 150).MonthlyCostUSD }},
		{"safetyMargin", func(i int) float64 { return CalcMonthlyCost(cost, 100, 20, 20+float64(i)*5, 150).MonthlyCostUSD }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := base
			for i := 1; i <= 10; i++ {
				got := tt.vary(i)
				if got < prev {
					t.Fatalf("step %d: %v < %v", i, got, prev)
				}
				prev = got
			}
		})
	}
}

func TestCalcMonthlyCostZeroTraffic(t *testing.T) {
	mc := CalcMonthlyCost(0.5, 0, 20, 20, 150)
	if mc.MonthlyCostUSD != 0 || mc.AnnualCostJPY != 0 {
		t.Errorf("zero traffic gave %+v", mc)
	}
}
