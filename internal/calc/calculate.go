package calc

import "github.com/theirongolddev/agentcost/internal/model"

// Calculate resolves a detailed input against md and produces a complete
// CostResult. The only error is an unknown main model.
func Calculate(in model.DetailedInput, md MasterData, recommend AuxiliaryFunc) (model.CostResult, error) {
	res, err := Resolve(in, md, recommend)
	if err != nil {
		return model.CostResult{}, err
	}

	rc := CalcRequestCost(res.Input)
	mc := CalcMonthlyCost(rc.CostPerRequest, in.DailyRequests, in.MonthlyWorkingDays, in.SafetyMargin, in.ExchangeRate)

	auxName := ""
	if res.AuxiliaryDistinct {
		auxName = res.Auxiliary.Name
	}

	reembed := 0.0
	if in.SemanticSearch {
		reembed = ReembeddingCost(in.ReembeddingMonthlyChars, res.Input.EmbeddingModel, in.Language).CostUSD
	}

	return model.CostResult{
		CostPerRequest:          rc.CostPerRequest,
		Steps:                   rc.Steps,
		DailyCostUSD:            mc.DailyCostUSD,
		MonthlyCostUSD:          mc.MonthlyCostUSD,
		MonthlyCostBeforeMargin: mc.MonthlyCostBeforeMargin,
		MonthlyCostJPY:          mc.MonthlyCostJPY,
		AnnualCostUSD:           mc.AnnualCostUSD,
		AnnualCostJPY:           mc.AnnualCostJPY,
		TotalInputTokens:        rc.TotalInputTokens,
		TotalOutputTokens:       rc.TotalOutputTokens,
		SafetyMarginRate:        in.SafetyMargin,
		ExchangeRate:            in.ExchangeRate,
		LongContextSurcharge:    rc.LongContextSurcharge,
		ReembeddingMonthlyUSD:   reembed,
		Assumptions:             BuildAssumptions(in, res.Main, auxName),
	}, nil
}

// CalculateSimple expands a simple input with the recommended auxiliary
// model and calculates it.
func CalculateSimple(in model.SimpleInput, md MasterData, recommend AuxiliaryFunc, p Presets) (model.CostResult, error) {
	detailed, err := ExpandSimple(in, md, recommend, p)
	if err != nil {
		return model.CostResult{}, err
	}
	return Calculate(detailed, md, recommend)
}

// ExpandSimple looks up the auxiliary recommendation for the main model and
// runs the mode adapter.
func ExpandSimple(in model.SimpleInput, md MasterData, recommend AuxiliaryFunc, p Presets) (model.DetailedInput, error) {
	main, ok := md.Model(in.ModelID)
	if !ok {
		return model.DetailedInput{}, unknownMain(in.ModelID)
	}

	var auxID *int
	if recommend != nil {
		if aux, ok := recommend(main, md.AllModels()); ok {
			id := aux.ID
			auxID = &id
		}
	}
	return ToDetailed(in, auxID, p), nil
}
