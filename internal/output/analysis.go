package output

import (
	"github.com/shopspring/decimal"

	"github.com/longview/planengine/internal/domain"
)

// Insight summarizes the headline facts of a projection.
// Extracted from embedded console logic for testability.
type Insight struct {
	RunwayYears      decimal.Decimal
	RunwayMonths     decimal.Decimal
	LastsFullHorizon bool
	DepletionAge     *int
	LiquidationAge   *int
	FinalTotalWealth decimal.Decimal
	PeakLiquid       decimal.Decimal
	PeakLiquidAge    int
}

// AnalyzeProjection derives the insight summary from a projection.
func AnalyzeProjection(proj *domain.RetirementProjection) Insight {
	ins := Insight{
		RunwayYears:      proj.RunwayYears,
		RunwayMonths:     proj.RunwayMonths,
		LastsFullHorizon: proj.LastsFullHorizon(),
		DepletionAge:     proj.DepletionAge,
		FinalTotalWealth: proj.FinalTotalWealth(),
	}
	if ly := proj.LiquidationYear(); ly != nil {
		age := ly.Age
		ins.LiquidationAge = &age
	}
	for _, y := range proj.YearlyProjections {
		if y.EndingBalance.GreaterThan(ins.PeakLiquid) {
			ins.PeakLiquid = y.EndingBalance
			ins.PeakLiquidAge = y.Age
		}
	}
	return ins
}
