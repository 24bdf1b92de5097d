package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/longview/planengine/internal/domain"
)

// BlendedReturnRate returns the allocation-weighted average of the plan's
// per-category return rates.
func BlendedReturnRate(plan *domain.Plan) decimal.Decimal {
	return plan.CashReturnRate.Mul(plan.CashAllocationWeight).
		Add(plan.EquityReturnRate.Mul(plan.EquityAllocationWeight)).
		Add(plan.HousingReturnRate.Mul(plan.HousingAllocationWeight))
}

// HoldingsBlendedReturnRate returns the holdings-value-weighted average of the
// plan's per-category rates. Categories without a configured rate contribute
// the cash rate. With no holdings value it falls back to the allocation
// weighting.
func HoldingsBlendedReturnRate(plan *domain.Plan, holdings []domain.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.Value)
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return BlendedReturnRate(plan)
	}

	weighted := decimal.Zero
	for _, h := range holdings {
		rate := categoryReturnRate(plan, h.Category)
		weighted = weighted.Add(h.Value.Mul(rate))
	}
	return weighted.Div(total)
}

func categoryReturnRate(plan *domain.Plan, category string) decimal.Decimal {
	switch category {
	case domain.CategoryEquity:
		return plan.EquityReturnRate
	case domain.CategoryProperty:
		return plan.HousingReturnRate
	default:
		return plan.CashReturnRate
	}
}
