package domain

import (
	"github.com/shopspring/decimal"
)

// YearlyProjection represents the drawdown state for a single retirement year.
type YearlyProjection struct {
	Year                      int             `json:"year"` // 1-based
	Age                       int             `json:"age"`
	StartingBalance           decimal.Decimal `json:"starting_balance"`
	InvestmentReturn          decimal.Decimal `json:"investment_return"`
	Withdrawals               decimal.Decimal `json:"withdrawals"`
	EndingBalance             decimal.Decimal `json:"ending_balance"`
	InflationAdjustedExpenses decimal.Decimal `json:"inflation_adjusted_expenses"`
	NonSpendableValue         decimal.Decimal `json:"non_spendable_value"`
	TotalWealth               decimal.Decimal `json:"total_wealth"`
	Currency                  string          `json:"currency"`
	PropertyLiquidated        bool            `json:"property_liquidated"`
}

// IsDepleted reports whether the liquid pool is exhausted at year end.
func (yp *YearlyProjection) IsDepleted() bool {
	return yp.EndingBalance.LessThanOrEqual(decimal.Zero)
}

// PreRetirementAccumulation describes the working-phase growth that produced
// the assets-at-retirement figures of a base projection.
type PreRetirementAccumulation struct {
	YearsToRetirement   int             `json:"years_to_retirement"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	ProjectedLiquid     decimal.Decimal `json:"projected_liquid"`
}

// RetirementProjection is the aggregate projection result. Base projections
// come from the external projection service and are never mutated in place;
// what-if runs return fresh values.
type RetirementProjection struct {
	LiquidAssets              decimal.Decimal            `json:"liquid_assets"`
	NonSpendableAtRetirement  decimal.Decimal            `json:"non_spendable_at_retirement"`
	YearlyProjections         []YearlyProjection         `json:"yearly_projections"`
	RunwayYears               decimal.Decimal            `json:"runway_years"`
	RunwayMonths              decimal.Decimal            `json:"runway_months"`
	DepletionAge              *int                       `json:"depletion_age,omitempty"`
	PreRetirementAccumulation *PreRetirementAccumulation `json:"pre_retirement_accumulation,omitempty"`
}

// FinalTotalWealth returns the total wealth of the last projected year, or
// zero for an empty projection.
func (rp *RetirementProjection) FinalTotalWealth() decimal.Decimal {
	if len(rp.YearlyProjections) == 0 {
		return decimal.Zero
	}
	return rp.YearlyProjections[len(rp.YearlyProjections)-1].TotalWealth
}

// LastsFullHorizon reports whether the liquid pool survives every projected
// year.
func (rp *RetirementProjection) LastsFullHorizon() bool {
	return rp.DepletionAge == nil
}

// LiquidationYear returns the projection entry in which the property
// liquidation fired, or nil if it never did.
func (rp *RetirementProjection) LiquidationYear() *YearlyProjection {
	for i := range rp.YearlyProjections {
		if rp.YearlyProjections[i].PropertyLiquidated {
			return &rp.YearlyProjections[i]
		}
	}
	return nil
}
