package domain

import (
	"github.com/shopspring/decimal"
)

// Plan represents a retirement plan's scalar assumptions. It is owned by the
// external plan store; the engine only reads it.
type Plan struct {
	ID       string `yaml:"id,omitempty" json:"id,omitempty"`
	Name     string `yaml:"name" json:"name"`
	Currency string `yaml:"currency" json:"currency"`

	CurrentAge     *int `yaml:"current_age,omitempty" json:"current_age,omitempty"`
	RetirementAge  int  `yaml:"retirement_age" json:"retirement_age"`
	LifeExpectancy int  `yaml:"life_expectancy" json:"life_expectancy"`

	MonthlyExpenses decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`
	InflationRate   decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"` // 0.025 = 2.5%/yr

	// Recurring monthly income after retirement
	PensionMonthly        decimal.Decimal `yaml:"pension_monthly" json:"pension_monthly"`
	SocialSecurityMonthly decimal.Decimal `yaml:"social_security_monthly" json:"social_security_monthly"`
	OtherIncomeMonthly    decimal.Decimal `yaml:"other_income_monthly" json:"other_income_monthly"`

	// Pre-retirement accumulation inputs
	WorkingIncomeMonthly        decimal.Decimal `yaml:"working_income_monthly" json:"working_income_monthly"`
	WorkingExpensesMonthly      decimal.Decimal `yaml:"working_expenses_monthly" json:"working_expenses_monthly"`
	InvestmentAllocationPercent decimal.Decimal `yaml:"investment_allocation_percent" json:"investment_allocation_percent"` // 0-100

	// Per-category expected annual return rates with allocation weights.
	// Weights sum to 1; the blended rate is the weighted sum.
	CashReturnRate          decimal.Decimal `yaml:"cash_return_rate" json:"cash_return_rate"`
	EquityReturnRate        decimal.Decimal `yaml:"equity_return_rate" json:"equity_return_rate"`
	HousingReturnRate       decimal.Decimal `yaml:"housing_return_rate" json:"housing_return_rate"`
	CashAllocationWeight    decimal.Decimal `yaml:"cash_allocation_weight" json:"cash_allocation_weight"`
	EquityAllocationWeight  decimal.Decimal `yaml:"equity_allocation_weight" json:"equity_allocation_weight"`
	HousingAllocationWeight decimal.Decimal `yaml:"housing_allocation_weight" json:"housing_allocation_weight"`

	// Optional legacy floor; informational only, the simulator does not enforce it.
	TargetBalance *decimal.Decimal `yaml:"target_balance,omitempty" json:"target_balance,omitempty"`
}

// PlanningHorizonYears returns the number of retirement years the plan covers.
func (p *Plan) PlanningHorizonYears() int {
	return p.LifeExpectancy - p.RetirementAge
}

// MonthlyInvestment returns the monthly amount directed to investments while
// working: the allocation percentage of working surplus, floored at zero.
func (p *Plan) MonthlyInvestment() decimal.Decimal {
	surplus := p.WorkingIncomeMonthly.Sub(p.WorkingExpensesMonthly)
	if surplus.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return surplus.Mul(p.InvestmentAllocationPercent).Div(decimal.NewFromInt(100))
}

// AnnualExpenses returns the plan's annual expenses at today's price level.
func (p *Plan) AnnualExpenses() decimal.Decimal {
	return p.MonthlyExpenses.Mul(decimal.NewFromInt(12))
}

// MonthlyIncome groups the recurring post-retirement income streams.
type MonthlyIncome struct {
	Pension        decimal.Decimal `json:"pension"`
	SocialSecurity decimal.Decimal `json:"social_security"`
	Other          decimal.Decimal `json:"other"`
}

// Income returns the plan's recurring monthly income streams.
func (p *Plan) Income() MonthlyIncome {
	return MonthlyIncome{
		Pension:        p.PensionMonthly,
		SocialSecurity: p.SocialSecurityMonthly,
		Other:          p.OtherIncomeMonthly,
	}
}

// WhatIfAdjustments holds the five slider knobs. Zero/100 values mean "no
// change"; DefaultAdjustments returns that baseline.
type WhatIfAdjustments struct {
	RetirementAgeOffset int             `yaml:"retirement_age_offset" json:"retirement_age_offset"` // years, signed
	ExpensesPercent     decimal.Decimal `yaml:"expenses_percent" json:"expenses_percent"`           // 100 = unchanged
	ReturnRateOffset    decimal.Decimal `yaml:"return_rate_offset" json:"return_rate_offset"`       // percentage points
	InflationOffset     decimal.Decimal `yaml:"inflation_offset" json:"inflation_offset"`           // percentage points
	ContributionPercent decimal.Decimal `yaml:"contribution_percent" json:"contribution_percent"`   // 100 = unchanged
}

// DefaultAdjustments returns the "no change" adjustment set.
func DefaultAdjustments() WhatIfAdjustments {
	return WhatIfAdjustments{
		RetirementAgeOffset: 0,
		ExpensesPercent:     decimal.NewFromInt(100),
		ReturnRateOffset:    decimal.Zero,
		InflationOffset:     decimal.Zero,
		ContributionPercent: decimal.NewFromInt(100),
	}
}

// IsDefault reports whether every knob is at its "no change" value.
func (a WhatIfAdjustments) IsDefault() bool {
	hundred := decimal.NewFromInt(100)
	return a.RetirementAgeOffset == 0 &&
		a.ExpensesPercent.Equal(hundred) &&
		a.ReturnRateOffset.IsZero() &&
		a.InflationOffset.IsZero() &&
		a.ContributionPercent.Equal(hundred)
}

// Equal reports value equality between two adjustment sets.
func (a WhatIfAdjustments) Equal(b WhatIfAdjustments) bool {
	return a.RetirementAgeOffset == b.RetirementAgeOffset &&
		a.ExpensesPercent.Equal(b.ExpensesPercent) &&
		a.ReturnRateOffset.Equal(b.ReturnRateOffset) &&
		a.InflationOffset.Equal(b.InflationOffset) &&
		a.ContributionPercent.Equal(b.ContributionPercent)
}

// ScenarioOverrides are direct replacement values for specific plan fields.
// A present override always wins over the corresponding adjustment-derived
// value; percent adjustments then compose on top of the resolved value.
type ScenarioOverrides struct {
	PensionMonthly        *decimal.Decimal `yaml:"pension_monthly,omitempty" json:"pension_monthly,omitempty"`
	SocialSecurityMonthly *decimal.Decimal `yaml:"social_security_monthly,omitempty" json:"social_security_monthly,omitempty"`
	OtherIncomeMonthly    *decimal.Decimal `yaml:"other_income_monthly,omitempty" json:"other_income_monthly,omitempty"`
	MonthlyExpenses       *decimal.Decimal `yaml:"monthly_expenses,omitempty" json:"monthly_expenses,omitempty"`
	TargetRetirementAge   *int             `yaml:"target_retirement_age,omitempty" json:"target_retirement_age,omitempty"`
	LifeExpectancy        *int             `yaml:"life_expectancy,omitempty" json:"life_expectancy,omitempty"`
}

// IsEmpty reports whether no override is present.
func (o ScenarioOverrides) IsEmpty() bool {
	return o.PensionMonthly == nil &&
		o.SocialSecurityMonthly == nil &&
		o.OtherIncomeMonthly == nil &&
		o.MonthlyExpenses == nil &&
		o.TargetRetirementAge == nil &&
		o.LifeExpectancy == nil
}

// Equal reports value equality between two override sets.
func (o ScenarioOverrides) Equal(other ScenarioOverrides) bool {
	return equalDecimalPtr(o.PensionMonthly, other.PensionMonthly) &&
		equalDecimalPtr(o.SocialSecurityMonthly, other.SocialSecurityMonthly) &&
		equalDecimalPtr(o.OtherIncomeMonthly, other.OtherIncomeMonthly) &&
		equalDecimalPtr(o.MonthlyExpenses, other.MonthlyExpenses) &&
		equalIntPtr(o.TargetRetirementAge, other.TargetRetirementAge) &&
		equalIntPtr(o.LifeExpectancy, other.LifeExpectancy)
}

func equalDecimalPtr(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
