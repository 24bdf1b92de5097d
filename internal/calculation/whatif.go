package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/longview/planengine/internal/domain"
)

// ResolvedScenario holds the effective scalar values after overrides and
// adjustments are applied. Overrides win over adjustment-derived values;
// percent adjustments compose multiplicatively on the resolved value.
type ResolvedScenario struct {
	RetirementAge         int
	LifeExpectancy        int
	MonthlyExpenses       decimal.Decimal // after expenses-percent scaling
	PensionMonthly        decimal.Decimal
	SocialSecurityMonthly decimal.Decimal
	OtherIncomeMonthly    decimal.Decimal
	ReturnRate            decimal.Decimal
	InflationRate         decimal.Decimal
	MonthlyContribution   decimal.Decimal // after contribution-percent scaling
}

// ResolveScenario derives the effective scenario scalars from the plan, the
// slider adjustments, and any direct overrides.
func ResolveScenario(plan *domain.Plan, adj domain.WhatIfAdjustments, ov domain.ScenarioOverrides, blendedReturnRate decimal.Decimal) ResolvedScenario {
	hundred := decimal.NewFromInt(100)

	retirementAge := plan.RetirementAge + adj.RetirementAgeOffset
	if ov.TargetRetirementAge != nil {
		retirementAge = *ov.TargetRetirementAge
	}

	lifeExpectancy := plan.LifeExpectancy
	if ov.LifeExpectancy != nil {
		lifeExpectancy = *ov.LifeExpectancy
	}

	monthlyExpenses := plan.MonthlyExpenses
	if ov.MonthlyExpenses != nil {
		monthlyExpenses = *ov.MonthlyExpenses
	}
	monthlyExpenses = monthlyExpenses.Mul(adj.ExpensesPercent).Div(hundred)

	pension := plan.PensionMonthly
	if ov.PensionMonthly != nil {
		pension = *ov.PensionMonthly
	}
	socialSecurity := plan.SocialSecurityMonthly
	if ov.SocialSecurityMonthly != nil {
		socialSecurity = *ov.SocialSecurityMonthly
	}
	otherIncome := plan.OtherIncomeMonthly
	if ov.OtherIncomeMonthly != nil {
		otherIncome = *ov.OtherIncomeMonthly
	}

	return ResolvedScenario{
		RetirementAge:         retirementAge,
		LifeExpectancy:        lifeExpectancy,
		MonthlyExpenses:       monthlyExpenses,
		PensionMonthly:        pension,
		SocialSecurityMonthly: socialSecurity,
		OtherIncomeMonthly:    otherIncome,
		ReturnRate:            blendedReturnRate.Add(adj.ReturnRateOffset.Div(hundred)),
		InflationRate:         plan.InflationRate.Add(adj.InflationOffset.Div(hundred)),
		MonthlyContribution:   plan.MonthlyInvestment().Mul(adj.ContributionPercent).Div(hundred),
	}
}

// ApplyWhatIf re-derives a full projection from a base projection under the
// given adjustments, overrides, and life events. It never mutates base or
// plan; identical inputs always yield an identical result.
func ApplyWhatIf(base *domain.RetirementProjection, plan *domain.Plan, adj domain.WhatIfAdjustments, ov domain.ScenarioOverrides, events []domain.LifeEvent, blendedReturnRate decimal.Decimal) *domain.RetirementProjection {
	resolved := ResolveScenario(plan, adj, ov, blendedReturnRate)
	twelve := decimal.NewFromInt(12)

	liquid, nonSpendable := adjustAssetsAtRetirement(base, plan, adj, resolved, blendedReturnRate)

	sim := SimulateDrawdown(DrawdownInput{
		InitialLiquid:       liquid,
		InitialNonSpendable: nonSpendable,
		RetirementAge:       resolved.RetirementAge,
		LifeExpectancy:      resolved.LifeExpectancy,
		AnnualExpenses:      resolved.MonthlyExpenses.Mul(twelve),
		BlendedReturnRate:   resolved.ReturnRate,
		InflationRate:       resolved.InflationRate,
		HousingReturnRate:   plan.HousingReturnRate,
		Income: domain.MonthlyIncome{
			Pension:        resolved.PensionMonthly,
			SocialSecurity: resolved.SocialSecurityMonthly,
			Other:          resolved.OtherIncomeMonthly,
		},
		LifeEventsByAge: domain.NetLifeEventsByAge(events),
		Currency:        plan.Currency,
	})

	out := *base
	out.YearlyProjections = sim.Years
	out.RunwayYears = sim.RunwayYears
	out.RunwayMonths = sim.RunwayMonths
	out.DepletionAge = sim.DepletionAge
	return &out
}

// adjustAssetsAtRetirement re-derives the liquid and non-spendable pools at
// the effective retirement age from the base projection's assets at its own
// retirement age. Two independent effects apply, each as an explicit
// year-by-year loop: contribution streams are not annuities with constant
// terms, so no closed form is used.
func adjustAssetsAtRetirement(base *domain.RetirementProjection, plan *domain.Plan, adj domain.WhatIfAdjustments, resolved ResolvedScenario, baseReturnRate decimal.Decimal) (liquid, nonSpendable decimal.Decimal) {
	one := decimal.NewFromInt(1)
	twelve := decimal.NewFromInt(12)

	liquid = base.LiquidAssets
	nonSpendable = base.NonSpendableAtRetirement

	annualContribution := resolved.MonthlyContribution.Mul(twelve)

	// Contribution-percent effect: compound the difference between adjusted
	// and base annual contributions over the base accumulation horizon.
	if !adj.ContributionPercent.Equal(decimal.NewFromInt(100)) &&
		base.PreRetirementAccumulation != nil &&
		base.PreRetirementAccumulation.YearsToRetirement > 0 {
		baseAnnual := plan.MonthlyInvestment().Mul(twelve)
		diff := annualContribution.Sub(baseAnnual)
		growth := one.Add(baseReturnRate)

		extra := decimal.Zero
		for y := 0; y < base.PreRetirementAccumulation.YearsToRetirement; y++ {
			extra = extra.Add(diff).Mul(growth)
		}
		liquid = liquid.Add(extra)
	}

	// Retirement-age-offset effect: walk the assets forward or backward by
	// the difference between the effective and base retirement ages. The
	// backward step reverses one compounding-plus-contribution year at a
	// time; it is a deliberate approximation, not an exact inverse of the
	// forward accumulation.
	delta := resolved.RetirementAge - plan.RetirementAge
	growth := one.Add(baseReturnRate)
	housingGrowth := one.Add(plan.HousingReturnRate)
	if delta > 0 {
		for y := 0; y < delta; y++ {
			liquid = liquid.Mul(growth).Add(annualContribution)
			nonSpendable = nonSpendable.Mul(housingGrowth)
		}
	} else if delta < 0 {
		for y := 0; y < -delta; y++ {
			liquid = liquid.Div(growth).Sub(annualContribution)
			if liquid.LessThan(decimal.Zero) {
				liquid = decimal.Zero
			}
			nonSpendable = nonSpendable.Div(housingGrowth)
		}
	}

	return liquid, nonSpendable
}
