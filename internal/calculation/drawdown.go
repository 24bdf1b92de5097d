package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/longview/planengine/internal/domain"
)

// liquidationThresholdFraction is the fixed fraction of the liquid balance at
// retirement below which the non-spendable asset is sold. Not user
// configurable.
var liquidationThresholdFraction = decimal.NewFromFloat(0.10)

// DrawdownInput carries everything the simulator needs for one run. All rates
// are decimals (0.07 = 7%); all money shares the plan's reporting currency.
type DrawdownInput struct {
	InitialLiquid       decimal.Decimal
	InitialNonSpendable decimal.Decimal
	RetirementAge       int
	LifeExpectancy      int
	// Annual expenses in the first retirement year, before inflation.
	AnnualExpenses    decimal.Decimal
	BlendedReturnRate decimal.Decimal
	InflationRate     decimal.Decimal
	HousingReturnRate decimal.Decimal
	Income            domain.MonthlyIncome
	LifeEventsByAge   map[int]decimal.Decimal
	Currency          string
}

// DrawdownResult is the simulator output: the full yearly series plus the
// derived runway metrics.
type DrawdownResult struct {
	Years        []domain.YearlyProjection
	RunwayYears  decimal.Decimal
	RunwayMonths decimal.Decimal
	DepletionAge *int
}

// SimulateDrawdown advances a liquid/non-spendable balance pair year by year
// from retirement age to life expectancy inclusive. The full horizon is always
// produced, even after depletion, so charts can show the zero-balance tail.
//
// Out-of-range inputs do not raise errors; they yield a degenerate but
// well-defined series (possibly empty). Callers validate plans upstream.
func SimulateDrawdown(in DrawdownInput) DrawdownResult {
	horizon := in.LifeExpectancy - in.RetirementAge
	if horizon < 0 {
		return DrawdownResult{
			Years:        []domain.YearlyProjection{},
			RunwayYears:  decimal.Zero,
			RunwayMonths: decimal.Zero,
		}
	}

	twelve := decimal.NewFromInt(12)
	one := decimal.NewFromInt(1)

	balance := in.InitialLiquid
	nonSpendable := in.InitialNonSpendable
	expenses := in.AnnualExpenses
	threshold := in.InitialLiquid.Mul(liquidationThresholdFraction)

	// Liquidation latch carried in the loop state; it fires at most once.
	hasLiquidated := false
	liquidationAge := 0

	years := make([]domain.YearlyProjection, 0, horizon+1)

	for i := 0; i <= horizon; i++ {
		age := in.RetirementAge + i

		if !hasLiquidated && nonSpendable.GreaterThan(decimal.Zero) &&
			balance.GreaterThan(decimal.Zero) && balance.LessThan(threshold) {
			balance = balance.Add(nonSpendable)
			nonSpendable = decimal.Zero
			hasLiquidated = true
			liquidationAge = age
		}

		startingBalance := decimal.Max(decimal.Zero, balance)
		investmentReturn := startingBalance.Mul(in.BlendedReturnRate)

		// Rental-style income stops once the income-producing asset is sold.
		otherIncome := in.Income.Other
		if hasLiquidated {
			otherIncome = decimal.Zero
		}
		annualIncome := in.Income.Pension.Add(in.Income.SocialSecurity).Add(otherIncome).Mul(twelve)

		// Once the pool is exhausted no withdrawal is recorded; income simply
		// fails to cover expenses without driving the series further negative.
		withdrawals := decimal.Zero
		if balance.GreaterThan(decimal.Zero) {
			withdrawals = decimal.Max(decimal.Zero, expenses.Sub(annualIncome))
		}

		eventAdjustment := in.LifeEventsByAge[age]

		balance = balance.Add(investmentReturn).Sub(withdrawals).Add(eventAdjustment)

		if !hasLiquidated {
			nonSpendable = nonSpendable.Mul(one.Add(in.HousingReturnRate))
		}

		endingBalance := decimal.Max(decimal.Zero, balance)
		years = append(years, domain.YearlyProjection{
			Year:                      i + 1,
			Age:                       age,
			StartingBalance:           startingBalance,
			InvestmentReturn:          investmentReturn,
			Withdrawals:               withdrawals,
			EndingBalance:             endingBalance,
			InflationAdjustedExpenses: expenses,
			NonSpendableValue:         nonSpendable,
			TotalWealth:               endingBalance.Add(nonSpendable),
			Currency:                  in.Currency,
			PropertyLiquidated:        hasLiquidated && age == liquidationAge,
		})

		// Inflation applies to the next iteration's expenses.
		expenses = expenses.Mul(one.Add(in.InflationRate))
	}

	result := DrawdownResult{Years: years}

	depletionIdx := -1
	for i := range years {
		if years[i].IsDepleted() {
			depletionIdx = i
			break
		}
	}
	if depletionIdx >= 0 {
		result.RunwayYears = decimal.NewFromInt(int64(depletionIdx + 1))
		depletionAge := in.RetirementAge + depletionIdx
		result.DepletionAge = &depletionAge
	} else {
		result.RunwayYears = decimal.NewFromInt(int64(len(years)))
	}
	result.RunwayMonths = result.RunwayYears.Mul(twelve)

	return result
}
