package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/longview/planengine/internal/domain"
)

// Engine orchestrates full projections from a plan and its holdings. The
// production base projection comes from the remote projection service; the
// engine reproduces the same contract locally for the CLI and for tests.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger. A nil logger restores the no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// BuildProjection computes a base projection for the plan: an optional
// pre-retirement accumulation phase from the current age to the retirement
// age, then the drawdown phase across the retirement horizon.
func (e *Engine) BuildProjection(plan *domain.Plan, holdings []domain.Holding, events []domain.LifeEvent) *domain.RetirementProjection {
	split := domain.SplitHoldings(holdings, nil)
	blended := HoldingsBlendedReturnRate(plan, holdings)

	liquid := split.LiquidAssets
	nonSpendable := split.NonSpendableAssets

	var accumulation *domain.PreRetirementAccumulation
	if plan.CurrentAge != nil && *plan.CurrentAge < plan.RetirementAge {
		yearsToRetirement := plan.RetirementAge - *plan.CurrentAge
		one := decimal.NewFromInt(1)
		annualContribution := plan.MonthlyInvestment().Mul(decimal.NewFromInt(12))

		for y := 0; y < yearsToRetirement; y++ {
			liquid = liquid.Mul(one.Add(blended)).Add(annualContribution)
			nonSpendable = nonSpendable.Mul(one.Add(plan.HousingReturnRate))
		}

		accumulation = &domain.PreRetirementAccumulation{
			YearsToRetirement:   yearsToRetirement,
			MonthlyContribution: plan.MonthlyInvestment(),
			ProjectedLiquid:     liquid,
		}
		e.Logger.Debugf("accumulated %d years to retirement: liquid %s, non-spendable %s",
			yearsToRetirement, liquid.StringFixed(2), nonSpendable.StringFixed(2))
	}

	sim := SimulateDrawdown(DrawdownInput{
		InitialLiquid:       liquid,
		InitialNonSpendable: nonSpendable,
		RetirementAge:       plan.RetirementAge,
		LifeExpectancy:      plan.LifeExpectancy,
		AnnualExpenses:      plan.AnnualExpenses(),
		BlendedReturnRate:   blended,
		InflationRate:       plan.InflationRate,
		HousingReturnRate:   plan.HousingReturnRate,
		Income:              plan.Income(),
		LifeEventsByAge:     domain.NetLifeEventsByAge(events),
		Currency:            plan.Currency,
	})

	return &domain.RetirementProjection{
		LiquidAssets:              liquid,
		NonSpendableAtRetirement:  nonSpendable,
		YearlyProjections:         sim.Years,
		RunwayYears:               sim.RunwayYears,
		RunwayMonths:              sim.RunwayMonths,
		DepletionAge:              sim.DepletionAge,
		PreRetirementAccumulation: accumulation,
	}
}
