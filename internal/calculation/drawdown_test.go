package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longview/planengine/internal/domain"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// Flat two-year depletion: 120k liquid, 60k/yr expenses, no growth, no income.
func TestSimulateDrawdown_DepletionNoGrowthNoIncome(t *testing.T) {
	res := SimulateDrawdown(DrawdownInput{
		InitialLiquid:  d(120000),
		RetirementAge:  65,
		LifeExpectancy: 67,
		AnnualExpenses: d(60000),
		Currency:       "EUR",
	})

	require.Len(t, res.Years, 3)

	assert.True(t, res.Years[0].EndingBalance.Equal(d(60000)), "year 1 ending: %s", res.Years[0].EndingBalance)
	assert.True(t, res.Years[1].EndingBalance.Equal(decimal.Zero), "year 2 ending: %s", res.Years[1].EndingBalance)
	assert.True(t, res.Years[2].EndingBalance.Equal(decimal.Zero), "year 3 ending: %s", res.Years[2].EndingBalance)

	// Year 3 records no withdrawal: the pool is already exhausted.
	assert.True(t, res.Years[2].Withdrawals.IsZero())

	require.NotNil(t, res.DepletionAge)
	assert.Equal(t, 66, *res.DepletionAge)
	assert.True(t, res.RunwayYears.Equal(d(2)))
	assert.True(t, res.RunwayMonths.Equal(d(24)))
}

func TestSimulateDrawdown_LiquidationTrigger(t *testing.T) {
	res := SimulateDrawdown(DrawdownInput{
		InitialLiquid:       d(10000),
		InitialNonSpendable: d(200000),
		RetirementAge:       65,
		LifeExpectancy:      75,
		AnnualExpenses:      d(9800),
		Income:              domain.MonthlyIncome{Other: d(50)},
	})

	// Year 1: withdraw 9800 - 600 = 9200, ending 800, under the 1000 threshold.
	require.True(t, res.Years[0].EndingBalance.Equal(d(800)), "year 1 ending: %s", res.Years[0].EndingBalance)
	assert.False(t, res.Years[0].PropertyLiquidated)

	// Year 2: the full 200000 moves into the balance before anything else.
	y2 := res.Years[1]
	assert.True(t, y2.PropertyLiquidated)
	assert.Equal(t, 66, y2.Age)
	assert.True(t, y2.StartingBalance.Equal(d(200800)))
	assert.True(t, y2.NonSpendableValue.IsZero())
	// Rental income stops with the sale, so the full expense is withdrawn.
	assert.True(t, y2.Withdrawals.Equal(d(9800)), "year 2 withdrawals: %s", y2.Withdrawals)

	liquidated := 0
	for i, y := range res.Years {
		if y.PropertyLiquidated {
			liquidated++
		}
		if i >= 1 {
			assert.True(t, y.NonSpendableValue.IsZero(), "year %d non-spendable not zero", i+1)
			assert.True(t, y.Withdrawals.Equal(d(9800)), "year %d income should exclude rental", i+1)
		}
	}
	assert.Equal(t, 1, liquidated, "liquidation must fire exactly once")
}

func TestSimulateDrawdown_LifeEventSingleYearEffect(t *testing.T) {
	base := DrawdownInput{
		InitialLiquid:  d(100000),
		RetirementAge:  65,
		LifeExpectancy: 80,
		AnnualExpenses: d(12000),
		Income:         domain.MonthlyIncome{Pension: d(1000)},
	}
	withEvent := base
	withEvent.LifeEventsByAge = map[int]decimal.Decimal{70: d(50000)}

	plain := SimulateDrawdown(base)
	boosted := SimulateDrawdown(withEvent)

	require.Len(t, boosted.Years, len(plain.Years))
	for i := range plain.Years {
		delta := boosted.Years[i].EndingBalance.Sub(plain.Years[i].EndingBalance)
		if plain.Years[i].Age < 70 {
			assert.True(t, delta.IsZero(), "age %d changed before the event", plain.Years[i].Age)
		} else {
			// Zero growth carries the injection forward unchanged.
			assert.True(t, delta.Equal(d(50000)), "age %d delta: %s", plain.Years[i].Age, delta)
		}
	}
}

func TestSimulateDrawdown_NetsEventsViaLedger(t *testing.T) {
	events := []domain.LifeEvent{
		{Age: 70, Amount: d(30000), EventType: domain.EventTypeIncome},
		{Age: 70, Amount: d(10000), EventType: domain.EventTypeExpense},
	}
	byAge := domain.NetLifeEventsByAge(events)
	require.True(t, byAge[70].Equal(d(20000)))

	res := SimulateDrawdown(DrawdownInput{
		InitialLiquid:   d(50000),
		RetirementAge:   68,
		LifeExpectancy:  72,
		AnnualExpenses:  d(10000),
		LifeEventsByAge: byAge,
	})
	// Ages 68,69 drain 10000 each; age 70 drains 10000 and nets +20000.
	assert.True(t, res.Years[2].EndingBalance.Equal(d(40000)), "age 70 ending: %s", res.Years[2].EndingBalance)
}

func TestSimulateDrawdown_NonNegativeDisplayedBalances(t *testing.T) {
	inputs := []DrawdownInput{
		{InitialLiquid: d(5000), RetirementAge: 60, LifeExpectancy: 90, AnnualExpenses: d(40000)},
		{InitialLiquid: d(100000), InitialNonSpendable: d(300000), RetirementAge: 65, LifeExpectancy: 95,
			AnnualExpenses: d(50000), BlendedReturnRate: d(0.03), InflationRate: d(0.04), HousingReturnRate: d(0.02)},
		{InitialLiquid: d(0), InitialNonSpendable: d(250000), RetirementAge: 67, LifeExpectancy: 85, AnnualExpenses: d(30000)},
	}
	for _, in := range inputs {
		res := SimulateDrawdown(in)
		for _, y := range res.Years {
			assert.False(t, y.EndingBalance.IsNegative(), "ending balance negative at age %d", y.Age)
			assert.False(t, y.StartingBalance.IsNegative(), "starting balance negative at age %d", y.Age)
			assert.True(t, y.TotalWealth.Equal(y.EndingBalance.Add(y.NonSpendableValue)))
		}
	}
}

func TestSimulateDrawdown_FullHorizonAfterDepletion(t *testing.T) {
	res := SimulateDrawdown(DrawdownInput{
		InitialLiquid:  d(10000),
		RetirementAge:  65,
		LifeExpectancy: 90,
		AnnualExpenses: d(60000),
	})
	// No early return: all 26 years are emitted despite immediate depletion.
	assert.Len(t, res.Years, 26)
	require.NotNil(t, res.DepletionAge)
	assert.Equal(t, 65, *res.DepletionAge)
	assert.True(t, res.RunwayYears.Equal(d(1)))
}

func TestSimulateDrawdown_WealthNonNegativeBeforeDepletion(t *testing.T) {
	res := SimulateDrawdown(DrawdownInput{
		InitialLiquid:       d(80000),
		InitialNonSpendable: d(120000),
		RetirementAge:       65,
		LifeExpectancy:      85,
		AnnualExpenses:      d(40000),
		HousingReturnRate:   d(0.01),
	})
	require.NotNil(t, res.DepletionAge)
	idx := *res.DepletionAge - 65
	require.Greater(t, idx, 0)
	prior := res.Years[idx-1]
	assert.False(t, prior.TotalWealth.IsNegative())
}

func TestSimulateDrawdown_DegenerateInputs(t *testing.T) {
	// Retirement age past life expectancy: empty, not an error.
	res := SimulateDrawdown(DrawdownInput{
		InitialLiquid:  d(100000),
		RetirementAge:  70,
		LifeExpectancy: 65,
		AnnualExpenses: d(10000),
	})
	assert.Empty(t, res.Years)
	assert.True(t, res.RunwayYears.IsZero())
	assert.Nil(t, res.DepletionAge)

	// Equal ages: a single projected year.
	res = SimulateDrawdown(DrawdownInput{
		InitialLiquid:  d(100000),
		RetirementAge:  70,
		LifeExpectancy: 70,
		AnnualExpenses: d(10000),
	})
	assert.Len(t, res.Years, 1)

	// Zero assets: immediately depleted series across the whole horizon.
	res = SimulateDrawdown(DrawdownInput{
		RetirementAge:  65,
		LifeExpectancy: 70,
		AnnualExpenses: d(10000),
	})
	assert.Len(t, res.Years, 6)
	for _, y := range res.Years {
		assert.True(t, y.EndingBalance.IsZero())
		assert.True(t, y.Withdrawals.IsZero())
	}
}

func TestSimulateDrawdown_NoLiquidationAtZeroBalance(t *testing.T) {
	// The trigger requires a strictly positive balance; a dead pool never
	// pulls the property in.
	res := SimulateDrawdown(DrawdownInput{
		InitialLiquid:       d(0),
		InitialNonSpendable: d(200000),
		RetirementAge:       65,
		LifeExpectancy:      70,
		AnnualExpenses:      d(20000),
	})
	for _, y := range res.Years {
		assert.False(t, y.PropertyLiquidated)
	}
	assert.True(t, res.Years[len(res.Years)-1].NonSpendableValue.GreaterThan(d(200000-1)))
}
