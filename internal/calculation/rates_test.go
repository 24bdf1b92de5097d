package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/longview/planengine/internal/domain"
)

func ratesPlan() *domain.Plan {
	return &domain.Plan{
		CashReturnRate:          d(0.01),
		EquityReturnRate:        d(0.06),
		HousingReturnRate:       d(0.03),
		CashAllocationWeight:    d(0.2),
		EquityAllocationWeight:  d(0.6),
		HousingAllocationWeight: d(0.2),
	}
}

func TestBlendedReturnRate(t *testing.T) {
	// 0.01*0.2 + 0.06*0.6 + 0.03*0.2 = 0.044
	got := BlendedReturnRate(ratesPlan())
	assert.True(t, got.Equal(d(0.044)), "blended rate: %s", got)
}

func TestHoldingsBlendedReturnRate_ValueWeighted(t *testing.T) {
	holdings := []domain.Holding{
		{Category: domain.CategoryCash, Value: d(50000)},
		{Category: domain.CategoryEquity, Value: d(250000)},
		{Category: domain.CategoryProperty, Value: d(400000)},
	}
	// (50000*0.01 + 250000*0.06 + 400000*0.03) / 700000
	want := d(27500).Div(d(700000))
	got := HoldingsBlendedReturnRate(ratesPlan(), holdings)
	assert.True(t, got.Equal(want), "holdings-weighted rate: %s", got)
}

func TestHoldingsBlendedReturnRate_FallsBackWithoutValue(t *testing.T) {
	got := HoldingsBlendedReturnRate(ratesPlan(), nil)
	assert.True(t, got.Equal(d(0.044)))

	got = HoldingsBlendedReturnRate(ratesPlan(), []domain.Holding{
		{Category: domain.CategoryCash, Value: decimal.Zero},
	})
	assert.True(t, got.Equal(d(0.044)))
}

func TestHoldingsBlendedReturnRate_UnknownCategoryUsesCashRate(t *testing.T) {
	holdings := []domain.Holding{
		{Category: "collectibles", Value: d(10000)},
	}
	got := HoldingsBlendedReturnRate(ratesPlan(), holdings)
	assert.True(t, got.Equal(d(0.01)), "unknown category rate: %s", got)
}
