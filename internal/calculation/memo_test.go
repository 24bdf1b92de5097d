package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/longview/planengine/internal/domain"
)

func TestWhatIfMemo_HitOnIdenticalTuple(t *testing.T) {
	plan := testPlan()
	base, _ := buildBase(t, plan)
	adj := domain.DefaultAdjustments()
	rate := d(0.04)

	var memo WhatIfMemo
	first := memo.Apply(base, plan, adj, domain.ScenarioOverrides{}, nil, rate)
	second := memo.Apply(base, plan, adj, domain.ScenarioOverrides{}, nil, rate)

	assert.Same(t, first, second)
	hits, misses := memo.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestWhatIfMemo_MissOnChangedAdjustments(t *testing.T) {
	plan := testPlan()
	base, _ := buildBase(t, plan)
	rate := d(0.04)

	var memo WhatIfMemo
	first := memo.Apply(base, plan, domain.DefaultAdjustments(), domain.ScenarioOverrides{}, nil, rate)

	adj := domain.DefaultAdjustments()
	adj.ExpensesPercent = decimal.NewFromInt(110)
	second := memo.Apply(base, plan, adj, domain.ScenarioOverrides{}, nil, rate)

	assert.NotSame(t, first, second)
	_, misses := memo.Stats()
	assert.Equal(t, 2, misses)
}

func TestWhatIfMemo_MissOnNewBasePointer(t *testing.T) {
	plan := testPlan()
	base, _ := buildBase(t, plan)
	replaced := *base
	rate := d(0.04)

	var memo WhatIfMemo
	first := memo.Apply(base, plan, domain.DefaultAdjustments(), domain.ScenarioOverrides{}, nil, rate)
	second := memo.Apply(&replaced, plan, domain.DefaultAdjustments(), domain.ScenarioOverrides{}, nil, rate)

	assert.NotSame(t, first, second)
}

func TestWhatIfMemo_MissOnEventListChange(t *testing.T) {
	plan := testPlan()
	base, _ := buildBase(t, plan)
	rate := d(0.04)
	events := []domain.LifeEvent{
		{ID: "e1", Age: 70, Amount: d(10000), EventType: domain.EventTypeIncome},
	}

	var memo WhatIfMemo
	memo.Apply(base, plan, domain.DefaultAdjustments(), domain.ScenarioOverrides{}, events, rate)

	// Same values, fresh slice: still a hit.
	memo.Apply(base, plan, domain.DefaultAdjustments(), domain.ScenarioOverrides{},
		append([]domain.LifeEvent(nil), events...), rate)
	hits, _ := memo.Stats()
	assert.Equal(t, 1, hits)

	changed := append([]domain.LifeEvent(nil), events...)
	changed[0].Amount = d(20000)
	memo.Apply(base, plan, domain.DefaultAdjustments(), domain.ScenarioOverrides{}, changed, rate)
	_, misses := memo.Stats()
	assert.Equal(t, 2, misses)
}

func TestWhatIfMemo_InvalidateForcesRecompute(t *testing.T) {
	plan := testPlan()
	base, _ := buildBase(t, plan)
	rate := d(0.04)

	var memo WhatIfMemo
	first := memo.Apply(base, plan, domain.DefaultAdjustments(), domain.ScenarioOverrides{}, nil, rate)
	memo.Invalidate()
	second := memo.Apply(base, plan, domain.DefaultAdjustments(), domain.ScenarioOverrides{}, nil, rate)

	assert.NotSame(t, first, second)
	_, misses := memo.Stats()
	assert.Equal(t, 2, misses)
}
