package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/longview/planengine/internal/domain"
)

// WhatIfMemo caches the most recent ApplyWhatIf result keyed on value
// equality of the full input tuple. The transform is pure, so a matching
// tuple can reuse the previous result; this replaces framework-level
// recomputation memoization.
//
// Base projections are immutable once fetched and replaced wholesale, so the
// base is compared by pointer identity.
type WhatIfMemo struct {
	valid bool

	base        *domain.RetirementProjection
	plan        domain.Plan
	adjustments domain.WhatIfAdjustments
	overrides   domain.ScenarioOverrides
	events      []domain.LifeEvent
	blendedRate decimal.Decimal

	result *domain.RetirementProjection
	hits   int
	misses int
}

// Apply returns the memoized result when the input tuple matches the previous
// call, recomputing otherwise.
func (m *WhatIfMemo) Apply(base *domain.RetirementProjection, plan *domain.Plan, adj domain.WhatIfAdjustments, ov domain.ScenarioOverrides, events []domain.LifeEvent, blendedReturnRate decimal.Decimal) *domain.RetirementProjection {
	if m.valid && m.matches(base, plan, adj, ov, events, blendedReturnRate) {
		m.hits++
		return m.result
	}
	m.misses++

	m.base = base
	m.plan = *plan
	m.adjustments = adj
	m.overrides = ov
	m.events = append([]domain.LifeEvent(nil), events...)
	m.blendedRate = blendedReturnRate
	m.result = ApplyWhatIf(base, plan, adj, ov, events, blendedReturnRate)
	m.valid = true
	return m.result
}

// Invalidate drops the cached result, forcing the next Apply to recompute.
func (m *WhatIfMemo) Invalidate() {
	m.valid = false
	m.result = nil
}

// Stats returns cache hit and miss counts.
func (m *WhatIfMemo) Stats() (hits, misses int) {
	return m.hits, m.misses
}

func (m *WhatIfMemo) matches(base *domain.RetirementProjection, plan *domain.Plan, adj domain.WhatIfAdjustments, ov domain.ScenarioOverrides, events []domain.LifeEvent, blendedReturnRate decimal.Decimal) bool {
	return m.base == base &&
		plansEqual(&m.plan, plan) &&
		m.adjustments.Equal(adj) &&
		m.overrides.Equal(ov) &&
		domain.EqualLifeEvents(m.events, events) &&
		m.blendedRate.Equal(blendedReturnRate)
}

func plansEqual(a, b *domain.Plan) bool {
	if a.ID != b.ID || a.Currency != b.Currency ||
		a.RetirementAge != b.RetirementAge || a.LifeExpectancy != b.LifeExpectancy {
		return false
	}
	if (a.CurrentAge == nil) != (b.CurrentAge == nil) {
		return false
	}
	if a.CurrentAge != nil && *a.CurrentAge != *b.CurrentAge {
		return false
	}
	pairs := [][2]decimal.Decimal{
		{a.MonthlyExpenses, b.MonthlyExpenses},
		{a.InflationRate, b.InflationRate},
		{a.PensionMonthly, b.PensionMonthly},
		{a.SocialSecurityMonthly, b.SocialSecurityMonthly},
		{a.OtherIncomeMonthly, b.OtherIncomeMonthly},
		{a.WorkingIncomeMonthly, b.WorkingIncomeMonthly},
		{a.WorkingExpensesMonthly, b.WorkingExpensesMonthly},
		{a.InvestmentAllocationPercent, b.InvestmentAllocationPercent},
		{a.CashReturnRate, b.CashReturnRate},
		{a.EquityReturnRate, b.EquityReturnRate},
		{a.HousingReturnRate, b.HousingReturnRate},
		{a.CashAllocationWeight, b.CashAllocationWeight},
		{a.EquityAllocationWeight, b.EquityAllocationWeight},
		{a.HousingAllocationWeight, b.HousingAllocationWeight},
	}
	for _, p := range pairs {
		if !p[0].Equal(p[1]) {
			return false
		}
	}
	return true
}
