package domain

import (
	"github.com/shopspring/decimal"
)

// Category labels for holdings. The default spendability mapping treats every
// category as spendable except property.
const (
	CategoryCash     = "cash"
	CategoryEquity   = "equity"
	CategoryProperty = "property"
)

// Holding is a per-category aggregate supplied by the external holdings source.
type Holding struct {
	Category string          `yaml:"category" json:"category"`
	Value    decimal.Decimal `yaml:"value" json:"value"`
}

// HoldingsSplit divides total holdings into liquid and non-spendable pools at
// a snapshot instant. LiquidAssets + NonSpendableAssets equals the total
// holdings value.
type HoldingsSplit struct {
	LiquidAssets       decimal.Decimal `json:"liquid_assets"`
	NonSpendableAssets decimal.Decimal `json:"non_spendable_assets"`
}

// Total returns the combined holdings value.
func (hs HoldingsSplit) Total() decimal.Decimal {
	return hs.LiquidAssets.Add(hs.NonSpendableAssets)
}

// DefaultNonSpendableCategories returns the default spendability mapping:
// a single illiquid property category.
func DefaultNonSpendableCategories() map[string]bool {
	return map[string]bool{CategoryProperty: true}
}

// SplitHoldings partitions holdings by spendability. A nil nonSpendable map
// falls back to the default mapping.
func SplitHoldings(holdings []Holding, nonSpendable map[string]bool) HoldingsSplit {
	if nonSpendable == nil {
		nonSpendable = DefaultNonSpendableCategories()
	}
	var split HoldingsSplit
	for _, h := range holdings {
		if nonSpendable[h.Category] {
			split.NonSpendableAssets = split.NonSpendableAssets.Add(h.Value)
		} else {
			split.LiquidAssets = split.LiquidAssets.Add(h.Value)
		}
	}
	return split
}
