package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/longview/planengine/internal/domain"
	"github.com/longview/planengine/pkg/dateutil"
)

// Configuration is the full input for a projection run: the plan, its
// holdings, and an optional what-if scenario. BirthDate is an alternative to
// plan.current_age; when the age is absent it is derived at load time.
type Configuration struct {
	Plan        domain.Plan               `yaml:"plan" json:"plan"`
	BirthDate   *time.Time                `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
	Holdings    []domain.Holding          `yaml:"holdings" json:"holdings"`
	Adjustments *domain.WhatIfAdjustments `yaml:"adjustments,omitempty" json:"adjustments,omitempty"`
	Overrides   *domain.ScenarioOverrides `yaml:"overrides,omitempty" json:"overrides,omitempty"`
	LifeEvents  []domain.LifeEvent        `yaml:"life_events,omitempty" json:"life_events,omitempty"`
}

// EffectiveAdjustments returns the configured adjustments, or the "no change"
// defaults when none are present.
func (c *Configuration) EffectiveAdjustments() domain.WhatIfAdjustments {
	if c.Adjustments == nil {
		return domain.DefaultAdjustments()
	}
	return *c.Adjustments
}

// EffectiveOverrides returns the configured overrides, or an empty set.
func (c *Configuration) EffectiveOverrides() domain.ScenarioOverrides {
	if c.Overrides == nil {
		return domain.ScenarioOverrides{}
	}
	return *c.Overrides
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if config.Plan.CurrentAge == nil && config.BirthDate != nil {
		age := dateutil.Age(*config.BirthDate, time.Now())
		config.Plan.CurrentAge = &age
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if err := ip.validatePlan(&config.Plan); err != nil {
		return fmt.Errorf("plan validation failed: %w", err)
	}

	for i, holding := range config.Holdings {
		if err := ip.validateHolding(&holding); err != nil {
			return fmt.Errorf("holding %d validation failed: %w", i, err)
		}
	}

	if config.Adjustments != nil {
		if err := ip.validateAdjustments(config.Adjustments); err != nil {
			return fmt.Errorf("adjustments validation failed: %w", err)
		}
	}

	if config.Overrides != nil {
		if err := ip.validateOverrides(config.Overrides); err != nil {
			return fmt.Errorf("overrides validation failed: %w", err)
		}
	}

	for i, event := range config.LifeEvents {
		if err := ip.validateLifeEvent(&event); err != nil {
			return fmt.Errorf("life event %d validation failed: %w", i, err)
		}
	}

	return nil
}

// validatePlan validates the plan's scalar assumptions
func (ip *InputParser) validatePlan(plan *domain.Plan) error {
	if plan.Name == "" {
		return fmt.Errorf("plan name is required")
	}
	if plan.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if plan.RetirementAge <= 0 {
		return fmt.Errorf("retirement age must be positive")
	}
	if plan.LifeExpectancy < plan.RetirementAge {
		return fmt.Errorf("life expectancy cannot be before retirement age")
	}
	if plan.CurrentAge != nil && *plan.CurrentAge < 0 {
		return fmt.Errorf("current age cannot be negative")
	}
	if plan.MonthlyExpenses.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly expenses cannot be negative")
	}
	if plan.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("inflation rate cannot be less than -10%% (extreme deflation)")
	}
	if plan.PensionMonthly.LessThan(decimal.Zero) ||
		plan.SocialSecurityMonthly.LessThan(decimal.Zero) ||
		plan.OtherIncomeMonthly.LessThan(decimal.Zero) {
		return fmt.Errorf("income streams cannot be negative")
	}
	if plan.InvestmentAllocationPercent.LessThan(decimal.Zero) || plan.InvestmentAllocationPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("investment allocation percent must be between 0 and 100")
	}

	minusOne := decimal.NewFromInt(-1)
	for _, rate := range []decimal.Decimal{plan.CashReturnRate, plan.EquityReturnRate, plan.HousingReturnRate} {
		if rate.LessThan(minusOne) {
			return fmt.Errorf("return rates cannot be less than -100%%")
		}
	}

	weightSum := plan.CashAllocationWeight.Add(plan.EquityAllocationWeight).Add(plan.HousingAllocationWeight)
	if !weightSum.IsZero() && !weightSum.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("allocation weights must sum to 1, got %s", weightSum.String())
	}

	return nil
}

// validateHolding validates a single holding entry
func (ip *InputParser) validateHolding(holding *domain.Holding) error {
	switch holding.Category {
	case domain.CategoryCash, domain.CategoryEquity, domain.CategoryProperty:
	default:
		return fmt.Errorf("unknown holding category %q", holding.Category)
	}
	if holding.Value.LessThan(decimal.Zero) {
		return fmt.Errorf("holding value cannot be negative")
	}
	return nil
}

// validateAdjustments validates the what-if slider values
func (ip *InputParser) validateAdjustments(adj *domain.WhatIfAdjustments) error {
	if adj.ExpensesPercent.LessThan(decimal.Zero) {
		return fmt.Errorf("expenses percent cannot be negative")
	}
	if adj.ContributionPercent.LessThan(decimal.Zero) {
		return fmt.Errorf("contribution percent cannot be negative")
	}
	return nil
}

// validateOverrides validates the direct override values
func (ip *InputParser) validateOverrides(ov *domain.ScenarioOverrides) error {
	for name, v := range map[string]*decimal.Decimal{
		"pension_monthly":         ov.PensionMonthly,
		"social_security_monthly": ov.SocialSecurityMonthly,
		"other_income_monthly":    ov.OtherIncomeMonthly,
		"monthly_expenses":        ov.MonthlyExpenses,
	} {
		if v != nil && v.LessThan(decimal.Zero) {
			return fmt.Errorf("%s override cannot be negative", name)
		}
	}
	if ov.TargetRetirementAge != nil && *ov.TargetRetirementAge <= 0 {
		return fmt.Errorf("target retirement age override must be positive")
	}
	if ov.LifeExpectancy != nil && *ov.LifeExpectancy <= 0 {
		return fmt.Errorf("life expectancy override must be positive")
	}
	return nil
}

// validateLifeEvent validates a single life event
func (ip *InputParser) validateLifeEvent(event *domain.LifeEvent) error {
	if event.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}
	if event.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be positive")
	}
	if event.EventType != domain.EventTypeIncome && event.EventType != domain.EventTypeExpense {
		return fmt.Errorf("event type must be %q or %q", domain.EventTypeIncome, domain.EventTypeExpense)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *Configuration {
	currentAge := 55

	return &Configuration{
		Plan: domain.Plan{
			Name:                        "Example plan",
			Currency:                    "EUR",
			CurrentAge:                  &currentAge,
			RetirementAge:               65,
			LifeExpectancy:              85,
			MonthlyExpenses:             decimal.NewFromInt(3000),
			InflationRate:               decimal.NewFromFloat(0.02),
			PensionMonthly:              decimal.NewFromInt(1200),
			SocialSecurityMonthly:       decimal.NewFromInt(800),
			OtherIncomeMonthly:          decimal.NewFromInt(300),
			WorkingIncomeMonthly:        decimal.NewFromInt(6000),
			WorkingExpensesMonthly:      decimal.NewFromInt(4000),
			InvestmentAllocationPercent: decimal.NewFromInt(50),
			CashReturnRate:              decimal.NewFromFloat(0.01),
			EquityReturnRate:            decimal.NewFromFloat(0.06),
			HousingReturnRate:           decimal.NewFromFloat(0.03),
			CashAllocationWeight:        decimal.NewFromFloat(0.2),
			EquityAllocationWeight:      decimal.NewFromFloat(0.6),
			HousingAllocationWeight:     decimal.NewFromFloat(0.2),
		},
		Holdings: []domain.Holding{
			{Category: domain.CategoryCash, Value: decimal.NewFromInt(50000)},
			{Category: domain.CategoryEquity, Value: decimal.NewFromInt(250000)},
			{Category: domain.CategoryProperty, Value: decimal.NewFromInt(400000)},
		},
		LifeEvents: []domain.LifeEvent{
			domain.NewLifeEvent(70, decimal.NewFromInt(50000), "Inheritance", domain.EventTypeIncome),
			domain.NewLifeEvent(75, decimal.NewFromInt(20000), "Roof replacement", domain.EventTypeExpense),
		},
	}
}
