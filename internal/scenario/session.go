package scenario

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/longview/planengine/internal/calculation"
	"github.com/longview/planengine/internal/domain"
)

// State is the save-scenario lifecycle state.
type State int

const (
	// StateIdle means the scenario matches the stored plan.
	StateIdle State = iota
	// StateEditing means at least one adjustment, override, or life event
	// deviates from its default.
	StateEditing
	// StateSaving means a save request is in flight; further saves are
	// no-ops until it settles.
	StateSaving
	// StateSaved means a save-as-new completed; the caller should navigate
	// to the created plan.
	StateSaved
	// StateError means the last save failed; the scenario state is fully
	// preserved for retry.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateSaved:
		return "saved"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// PlanStore is the external plan-storage API the session saves through.
type PlanStore interface {
	UpdatePlan(ctx context.Context, planID string, patch PlanPatch) (*domain.Plan, error)
	CreatePlan(ctx context.Context, plan domain.Plan) (*domain.Plan, error)
}

// PlanPatch carries the persisted fields of a save-as-update. Values are
// resolved (override-or-plan) at save time.
type PlanPatch struct {
	MonthlyExpenses       decimal.Decimal `json:"monthly_expenses"`
	PensionMonthly        decimal.Decimal `json:"pension_monthly"`
	SocialSecurityMonthly decimal.Decimal `json:"social_security_monthly"`
	OtherIncomeMonthly    decimal.Decimal `json:"other_income_monthly"`
	LifeExpectancy        int             `json:"life_expectancy"`
	PlanningHorizonYears  int             `json:"planning_horizon_years"`
}

// Session owns the transient what-if state for one plan view: the base
// projection, the sliders, the overrides, and the life-event ledger, plus the
// save state machine. Switching plans discards the session.
type Session struct {
	mu sync.Mutex

	plan  *domain.Plan
	base  *domain.RetirementProjection
	store PlanStore
	log   calculation.Logger

	adjustments domain.WhatIfAdjustments
	overrides   domain.ScenarioOverrides
	events      []domain.LifeEvent

	state   State
	lastErr error
	memo    calculation.WhatIfMemo
}

// NewSession creates a session for one plan and its base projection.
func NewSession(plan *domain.Plan, base *domain.RetirementProjection, store PlanStore, logger calculation.Logger) *Session {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Session{
		plan:        plan,
		base:        base,
		store:       store,
		log:         logger,
		adjustments: domain.DefaultAdjustments(),
		state:       StateIdle,
	}
}

// State returns the current save-state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error from the last failed save, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Plan returns the plan the session is editing against.
func (s *Session) Plan() *domain.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// HasScenarioChanges reports whether any adjustment deviates from its
// default, any override is present, or any life event exists.
func (s *Session) HasScenarioChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasChangesLocked()
}

func (s *Session) hasChangesLocked() bool {
	return !s.adjustments.IsDefault() || !s.overrides.IsEmpty() || len(s.events) > 0
}

// SetAdjustments replaces the slider values.
func (s *Session) SetAdjustments(adj domain.WhatIfAdjustments) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSaving {
		return
	}
	s.adjustments = adj
	s.syncEditingLocked()
}

// SetOverrides replaces the direct override values.
func (s *Session) SetOverrides(ov domain.ScenarioOverrides) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSaving {
		return
	}
	s.overrides = ov
	s.syncEditingLocked()
}

// AddLifeEvent appends an event to the ledger.
func (s *Session) AddLifeEvent(event domain.LifeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSaving {
		return
	}
	s.events = append(s.events, event)
	s.syncEditingLocked()
}

// RemoveLifeEvent deletes the event with the given ID; unknown IDs are
// ignored.
func (s *Session) RemoveLifeEvent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSaving {
		return
	}
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			break
		}
	}
	s.syncEditingLocked()
}

// LifeEvents returns a copy of the event ledger.
func (s *Session) LifeEvents() []domain.LifeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LifeEvent(nil), s.events...)
}

// Reset drops all transient scenario state and returns to Idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSaving {
		return
	}
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.adjustments = domain.DefaultAdjustments()
	s.overrides = domain.ScenarioOverrides{}
	s.events = nil
	s.state = StateIdle
	s.lastErr = nil
	s.memo.Invalidate()
}

func (s *Session) syncEditingLocked() {
	if s.hasChangesLocked() {
		if s.state == StateIdle || s.state == StateSaved || s.state == StateError {
			s.state = StateEditing
		}
	} else if s.state == StateEditing {
		s.state = StateIdle
	}
}

// Projection returns the projection for the current scenario, memoized on the
// full input tuple. With no scenario changes this is the base projection's
// drawdown re-run under default parameters.
func (s *Session) Projection(blendedReturnRate decimal.Decimal) *domain.RetirementProjection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memo.Apply(s.base, s.plan, s.adjustments, s.overrides, s.events, blendedReturnRate)
}

// Resolved returns the effective scenario scalars for the current state.
func (s *Session) Resolved(blendedReturnRate decimal.Decimal) calculation.ResolvedScenario {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calculation.ResolveScenario(s.plan, s.adjustments, s.overrides, blendedReturnRate)
}

// SaveAsUpdate patches the existing plan with the resolved scenario values.
// On success all transient state resets and the session returns to Idle with
// the refreshed plan. A save already in flight makes this a no-op.
func (s *Session) SaveAsUpdate(ctx context.Context, blendedReturnRate decimal.Decimal) error {
	s.mu.Lock()
	if s.state == StateSaving {
		s.mu.Unlock()
		return nil
	}
	resolved := calculation.ResolveScenario(s.plan, s.adjustments, s.overrides, blendedReturnRate)
	planID := s.plan.ID
	s.state = StateSaving
	s.mu.Unlock()

	patch := PlanPatch{
		MonthlyExpenses:       resolved.MonthlyExpenses,
		PensionMonthly:        resolved.PensionMonthly,
		SocialSecurityMonthly: resolved.SocialSecurityMonthly,
		OtherIncomeMonthly:    resolved.OtherIncomeMonthly,
		LifeExpectancy:        resolved.LifeExpectancy,
		PlanningHorizonYears:  resolved.LifeExpectancy - resolved.RetirementAge,
	}

	updated, err := s.store.UpdatePlan(ctx, planID, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.lastErr = fmt.Errorf("failed to update plan %s: %w", planID, err)
		s.log.Errorf("scenario save failed: %v", err)
		return s.lastErr
	}

	s.plan = updated
	s.resetLocked()
	s.log.Infof("scenario saved into plan %s", planID)
	return nil
}

// SaveAsNew creates a fork: a full plan record cloning the current plan with
// the resolved effective values substituted. The original plan's transient
// state is left untouched so the caller can navigate to the returned plan.
// A save already in flight makes this a no-op and returns nil.
func (s *Session) SaveAsNew(ctx context.Context, name string, blendedReturnRate decimal.Decimal) (*domain.Plan, error) {
	s.mu.Lock()
	if s.state == StateSaving {
		s.mu.Unlock()
		return nil, nil
	}
	resolved := calculation.ResolveScenario(s.plan, s.adjustments, s.overrides, blendedReturnRate)
	fork := *s.plan
	s.state = StateSaving
	s.mu.Unlock()

	fork.ID = ""
	fork.Name = name
	fork.RetirementAge = resolved.RetirementAge
	fork.LifeExpectancy = resolved.LifeExpectancy
	fork.MonthlyExpenses = resolved.MonthlyExpenses
	fork.PensionMonthly = resolved.PensionMonthly
	fork.SocialSecurityMonthly = resolved.SocialSecurityMonthly
	fork.OtherIncomeMonthly = resolved.OtherIncomeMonthly

	created, err := s.store.CreatePlan(ctx, fork)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.lastErr = fmt.Errorf("failed to create plan fork: %w", err)
		s.log.Errorf("scenario fork failed: %v", err)
		return nil, s.lastErr
	}

	s.state = StateSaved
	s.lastErr = nil
	s.log.Infof("scenario forked into plan %s", created.ID)
	return created, nil
}
