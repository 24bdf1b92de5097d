package domain

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Life event types. Income events add to the balance in their year, expense
// events subtract.
const (
	EventTypeIncome  = "income"
	EventTypeExpense = "expense"
)

// ErrMalformedLifeEvents is returned when a stored life-event payload cannot
// be decoded. Callers must surface it rather than falling back to an empty
// list.
var ErrMalformedLifeEvents = errors.New("malformed life events payload")

// LifeEvent is a discrete one-off cash event keyed by age. Amount is always
// positive; EventType determines the sign when events are netted.
type LifeEvent struct {
	ID          string          `yaml:"id,omitempty" json:"id,omitempty"`
	Age         int             `yaml:"age" json:"age"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Description string          `yaml:"description" json:"description"`
	EventType   string          `yaml:"event_type" json:"event_type"`
}

// NewLifeEvent builds a life event with a fresh ID.
func NewLifeEvent(age int, amount decimal.Decimal, description, eventType string) LifeEvent {
	return LifeEvent{
		ID:          uuid.New().String(),
		Age:         age,
		Amount:      amount,
		Description: description,
		EventType:   eventType,
	}
}

// SignedAmount returns the event's cash effect: positive for income, negative
// for expense.
func (e LifeEvent) SignedAmount() decimal.Decimal {
	if e.EventType == EventTypeExpense {
		return e.Amount.Neg()
	}
	return e.Amount
}

// NetLifeEventsByAge nets all events sharing an age into a single adjustment
// per age (income minus expense).
func NetLifeEventsByAge(events []LifeEvent) map[int]decimal.Decimal {
	byAge := make(map[int]decimal.Decimal, len(events))
	for _, e := range events {
		byAge[e.Age] = byAge[e.Age].Add(e.SignedAmount())
	}
	return byAge
}

// ParseLifeEvents decodes the storage representation of a life-event list:
// a JSON array of {id, age, amount, description, event_type} objects. An
// empty payload is a valid empty list; anything undecodable or violating the
// schema surfaces ErrMalformedLifeEvents.
func ParseLifeEvents(data []byte) ([]LifeEvent, error) {
	if len(data) == 0 {
		return []LifeEvent{}, nil
	}
	var events []LifeEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLifeEvents, err)
	}
	for i, e := range events {
		if err := validateLifeEvent(e); err != nil {
			return nil, fmt.Errorf("%w: event %d: %v", ErrMalformedLifeEvents, i, err)
		}
	}
	return events, nil
}

// EncodeLifeEvents produces the storage representation accepted by
// ParseLifeEvents.
func EncodeLifeEvents(events []LifeEvent) ([]byte, error) {
	if events == nil {
		events = []LifeEvent{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("failed to encode life events: %w", err)
	}
	return data, nil
}

func validateLifeEvent(e LifeEvent) error {
	if e.Age < 0 {
		return fmt.Errorf("age must be non-negative, got %d", e.Age)
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be positive, got %s", e.Amount.String())
	}
	if e.EventType != EventTypeIncome && e.EventType != EventTypeExpense {
		return fmt.Errorf("event type must be %q or %q, got %q", EventTypeIncome, EventTypeExpense, e.EventType)
	}
	return nil
}

// EqualLifeEvents reports value equality between two event lists, order
// sensitive.
func EqualLifeEvents(a, b []LifeEvent) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Age != b[i].Age ||
			!a[i].Amount.Equal(b[i].Amount) ||
			a[i].Description != b[i].Description ||
			a[i].EventType != b[i].EventType {
			return false
		}
	}
	return true
}
