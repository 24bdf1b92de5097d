// Package planapi talks to the remote plan service: base projections come
// from its projection endpoint, and scenario saves go through its plan
// endpoints.
package planapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/longview/planengine/internal/calculation"
	"github.com/longview/planengine/internal/domain"
	"github.com/longview/planengine/internal/scenario"
)

// APIError is a non-2xx response from the plan service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("plan service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("plan service returned status %d: %s", e.StatusCode, e.Message)
}

// Client is an HTTP client for the plan service.
type Client struct {
	baseURL string
	http    *http.Client
	log     calculation.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger.
func WithLogger(l calculation.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a plan-service client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     calculation.NopLogger{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ProjectionRequest is the payload for the projection endpoint.
type ProjectionRequest struct {
	LiquidAssets        decimal.Decimal `json:"liquid_assets"`
	NonSpendableAssets  decimal.Decimal `json:"non_spendable_assets"`
	PortfolioIDs        []string        `json:"portfolio_ids,omitempty"`
	Currency            string          `json:"currency"`
	CurrentAge          *int            `json:"current_age,omitempty"`
	RetirementAge       int             `json:"retirement_age"`
	LifeExpectancy      int             `json:"life_expectancy"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
}

// ComputeBaseProjection requests a fresh base projection from the service.
func (c *Client) ComputeBaseProjection(ctx context.Context, req ProjectionRequest) (*domain.RetirementProjection, error) {
	var out domain.RetirementProjection
	if err := c.do(ctx, http.MethodPost, "/projections", req, &out); err != nil {
		return nil, fmt.Errorf("failed to compute base projection: %w", err)
	}
	return &out, nil
}

// UpdatePlan patches the stored plan with resolved scenario values.
func (c *Client) UpdatePlan(ctx context.Context, planID string, patch scenario.PlanPatch) (*domain.Plan, error) {
	var out domain.Plan
	if err := c.do(ctx, http.MethodPatch, "/plans/"+planID, patch, &out); err != nil {
		return nil, fmt.Errorf("failed to update plan %s: %w", planID, err)
	}
	return &out, nil
}

// CreatePlan stores a new plan record and returns it with its assigned ID.
func (c *Client) CreatePlan(ctx context.Context, plan domain.Plan) (*domain.Plan, error) {
	var out domain.Plan
	if err := c.do(ctx, http.MethodPost, "/plans", plan, &out); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debugf("%s %s", method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(data, &msg) == nil {
			if msg.Message != "" {
				apiErr.Message = msg.Message
			} else {
				apiErr.Message = msg.Error
			}
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
