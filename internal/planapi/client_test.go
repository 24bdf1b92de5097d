package planapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longview/planengine/internal/domain"
	"github.com/longview/planengine/internal/scenario"
)

func TestClient_ComputeBaseProjection(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody ProjectionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := domain.RetirementProjection{
			LiquidAssets:             decimal.NewFromInt(500000),
			NonSpendableAtRetirement: decimal.NewFromInt(350000),
			RunwayYears:              decimal.NewFromInt(18),
			RunwayMonths:             decimal.NewFromInt(216),
			YearlyProjections: []domain.YearlyProjection{
				{Year: 1, Age: 65, EndingBalance: decimal.NewFromInt(480000), Currency: "EUR"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	age := 55
	proj, err := c.ComputeBaseProjection(context.Background(), ProjectionRequest{
		LiquidAssets:        decimal.NewFromInt(300000),
		NonSpendableAssets:  decimal.NewFromInt(400000),
		PortfolioIDs:        []string{"pf-1", "pf-2"},
		Currency:            "EUR",
		CurrentAge:          &age,
		RetirementAge:       65,
		LifeExpectancy:      85,
		MonthlyContribution: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/projections", gotPath)
	assert.Equal(t, []string{"pf-1", "pf-2"}, gotBody.PortfolioIDs)
	assert.True(t, gotBody.LiquidAssets.Equal(decimal.NewFromInt(300000)))
	require.NotNil(t, gotBody.CurrentAge)
	assert.Equal(t, 55, *gotBody.CurrentAge)

	assert.True(t, proj.LiquidAssets.Equal(decimal.NewFromInt(500000)))
	require.Len(t, proj.YearlyProjections, 1)
	assert.Equal(t, 65, proj.YearlyProjections[0].Age)
}

func TestClient_UpdatePlan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/plans/plan-1", r.URL.Path)

		var patch scenario.PlanPatch
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, 20, patch.PlanningHorizonYears)

		plan := domain.Plan{ID: "plan-1", Name: "Base plan", MonthlyExpenses: patch.MonthlyExpenses}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(plan))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	updated, err := c.UpdatePlan(context.Background(), "plan-1", scenario.PlanPatch{
		MonthlyExpenses:      decimal.NewFromInt(2500),
		LifeExpectancy:       85,
		PlanningHorizonYears: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "plan-1", updated.ID)
	assert.True(t, updated.MonthlyExpenses.Equal(decimal.NewFromInt(2500)))
}

func TestClient_CreatePlan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/plans", r.URL.Path)

		var plan domain.Plan
		require.NoError(t, json.NewDecoder(r.Body).Decode(&plan))
		assert.Empty(t, plan.ID)
		plan.ID = "plan-2"
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(plan))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	created, err := c.CreatePlan(context.Background(), domain.Plan{Name: "Fork"})
	require.NoError(t, err)
	assert.Equal(t, "plan-2", created.ID)
	assert.Equal(t, "Fork", created.Name)
}

func TestClient_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"life expectancy before retirement age"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.UpdatePlan(context.Background(), "plan-1", scenario.PlanPatch{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "life expectancy")
}

func TestClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL)
	_, err := c.ComputeBaseProjection(ctx, ProjectionRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
