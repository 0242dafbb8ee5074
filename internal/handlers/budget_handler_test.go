package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/ledger"
	"ledgerly/internal/models"
	"ledgerly/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn func(ctx context.Context, input services.BudgetInput) (*ledger.BudgetStatus, error)
	listBudgetsFn  func() *services.BudgetList
	getBudgetFn    func(id string) (*ledger.BudgetStatus, error)
	updateBudgetFn func(ctx context.Context, id string, patch ledger.BudgetPatch) (*ledger.BudgetStatus, error)
	deleteBudgetFn func(ctx context.Context, id string) error
}

func (m *mockBudgetService) CreateBudget(ctx context.Context, input services.BudgetInput) (*ledger.BudgetStatus, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(ctx, input)
	}
	status := ledger.StatusOf(models.Budget{ID: "b-1", Name: input.Name, Amount: input.Amount})
	return &status, nil
}

func (m *mockBudgetService) ListBudgets() *services.BudgetList {
	if m.listBudgetsFn != nil {
		return m.listBudgetsFn()
	}
	return &services.BudgetList{Budgets: []ledger.BudgetStatus{}, Summary: ledger.SummarizeBudgets(nil)}
}

func (m *mockBudgetService) GetBudget(id string) (*ledger.BudgetStatus, error) {
	if m.getBudgetFn != nil {
		return m.getBudgetFn(id)
	}
	status := ledger.StatusOf(models.Budget{ID: id})
	return &status, nil
}

func (m *mockBudgetService) UpdateBudget(ctx context.Context, id string, patch ledger.BudgetPatch) (*ledger.BudgetStatus, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(ctx, id, patch)
	}
	status := ledger.StatusOf(patch.Apply(models.Budget{ID: id}))
	return &status, nil
}

func (m *mockBudgetService) DeleteBudget(ctx context.Context, id string) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(ctx, id)
	}
	return nil
}

func (m *mockBudgetService) Palette() []models.PaletteColor {
	return models.BudgetPalette
}

func (m *mockBudgetService) All() []models.Budget {
	return nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	r.POST("/budgets", handler.CreateBudget)
	r.GET("/budgets", handler.ListBudgets)
	r.GET("/budgets/palette", handler.GetPalette)
	r.GET("/budgets/:id", handler.GetBudget)
	r.PATCH("/budgets/:id", handler.UpdateBudget)
	r.PUT("/budgets/:id", handler.UpdateBudget)
	r.DELETE("/budgets/:id", handler.DeleteBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.BudgetInput
		budgetSvc := &mockBudgetService{
			createBudgetFn: func(_ context.Context, input services.BudgetInput) (*ledger.BudgetStatus, error) {
				got = input
				status := ledger.StatusOf(models.Budget{ID: "b-1", Name: input.Name, Category: input.Name, Amount: input.Amount})
				return &status, nil
			},
		}
		activity := &mockActivityService{}
		r := setupBudgetRouter(NewBudgetHandler(budgetSvc, activity))

		rec := doRequest(r, "POST", "/budgets", `{"name":"Groceries","amount":"600"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Name != "Groceries" || got.Category != "" || got.Color != "" {
			t.Errorf("unexpected input: %+v", got)
		}
		budget := parseJSON(t, rec)["budget"].(map[string]interface{})
		if budget["amount"] != "600" {
			t.Errorf("expected amount \"600\", got %v", budget["amount"])
		}
		activity.assertLogged(t, "CREATE_BUDGET")
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"amount":100}`},
		{name: "missing amount", body: `{"name":"Food"}`},
		{name: "negative amount", body: `{"name":"Food","amount":-5}`},
		{name: "invalid color", body: `{"name":"Food","amount":5,"color":"red"}`},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockActivityService{}))

			rec := doRequest(r, "POST", "/budgets", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}

	t.Run("returns 500 when the store fails", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			createBudgetFn: func(context.Context, services.BudgetInput) (*ledger.BudgetStatus, error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		activity := &mockActivityService{}
		r := setupBudgetRouter(NewBudgetHandler(budgetSvc, activity))

		rec := doRequest(r, "POST", "/budgets", `{"name":"Food","amount":5}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
		if len(activity.calls) != 0 {
			t.Errorf("expected no activity on failure, got %v", activity.calls)
		}
	})
}

func TestBudgetHandler_ListBudgets(t *testing.T) {
	budgets := []models.Budget{
		{ID: "1", Name: "Daily", Category: "Daily", Amount: decimal.NewFromInt(100), Spent: decimal.NewFromInt(90)},
	}
	budgetSvc := &mockBudgetService{
		listBudgetsFn: func() *services.BudgetList {
			return &services.BudgetList{
				Budgets: []ledger.BudgetStatus{ledger.StatusOf(budgets[0])},
				Summary: ledger.SummarizeBudgets(budgets),
			}
		},
	}
	r := setupBudgetRouter(NewBudgetHandler(budgetSvc, &mockActivityService{}))

	rec := doRequest(r, "GET", "/budgets", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	list := result["budgets"].([]interface{})
	first := list[0].(map[string]interface{})
	if first["warning"] != true {
		t.Errorf("expected warning at 90%%, got %v", first["warning"])
	}
	summary := result["summary"].(map[string]interface{})
	if summary["total_budget"] != "100" {
		t.Errorf("expected total_budget \"100\", got %v", summary["total_budget"])
	}
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	budgetSvc := &mockBudgetService{
		getBudgetFn: func(string) (*ledger.BudgetStatus, error) { return nil, apperrors.ErrBudgetNotFound },
	}
	r := setupBudgetRouter(NewBudgetHandler(budgetSvc, &mockActivityService{}))

	rec := doRequest(r, "GET", "/budgets/missing", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	for _, method := range []string{"PATCH", "PUT"} {
		t.Run(method+" passes only the provided fields", func(t *testing.T) {
			var got ledger.BudgetPatch
			budgetSvc := &mockBudgetService{
				updateBudgetFn: func(_ context.Context, id string, patch ledger.BudgetPatch) (*ledger.BudgetStatus, error) {
					got = patch
					status := ledger.StatusOf(patch.Apply(models.Budget{ID: id, Name: "Daily"}))
					return &status, nil
				},
			}
			activity := &mockActivityService{}
			r := setupBudgetRouter(NewBudgetHandler(budgetSvc, activity))

			rec := doRequest(r, method, "/budgets/1", `{"spent":"120.50"}`)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if got.Name != nil || got.Amount != nil || got.Category != nil || got.Color != nil {
				t.Errorf("expected only spent in the patch, got %+v", got)
			}
			if got.Spent == nil || !got.Spent.Equal(decimal.RequireFromString("120.5")) {
				t.Errorf("unexpected spent: %v", got.Spent)
			}
			activity.assertLogged(t, "UPDATE_BUDGET")
			if activity.calls[0].changes["spent"] != "120.5" {
				t.Errorf("expected spent in changes, got %v", activity.calls[0].changes)
			}
		})
	}

	t.Run("returns 400 on a negative spent", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockActivityService{}))

		rec := doRequest(r, "PATCH", "/budgets/1", `{"spent":-1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on an empty name", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockActivityService{}))

		rec := doRequest(r, "PATCH", "/budgets/1", `{"name":""}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			updateBudgetFn: func(context.Context, string, ledger.BudgetPatch) (*ledger.BudgetStatus, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(budgetSvc, &mockActivityService{}))

		rec := doRequest(r, "PATCH", "/budgets/nope", `{"amount":10}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		activity := &mockActivityService{}
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, activity))

		rec := doRequest(r, "DELETE", "/budgets/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		activity.assertLogged(t, "DELETE_BUDGET")
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			deleteBudgetFn: func(context.Context, string) error { return apperrors.ErrBudgetNotFound },
		}
		r := setupBudgetRouter(NewBudgetHandler(budgetSvc, &mockActivityService{}))

		rec := doRequest(r, "DELETE", "/budgets/nope", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetPalette(t *testing.T) {
	r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockActivityService{}))

	rec := doRequest(r, "GET", "/budgets/palette", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	palette := parseJSON(t, rec)["palette"].([]interface{})
	if len(palette) != len(models.BudgetPalette) {
		t.Errorf("expected %d colors, got %d", len(models.BudgetPalette), len(palette))
	}
}
