package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ledgerly/internal/ledger"
	"ledgerly/internal/services"
)

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetService   services.BudgetServicer
	activityService services.ActivityServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, activityService services.ActivityServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, activityService: activityService}
}

// CreateBudgetRequest represents the request body for creating a budget.
type CreateBudgetRequest struct {
	Name     string           `json:"name" binding:"required,min=1,max=100"`
	Category string           `json:"category" binding:"max=100"`
	Amount   *decimal.Decimal `json:"amount" binding:"required,gte=0" swaggertype:"string"`
	Color    string           `json:"color" binding:"omitempty,hex_color"`
}

// UpdateBudgetRequest represents the request body for patching a budget.
type UpdateBudgetRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Category *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Amount   *decimal.Decimal `json:"amount" binding:"omitempty,gte=0" swaggertype:"string"`
	Spent    *decimal.Decimal `json:"spent" binding:"omitempty,gte=0" swaggertype:"string"`
	Color    *string          `json:"color" binding:"omitempty,hex_color"`
}

func (r UpdateBudgetRequest) changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Category != nil {
		changes["category"] = *r.Category
	}
	if r.Amount != nil {
		changes["amount"] = r.Amount.String()
	}
	if r.Spent != nil {
		changes["spent"] = r.Spent.String()
	}
	if r.Color != nil {
		changes["color"] = *r.Color
	}
	return changes
}

// CreateBudget handles POST /budgets
// @Summary     Create a budget
// @Description Category defaults to the name and color to the first palette color. Spent starts at zero.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} ledger.BudgetStatus "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), services.BudgetInput{
		Name:     req.Name,
		Category: req.Category,
		Amount:   *req.Amount,
		Color:    req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log("CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"name": budget.Name, "category": budget.Category, "amount": budget.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// ListBudgets handles GET /budgets
// @Summary     List budgets
// @Description Every budget with its progress plus the aggregate summary
// @Tags        budgets
// @Produce     json
// @Success     200 {object} services.BudgetList
// @Router      /budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	c.JSON(http.StatusOK, h.budgetService.ListBudgets())
}

// GetBudget handles GET /budgets/:id
// @Summary     Get a budget
// @Tags        budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} ledger.BudgetStatus
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudget(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles PATCH and PUT /budgets/:id
// @Summary     Update a budget
// @Description Any of name, category, amount, spent and color. Omitted fields are kept.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id      path string              true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Fields to change"
// @Success     200 {object} ledger.BudgetStatus
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [patch]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), id, ledger.BudgetPatch{
		Name:     req.Name,
		Category: req.Category,
		Amount:   req.Amount,
		Spent:    req.Spent,
		Color:    req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log("UPDATE_BUDGET", "budget", id, c.ClientIP(), req.changes())

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles DELETE /budgets/:id
// @Summary     Delete a budget
// @Tags        budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} map[string]string
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log("DELETE_BUDGET", "budget", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// GetPalette handles GET /budgets/palette
// @Summary     Budget colors
// @Tags        budgets
// @Produce     json
// @Success     200 {array} models.PaletteColor
// @Router      /budgets/palette [get]
func (h *BudgetHandler) GetPalette(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"palette": h.budgetService.Palette()})
}
