package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/ledger"
	"ledgerly/internal/models"
	"ledgerly/internal/pagination"
	"ledgerly/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	activityService    services.ActivityServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, activityService services.ActivityServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, activityService: activityService}
}

// TransactionRequest represents the payload for creating or replacing a transaction.
type TransactionRequest struct {
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount      *decimal.Decimal       `json:"amount" binding:"required,gte=0" swaggertype:"string"`
	Category    string                 `json:"category" binding:"required,max=100"`
	Description string                 `json:"description" binding:"max=500"`
	Date        string                 `json:"date" binding:"omitempty,calendar_date"`
}

func (r TransactionRequest) toInput() (services.TransactionInput, error) {
	date, err := parseOptionalDate(r.Date)
	if err != nil {
		return services.TransactionInput{}, err
	}
	return services.TransactionInput{
		Type:        r.Type,
		Amount:      *r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        date,
	}, nil
}

// TransactionListQuery holds the filters, ordering and page of a list request.
type TransactionListQuery struct {
	pagination.PageRequest
	Month     string `form:"month" binding:"omitempty,month|eq=all"`
	Type      string `form:"type" binding:"omitempty,oneof=income expense all"`
	Category  string `form:"category" binding:"max=100"`
	Search    string `form:"search" binding:"max=100"`
	FromDate  string `form:"from_date" binding:"omitempty,calendar_date"`
	ToDate    string `form:"to_date" binding:"omitempty,calendar_date"`
	MinAmount string `form:"min_amount"`
	MaxAmount string `form:"max_amount"`
	SortBy    string `form:"sort_by" binding:"omitempty,sort_field"`
	Order     string `form:"order" binding:"omitempty,sort_order"`
}

func parseAmountParam(name, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Invalid %s", name))
	}
	return &d, nil
}

// bindTransactionQuery parses the list query. The month defaults to the
// current one and "all" disables the month filter.
func bindTransactionQuery(c *gin.Context) (services.TransactionQuery, string, error) {
	var q TransactionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return services.TransactionQuery{}, "", bindError(err)
	}
	q.PageRequest.Defaults()

	month := q.Month
	if month == "" {
		month = models.Today().MonthKey()
	}

	from, err := parseOptionalDate(q.FromDate)
	if err != nil {
		return services.TransactionQuery{}, "", err
	}
	to, err := parseOptionalDate(q.ToDate)
	if err != nil {
		return services.TransactionQuery{}, "", err
	}
	minAmount, err := parseAmountParam("min_amount", q.MinAmount)
	if err != nil {
		return services.TransactionQuery{}, "", err
	}
	maxAmount, err := parseAmountParam("max_amount", q.MaxAmount)
	if err != nil {
		return services.TransactionQuery{}, "", err
	}

	return services.TransactionQuery{
		Filter: ledger.Filter{
			Month:     month,
			Type:      q.Type,
			Category:  q.Category,
			Search:    q.Search,
			From:      from,
			To:        to,
			MinAmount: minAmount,
			MaxAmount: maxAmount,
		},
		SortBy: ledger.SortField(q.SortBy),
		Order:  ledger.SortOrder(q.Order),
		Page:   q.PageRequest,
	}, month, nil
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an income or expense. The date defaults to today.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log("CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": transaction.Type, "amount": transaction.Amount.String(), "category": transaction.Category})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions returns a filtered, sorted page of transactions
// @Summary     List transactions
// @Description Filter, sort and page transactions. Stats cover the whole filtered list.
// @Tags        transactions
// @Produce     json
// @Param       month      query string false "YYYY-MM, defaults to the current month, all disables"
// @Param       type       query string false "income, expense or all"
// @Param       category   query string false "Exact category"
// @Param       search     query string false "Substring of description or category"
// @Param       from_date  query string false "YYYY-MM-DD"
// @Param       to_date    query string false "YYYY-MM-DD"
// @Param       min_amount query string false "Minimum amount"
// @Param       max_amount query string false "Maximum amount"
// @Param       sort_by    query string false "date or amount"
// @Param       order      query string false "asc or desc"
// @Param       page       query int    false "Page number"
// @Param       page_size  query int    false "Items per page"
// @Success     200 {object} services.TransactionList
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	query, _, err := bindTransactionQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	list, err := h.transactionService.ListTransactions(query)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetTransaction returns a single transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransaction(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// ReplaceTransaction overwrites every field of a transaction
// @Summary     Replace a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) ReplaceTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.ReplaceTransaction(id, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log("UPDATE_TRANSACTION", "transaction", id, c.ClientIP(),
		map[string]interface{}{"type": transaction.Type, "amount": transaction.Amount.String(), "category": transaction.Category})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]string
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log("DELETE_TRANSACTION", "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// ListCategories returns the categories in use
// @Summary     List categories
// @Description Distinct categories across all transactions in first-seen order
// @Tags        transactions
// @Produce     json
// @Success     200 {object} map[string][]string
// @Router      /transactions/categories [get]
func (h *TransactionHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.transactionService.Categories()})
}

// ExportCSV downloads the filtered transactions as CSV
// @Summary     Export transactions
// @Description Same filters as the list endpoint, returned as a CSV attachment
// @Tags        transactions
// @Produce     text/csv
// @Param       month query string false "YYYY-MM, defaults to the current month, all disables"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Export failed"
// @Router      /transactions/export [get]
func (h *TransactionHandler) ExportCSV(c *gin.Context) {
	query, month, err := bindTransactionQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.transactionService.ExportCSV(&buf, query); err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ledger.ExportFilename(month)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// SummaryQuery selects the month of the home summary.
type SummaryQuery struct {
	Month string `form:"month" binding:"omitempty,month"`
}

// GetSummary returns the month-to-date totals
// @Summary     Month summary
// @Description Income, expense and balance for a month, defaulting to the current one
// @Tags        transactions
// @Produce     json
// @Param       month query string false "YYYY-MM"
// @Success     200 {object} services.MonthSummary
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /summary [get]
func (h *TransactionHandler) GetSummary(c *gin.Context) {
	var q SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	summary, err := h.transactionService.MonthSummary(q.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
