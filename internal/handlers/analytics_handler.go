package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerly/internal/ledger"
	"ledgerly/internal/models"
	"ledgerly/internal/services"
)

// AnalyticsHandler serves the spend analysis screen.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// AnalyticsQuery selects the analysis window.
type AnalyticsQuery struct {
	Period string `form:"period" binding:"omitempty,analysis_period"`
	AsOf   string `form:"as_of" binding:"omitempty,calendar_date"`
}

// GetOverview returns the analysis for the window containing as_of
// @Summary     Spend analysis
// @Tags        analytics
// @Produce     json
// @Param       period query string false "week, month or year (default month)"
// @Param       as_of  query string false "YYYY-MM-DD, defaults to today"
// @Success     200 {object} services.AnalyticsOverview
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /analytics [get]
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	var q AnalyticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	period := ledger.PeriodMonth
	if q.Period != "" {
		period = ledger.Period(q.Period)
	}
	asOf, err := parseOptionalDate(q.AsOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if asOf.IsZero() {
		asOf = models.Today()
	}

	overview, err := h.analyticsService.Overview(period, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
