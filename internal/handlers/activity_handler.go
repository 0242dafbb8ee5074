package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerly/internal/pagination"
	"ledgerly/internal/services"
)

// ActivityHandler serves the activity log.
type ActivityHandler struct {
	activityService services.ActivityServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService services.ActivityServicer) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ListActivity returns recorded mutations, newest first
// @Summary     List activity
// @Tags        activity
// @Produce     json
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.ActivityEntry]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activity [get]
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	page.Defaults()

	result, err := h.activityService.ListActivity(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
