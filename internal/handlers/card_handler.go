package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerly/internal/models"
	"ledgerly/internal/services"
)

// CardHandler serves the read-only card list.
type CardHandler struct {
	cardService services.CardServicer
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService services.CardServicer) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// CardListQuery optionally narrows the card list to one type.
type CardListQuery struct {
	Type string `form:"type" binding:"omitempty,oneof=debit credit"`
}

// ListCards returns the cards
// @Summary     List cards
// @Tags        cards
// @Produce     json
// @Param       type query string false "debit or credit"
// @Success     200 {array} models.Card
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /cards [get]
func (h *CardHandler) ListCards(c *gin.Context) {
	var q CardListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var cardType *models.CardType
	if q.Type != "" {
		t := models.CardType(q.Type)
		cardType = &t
	}
	c.JSON(http.StatusOK, gin.H{"cards": h.cardService.ListCards(cardType)})
}

// GetCard returns one card
// @Summary     Get a card
// @Tags        cards
// @Produce     json
// @Param       id path string true "Card ID"
// @Success     200 {object} models.Card
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /cards/{id} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	card, err := h.cardService.GetCard(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card})
}

// GetCreditSummary totals the credit cards
// @Summary     Credit summary
// @Tags        cards
// @Produce     json
// @Success     200 {object} services.CreditSummary
// @Router      /cards/credit/summary [get]
func (h *CardHandler) GetCreditSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"summary": h.cardService.CreditSummary()})
}
