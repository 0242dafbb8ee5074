package services

import (
	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/models"
)

// cardService serves the read-only card list.
type cardService struct {
	cards []models.Card
}

// NewCardService creates a CardServicer over cards.
func NewCardService(cards []models.Card) CardServicer {
	return &cardService{cards: cards}
}

// ListCards returns the cards, optionally of one type.
func (s *cardService) ListCards(cardType *models.CardType) []models.Card {
	out := make([]models.Card, 0, len(s.cards))
	for _, c := range s.cards {
		if cardType == nil || c.Type == *cardType {
			out = append(out, c)
		}
	}
	return out
}

// GetCard returns a card by ID.
func (s *cardService) GetCard(id string) (*models.Card, error) {
	for _, c := range s.cards {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, apperrors.ErrCardNotFound
}

// CreditSummary totals limit, available credit and points over credit cards.
func (s *cardService) CreditSummary() CreditSummary {
	var sum CreditSummary
	for _, c := range s.cards {
		if c.Type != models.CardTypeCredit {
			continue
		}
		sum.CardCount++
		if c.CreditLimit != nil {
			sum.TotalLimit = sum.TotalLimit.Add(*c.CreditLimit)
		}
		if c.AvailableCredit != nil {
			sum.TotalAvailable = sum.TotalAvailable.Add(*c.AvailableCredit)
		}
		sum.PointsBalance += c.PointsBalance
	}
	sum.TotalUsed = sum.TotalLimit.Sub(sum.TotalAvailable)
	if sum.TotalLimit.IsPositive() {
		u := sum.TotalUsed.Div(sum.TotalLimit).Mul(decimal.NewFromInt(100)).Round(2)
		sum.Utilization = &u
	}
	return sum
}
