package notify

import (
	"encoding/json"
	"time"

	"ledgerly/internal/ledger"
	"ledgerly/internal/models"

	"github.com/shopspring/decimal"
)

// BudgetAlert is published when a budget crosses the warning threshold.
type BudgetAlert struct {
	BudgetID   string           `json:"budget_id"`
	Name       string           `json:"name"`
	Category   string           `json:"category"`
	Amount     decimal.Decimal  `json:"amount"`
	Spent      decimal.Decimal  `json:"spent"`
	Percentage *decimal.Decimal `json:"percentage"`
	RaisedAt   time.Time        `json:"raised_at"`
}

// NewBudgetAlert builds the alert for b.
func NewBudgetAlert(b models.Budget, at time.Time) *BudgetAlert {
	alert := &BudgetAlert{
		BudgetID: b.ID,
		Name:     b.Name,
		Category: b.Category,
		Amount:   b.Amount,
		Spent:    b.Spent,
		RaisedAt: at,
	}
	if pct := ledger.BudgetPercentage(b.Spent, b.Amount); pct != nil {
		rounded := pct.Round(1)
		alert.Percentage = &rounded
	}
	return alert
}

// ToJSON converts the alert to JSON bytes
func (a *BudgetAlert) ToJSON() ([]byte, error) {
	return json.Marshal(a)
}

// BudgetAlertFromJSON decodes an alert from JSON bytes
func BudgetAlertFromJSON(data []byte) (*BudgetAlert, error) {
	var alert BudgetAlert
	if err := json.Unmarshal(data, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}
