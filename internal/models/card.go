package models

import "github.com/shopspring/decimal"

// CardType distinguishes debit from credit cards.
type CardType string

const (
	CardTypeDebit  CardType = "debit"
	CardTypeCredit CardType = "credit"
)

// Card is a bank card shown on the accounts screens. Cards are read-only
// seed data.
type Card struct {
	ID              string           `json:"id"`
	Type            CardType         `json:"type"`
	Bank            string           `json:"bank"`
	Number          string           `json:"number"`
	Balance         decimal.Decimal  `json:"balance"`
	Currency        string           `json:"currency"`
	Color           string           `json:"color"`
	ExpiryDate      string           `json:"expiry_date"`
	CreditLimit     *decimal.Decimal `json:"credit_limit,omitempty"`
	AvailableCredit *decimal.Decimal `json:"available_credit,omitempty"`
	BillDay         int              `json:"bill_day,omitempty"`
	RepaymentDay    int              `json:"repayment_day,omitempty"`
	PointsBalance   int              `json:"points_balance,omitempty"`
}
