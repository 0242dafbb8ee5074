package models

import "github.com/shopspring/decimal"

// Budget is a named spending ceiling. Spent is edited independently and is
// never derived from transactions.
type Budget struct {
	ID       string          `gorm:"size:64;primaryKey" json:"id"`
	Position int             `gorm:"not null;default:0" json:"-"`
	Name     string          `gorm:"not null" json:"name"`
	Category string          `gorm:"not null" json:"category"`
	Amount   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Spent    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"spent"`
	Color    string          `gorm:"size:16" json:"color"`
}

// PaletteColor is a selectable display color for budgets.
type PaletteColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// BudgetPalette lists the colors offered when creating a budget. The first
// entry is the default.
var BudgetPalette = []PaletteColor{
	{Name: "Red", Value: "#ef4444"},
	{Name: "Blue", Value: "#4f46e5"},
	{Name: "Green", Value: "#10b981"},
	{Name: "Purple", Value: "#8b5cf6"},
	{Name: "Orange", Value: "#f97316"},
}

// DefaultBudgetColor returns the palette's default color.
func DefaultBudgetColor() string {
	return BudgetPalette[0].Value
}
