package ledger

import (
	"ledgerly/internal/models"

	"github.com/shopspring/decimal"
)

// WarningThreshold is the spent percentage above which a budget warns.
const WarningThreshold = 80

// MoneyScale is the number of decimal places a stored amount keeps.
const MoneyScale = 2

var (
	hundred   = decimal.NewFromInt(100)
	threshold = decimal.NewFromInt(WarningThreshold)
	moneyCap  = decimal.New(1, 12)
)

// StorableMoney reports whether d is a non-negative amount below 10^12 with
// at most MoneyScale decimal places, the range of a numeric(14,2) column.
func StorableMoney(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThan(moneyCap) && d.Equal(d.Round(MoneyScale))
}

// BudgetPercentage is spent / amount * 100. It is nil when amount is zero.
func BudgetPercentage(spent, amount decimal.Decimal) *decimal.Decimal {
	if amount.IsZero() {
		return nil
	}
	pct := spent.Div(amount).Mul(hundred)
	return &pct
}

// ProgressWidth clamps a budget percentage to [0, 100] for progress bars.
// An undefined percentage renders full when something was spent.
func ProgressWidth(spent, amount decimal.Decimal) decimal.Decimal {
	pct := BudgetPercentage(spent, amount)
	if pct == nil {
		if spent.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	switch {
	case pct.GreaterThan(hundred):
		return hundred
	case pct.IsNegative():
		return decimal.Zero
	}
	return pct.Round(2)
}

// BudgetWarning reports whether spent exceeds the warning threshold of amount.
// A zero amount with positive spend is treated as over threshold.
func BudgetWarning(spent, amount decimal.Decimal) bool {
	pct := BudgetPercentage(spent, amount)
	if pct == nil {
		return spent.IsPositive()
	}
	return pct.GreaterThan(threshold)
}

// BudgetStatus is a budget together with its derived progress values.
type BudgetStatus struct {
	models.Budget
	Percentage    *decimal.Decimal `json:"percentage"`
	ProgressWidth decimal.Decimal  `json:"progress_width"`
	Remaining     decimal.Decimal  `json:"remaining"`
	Warning       bool             `json:"warning"`
}

// StatusOf derives the status of b.
func StatusOf(b models.Budget) BudgetStatus {
	st := BudgetStatus{
		Budget:        b,
		ProgressWidth: ProgressWidth(b.Spent, b.Amount),
		Remaining:     b.Amount.Sub(b.Spent),
		Warning:       BudgetWarning(b.Spent, b.Amount),
	}
	if pct := BudgetPercentage(b.Spent, b.Amount); pct != nil {
		rounded := pct.Round(2)
		st.Percentage = &rounded
	}
	return st
}

// CategoryStat aggregates the budgets sharing a category.
type CategoryStat struct {
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}

// BudgetAlertItem names a budget over the warning threshold.
type BudgetAlertItem struct {
	BudgetID   string           `json:"budget_id"`
	Name       string           `json:"name"`
	Category   string           `json:"category"`
	Percentage *decimal.Decimal `json:"percentage"`
}

// BudgetSummary aggregates a budget list.
type BudgetSummary struct {
	TotalBudget     decimal.Decimal         `json:"total_budget"`
	TotalSpent      decimal.Decimal         `json:"total_spent"`
	Remaining       decimal.Decimal         `json:"remaining"`
	SpentPercentage decimal.Decimal         `json:"spent_percentage"`
	Categories      map[string]CategoryStat `json:"categories"`
	Warnings        []BudgetAlertItem       `json:"warnings"`
}

// SummarizeBudgets totals budgets, groups them by category and lists the ones
// over the warning threshold. Percentages with a zero denominator are zero,
// except in Warnings where they are nil.
func SummarizeBudgets(budgets []models.Budget) BudgetSummary {
	s := BudgetSummary{
		Categories: make(map[string]CategoryStat),
		Warnings:   []BudgetAlertItem{},
	}
	for _, b := range budgets {
		s.TotalBudget = s.TotalBudget.Add(b.Amount)
		s.TotalSpent = s.TotalSpent.Add(b.Spent)

		cs := s.Categories[b.Category]
		cs.Amount = cs.Amount.Add(b.Amount)
		cs.Spent = cs.Spent.Add(b.Spent)
		s.Categories[b.Category] = cs

		if BudgetWarning(b.Spent, b.Amount) {
			item := BudgetAlertItem{BudgetID: b.ID, Name: b.Name, Category: b.Category}
			if pct := BudgetPercentage(b.Spent, b.Amount); pct != nil {
				rounded := pct.Round(1)
				item.Percentage = &rounded
			}
			s.Warnings = append(s.Warnings, item)
		}
	}
	for name, cs := range s.Categories {
		cs.Remaining = cs.Amount.Sub(cs.Spent)
		cs.Percentage = guardedPercentage(cs.Spent, cs.Amount)
		s.Categories[name] = cs
	}
	s.Remaining = s.TotalBudget.Sub(s.TotalSpent)
	s.SpentPercentage = guardedPercentage(s.TotalSpent, s.TotalBudget)
	return s
}

func guardedPercentage(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
