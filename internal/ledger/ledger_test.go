package ledger

import (
	"time"

	"ledgerly/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func day(y int, m time.Month, d int) models.Date {
	return models.NewDate(y, m, d)
}

func tx(id string, typ models.TransactionType, amount, category, desc string, date models.Date) models.Transaction {
	return models.Transaction{
		ID:          id,
		Type:        typ,
		Amount:      dec(amount),
		Category:    category,
		Description: desc,
		Date:        date,
	}
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		tx("a", models.TransactionTypeIncome, "5000", "Salary", "March salary", day(2024, time.March, 1)),
		tx("b", models.TransactionTypeExpense, "35.50", "Food", "Lunch with team", day(2024, time.March, 3)),
		tx("c", models.TransactionTypeExpense, "120", "Transport", "Train tickets", day(2024, time.March, 3)),
		tx("d", models.TransactionTypeExpense, "60", "Food", "Groceries", day(2024, time.April, 2)),
		tx("e", models.TransactionTypeIncome, "200", "Freelance", "Logo design", day(2024, time.April, 5)),
	}
}

func ids(txs []models.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}
