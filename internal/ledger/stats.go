package ledger

import (
	"ledgerly/internal/models"

	"github.com/shopspring/decimal"
)

// Totals splits a sum into its income and expense parts.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Net is income minus expense.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

func (t Totals) add(tx models.Transaction) Totals {
	if tx.Type == models.TransactionTypeIncome {
		t.Income = t.Income.Add(tx.Amount)
	} else {
		t.Expense = t.Expense.Add(tx.Amount)
	}
	return t
}

// Stats are the aggregates derived from a list of transactions.
type Stats struct {
	TotalIncome        decimal.Decimal   `json:"total_income"`
	TotalExpense       decimal.Decimal   `json:"total_expense"`
	Balance            decimal.Decimal   `json:"balance"`
	Count              int               `json:"count"`
	CategoryTotals     map[string]Totals `json:"category_totals"`
	DailyTotals        map[string]Totals `json:"daily_totals"`
	AverageTransaction decimal.Decimal   `json:"average_transaction"`
}

// Derive aggregates txs. Any transaction that is not income counts as an
// expense. Balance always equals TotalIncome minus TotalExpense.
func Derive(txs []models.Transaction) Stats {
	s := Stats{
		Count:          len(txs),
		CategoryTotals: make(map[string]Totals),
		DailyTotals:    make(map[string]Totals),
	}
	var all Totals
	sum := decimal.Zero
	for _, tx := range txs {
		all = all.add(tx)
		s.CategoryTotals[tx.Category] = s.CategoryTotals[tx.Category].add(tx)
		day := tx.Date.String()
		s.DailyTotals[day] = s.DailyTotals[day].add(tx)
		sum = sum.Add(tx.Amount)
	}
	s.TotalIncome = all.Income
	s.TotalExpense = all.Expense
	s.Balance = all.Net()
	s.AverageTransaction = Average(sum, len(txs))
	return s
}

// Average divides sum by count rounded to two places, or zero when count is
// zero.
func Average(sum decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.DivRound(decimal.NewFromInt(int64(count)), 2)
}

// Sum totals the amounts of txs of the given type.
func Sum(txs []models.Transaction, typ models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		isIncome := tx.Type == models.TransactionTypeIncome
		if isIncome == (typ == models.TransactionTypeIncome) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
