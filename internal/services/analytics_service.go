package services

import (
	"sort"

	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/ledger"
	"ledgerly/internal/models"
)

// analyticsService derives the analysis screen from the transaction list.
type analyticsService struct {
	transactions TransactionServicer
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(transactions TransactionServicer) AnalyticsServicer {
	return &analyticsService{transactions: transactions}
}

// Overview analyses the period window containing asOf.
func (s *analyticsService) Overview(period ledger.Period, asOf models.Date) (*AnalyticsOverview, error) {
	if !period.Valid() {
		return nil, apperrors.ErrInvalidPeriod
	}

	all := s.transactions.All()
	window := ledger.PeriodWindow(period, asOf)
	inWindow := ledger.Within(all, window)
	stats := ledger.Derive(inWindow)

	overview := &AnalyticsOverview{
		Period: period,
		Window: window,
		OverallStats: OverallStats{
			TotalIncome:        stats.TotalIncome,
			TotalExpense:       stats.TotalExpense,
			Balance:            stats.Balance,
			TransactionCount:   stats.Count,
			AverageTransaction: stats.AverageTransaction,
		},
		ExpenseByCategory: categoryShares(stats, stats.TotalExpense, func(t ledger.Totals) decimal.Decimal { return t.Expense }),
		IncomeByCategory:  categoryShares(stats, stats.TotalIncome, func(t ledger.Totals) decimal.Decimal { return t.Income }),
		DailyTrends:       dailyTrends(window, stats),
		MonthlyComparison: monthComparison(all, asOf),
	}
	return overview, nil
}

// categoryShares lists the non-zero categories by descending amount, ties by
// name.
func categoryShares(stats ledger.Stats, total decimal.Decimal, pick func(ledger.Totals) decimal.Decimal) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(stats.CategoryTotals))
	for category, totals := range stats.CategoryTotals {
		amount := pick(totals)
		if amount.IsZero() {
			continue
		}
		share := decimal.Zero
		if total.IsPositive() {
			share = amount.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		out = append(out, CategoryAmount{Category: category, Amount: amount, Percentage: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// dailyTrends lists every day of short windows. Year windows only list days
// that have transactions.
func dailyTrends(window ledger.Window, stats ledger.Stats) []DailyTrend {
	var days []models.Date
	if window.End.Sub(window.Start.Time).Hours() > 31*24 {
		for key := range stats.DailyTotals {
			d, err := models.ParseDate(key)
			if err == nil {
				days = append(days, d)
			}
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j].Time) })
	} else {
		days = window.Days()
	}

	out := make([]DailyTrend, 0, len(days))
	for _, d := range days {
		totals := stats.DailyTotals[d.String()]
		out = append(out, DailyTrend{
			Date:    d,
			Weekday: d.Weekday().String(),
			Income:  totals.Income,
			Expense: totals.Expense,
		})
	}
	return out
}

func monthComparison(all []models.Transaction, asOf models.Date) MonthComparison {
	current := ledger.MonthWindow(asOf)
	previous := ledger.PreviousMonth(asOf)

	cur := ledger.Derive(ledger.Within(all, current))
	prev := ledger.Derive(ledger.Within(all, previous))

	return MonthComparison{
		CurrentMonth:  current.Start.MonthKey(),
		PreviousMonth: previous.Start.MonthKey(),
		Current:       ledger.Totals{Income: cur.TotalIncome, Expense: cur.TotalExpense},
		Previous:      ledger.Totals{Income: prev.TotalIncome, Expense: prev.TotalExpense},
		IncomeGrowth:  ledger.GrowthRate(cur.TotalIncome, prev.TotalIncome),
		ExpenseGrowth: ledger.GrowthRate(cur.TotalExpense, prev.TotalExpense),
	}
}
