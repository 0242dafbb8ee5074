package ledger

import (
	"fmt"
	"time"

	"ledgerly/internal/models"

	"github.com/shopspring/decimal"
)

// Period is the length of an analysis window.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	return p == PeriodWeek || p == PeriodMonth || p == PeriodYear
}

// Window is the half-open date range [Start, End).
type Window struct {
	Start models.Date `json:"start"`
	End   models.Date `json:"end"`
}

// Contains reports whether d falls inside w.
func (w Window) Contains(d models.Date) bool {
	return !d.Before(w.Start.Time) && d.Before(w.End.Time)
}

// Days lists every date in w.
func (w Window) Days() []models.Date {
	var days []models.Date
	for d := w.Start; d.Before(w.End.Time); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Within returns the transactions dated inside w, in input order.
func Within(txs []models.Transaction, w Window) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if w.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// PeriodWindow returns the window of the given period containing asOf. Weeks
// start on Monday.
func PeriodWindow(p Period, asOf models.Date) Window {
	switch p {
	case PeriodWeek:
		offset := (int(asOf.Weekday()) + 6) % 7
		start := asOf.AddDays(-offset)
		return Window{Start: start, End: start.AddDays(7)}
	case PeriodYear:
		start := models.NewDate(asOf.Year(), time.January, 1)
		return Window{Start: start, End: models.NewDate(asOf.Year()+1, time.January, 1)}
	default:
		return MonthWindow(asOf)
	}
}

// MonthWindow returns the calendar month containing d.
func MonthWindow(d models.Date) Window {
	start := models.NewDate(d.Year(), d.Month(), 1)
	return Window{Start: start, End: models.Date{Time: start.AddDate(0, 1, 0)}}
}

// PreviousMonth returns the calendar month before the one containing d.
func PreviousMonth(d models.Date) Window {
	start := models.NewDate(d.Year(), d.Month(), 1)
	return MonthWindow(models.Date{Time: start.AddDate(0, -1, 0)})
}

// MonthKey formats t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ParseMonth parses a YYYY-MM key into the first day of that month.
func ParseMonth(s string) (models.Date, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid month %q, use YYYY-MM", s)
	}
	return models.Date{Time: t}, nil
}

// GrowthRate is (current - previous) / previous * 100 rounded to one place.
// It is nil when previous is zero.
func GrowthRate(current, previous decimal.Decimal) *decimal.Decimal {
	if previous.IsZero() {
		return nil
	}
	rate := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1)
	return &rate
}
