package ledger

import (
	"slices"

	"ledgerly/internal/models"
)

// SortField is the key transactions are ordered by.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Valid reports whether f is a known sort field.
func (f SortField) Valid() bool { return f == SortByDate || f == SortByAmount }

// Valid reports whether o is a known sort order.
func (o SortOrder) Valid() bool { return o == Ascending || o == Descending }

// Sort returns a sorted copy of txs. Unknown fields sort by date and unknown
// orders sort descending. The sort is stable: equal keys keep input order.
func Sort(txs []models.Transaction, field SortField, order SortOrder) []models.Transaction {
	out := slices.Clone(txs)
	if out == nil {
		out = []models.Transaction{}
	}
	slices.SortStableFunc(out, func(a, b models.Transaction) int {
		var c int
		if field == SortByAmount {
			c = a.Amount.Cmp(b.Amount)
		} else {
			c = a.Date.Compare(b.Date.Time)
		}
		if order == Ascending {
			return c
		}
		return -c
	})
	return out
}
