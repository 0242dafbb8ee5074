package ledger

import (
	"strings"

	"ledgerly/internal/models"

	"github.com/shopspring/decimal"
)

// All disables a type, category or month filter.
const All = "all"

// Filter selects a subset of transactions. Zero-valued fields match
// everything.
type Filter struct {
	Month     string // YYYY-MM prefix of the transaction date
	Type      string // income, expense, all or empty
	Category  string // exact category, all or empty
	Search    string // case-insensitive substring of description or category
	From      models.Date
	To        models.Date
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// Match reports whether t satisfies every criterion in f.
func (f Filter) Match(t models.Transaction) bool {
	if f.Month != "" && f.Month != All && !strings.HasPrefix(t.Date.String(), f.Month) {
		return false
	}
	if f.Type != "" && f.Type != All && string(t.Type) != f.Type {
		return false
	}
	if f.Category != "" && f.Category != All && t.Category != f.Category {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) {
			return false
		}
	}
	if !f.From.IsZero() && t.Date.Before(f.From.Time) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To.Time) {
		return false
	}
	if f.MinAmount != nil && t.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && t.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	return true
}

// Apply returns the transactions matching f, in input order.
func Apply(txs []models.Transaction, f Filter) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns the distinct categories of txs in first-seen order.
func Categories(txs []models.Transaction) []string {
	seen := make(map[string]struct{}, len(txs))
	out := make([]string, 0)
	for _, t := range txs {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}
