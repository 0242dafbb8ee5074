package ledger

import (
	"ledgerly/internal/models"

	"github.com/shopspring/decimal"
)

// The reducers below never modify their input slice. Each returns a fresh
// list, and the ones addressed by id also report whether the id was found.
// When it was not, the returned list is the input unchanged.

// AddTransaction appends tx.
func AddTransaction(txs []models.Transaction, tx models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs)+1)
	out = append(out, txs...)
	return append(out, tx)
}

// ReplaceTransaction swaps the transaction with the given id for tx, keeping
// the id and position.
func ReplaceTransaction(txs []models.Transaction, id string, tx models.Transaction) ([]models.Transaction, bool) {
	idx := indexOfTransaction(txs, id)
	if idx < 0 {
		return txs, false
	}
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	tx.ID = id
	out[idx] = tx
	return out, true
}

// RemoveTransaction drops the transaction with the given id.
func RemoveTransaction(txs []models.Transaction, id string) ([]models.Transaction, bool) {
	idx := indexOfTransaction(txs, id)
	if idx < 0 {
		return txs, false
	}
	out := make([]models.Transaction, 0, len(txs)-1)
	out = append(out, txs[:idx]...)
	return append(out, txs[idx+1:]...), true
}

func indexOfTransaction(txs []models.Transaction, id string) int {
	for i, t := range txs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// BudgetPatch lists the budget fields to overwrite. Nil fields are kept.
type BudgetPatch struct {
	Name     *string
	Category *string
	Amount   *decimal.Decimal
	Spent    *decimal.Decimal
	Color    *string
}

// Apply returns b with the patch merged in.
func (p BudgetPatch) Apply(b models.Budget) models.Budget {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Spent != nil {
		b.Spent = *p.Spent
	}
	if p.Color != nil {
		b.Color = *p.Color
	}
	return b
}

// AddBudget appends b with spent reset to zero.
func AddBudget(budgets []models.Budget, b models.Budget) []models.Budget {
	b.Spent = decimal.Zero
	out := make([]models.Budget, 0, len(budgets)+1)
	out = append(out, budgets...)
	return reindex(append(out, b))
}

// PatchBudget merges patch into the budget with the given id.
func PatchBudget(budgets []models.Budget, id string, patch BudgetPatch) ([]models.Budget, bool) {
	idx := indexOfBudget(budgets, id)
	if idx < 0 {
		return budgets, false
	}
	out := make([]models.Budget, len(budgets))
	copy(out, budgets)
	out[idx] = patch.Apply(out[idx])
	return out, true
}

// RemoveBudget drops the budget with the given id.
func RemoveBudget(budgets []models.Budget, id string) ([]models.Budget, bool) {
	idx := indexOfBudget(budgets, id)
	if idx < 0 {
		return budgets, false
	}
	out := make([]models.Budget, 0, len(budgets)-1)
	out = append(out, budgets[:idx]...)
	return reindex(append(out, budgets[idx+1:]...)), true
}

// FindBudget returns the budget with the given id.
func FindBudget(budgets []models.Budget, id string) (models.Budget, bool) {
	idx := indexOfBudget(budgets, id)
	if idx < 0 {
		return models.Budget{}, false
	}
	return budgets[idx], true
}

func indexOfBudget(budgets []models.Budget, id string) int {
	for i, b := range budgets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// reindex stamps list order into Position so the stored list reloads in the
// same order. It only touches the freshly built slice.
func reindex(budgets []models.Budget) []models.Budget {
	for i := range budgets {
		budgets[i].Position = i
	}
	return budgets
}
