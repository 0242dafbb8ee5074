package ledger

import (
	"bytes"
	"testing"
	"time"

	"ledgerly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionReducers(t *testing.T) {
	base := sampleTransactions()[:2]

	added := AddTransaction(base, tx("z", models.TransactionTypeExpense, "9", "Misc", "", day(2024, time.May, 1)))
	assert.Equal(t, []string{"a", "b", "z"}, ids(added))
	assert.Len(t, base, 2)

	replacement := tx("ignored", models.TransactionTypeIncome, "1", "Gift", "Birthday", day(2024, time.May, 2))
	replaced, ok := ReplaceTransaction(added, "b", replacement)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "z"}, ids(replaced))
	assert.Equal(t, "Gift", replaced[1].Category)
	assert.Equal(t, "Food", added[1].Category)

	_, ok = ReplaceTransaction(added, "missing", replacement)
	assert.False(t, ok)

	removed, ok := RemoveTransaction(replaced, "a")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "z"}, ids(removed))
	assert.Len(t, replaced, 3)

	same, ok := RemoveTransaction(removed, "missing")
	assert.False(t, ok)
	assert.Equal(t, ids(removed), ids(same))
}

func TestBudgetReducers(t *testing.T) {
	list := []models.Budget{
		budget("1", "Daily Expenses", "Daily Expenses", "2000", "850"),
		budget("2", "Transport", "Transport", "500", "320"),
	}

	added := AddBudget(list, budget("3", "Books", "Books", "100", "75"))
	require.Len(t, added, 3)
	assert.True(t, added[2].Spent.IsZero())
	assert.Equal(t, 2, added[2].Position)
	assert.Len(t, list, 2)

	name := "Commute"
	spent := dec("450")
	patched, ok := PatchBudget(added, "2", BudgetPatch{Name: &name, Spent: &spent})
	require.True(t, ok)
	assert.Equal(t, "Commute", patched[1].Name)
	assert.Equal(t, "Transport", patched[1].Category)
	assert.True(t, patched[1].Spent.Equal(dec("450")))
	assert.Equal(t, "Transport", added[1].Name)

	_, ok = PatchBudget(added, "9", BudgetPatch{Name: &name})
	assert.False(t, ok)

	removed, ok := RemoveBudget(patched, "1")
	require.True(t, ok)
	require.Len(t, removed, 2)
	assert.Equal(t, "2", removed[0].ID)
	assert.Equal(t, 0, removed[0].Position)
	assert.Equal(t, 1, removed[1].Position)

	_, ok = RemoveBudget(removed, "1")
	assert.False(t, ok)

	found, ok := FindBudget(removed, "3")
	require.True(t, ok)
	assert.Equal(t, "Books", found.Name)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	txs := []models.Transaction{
		tx("1", models.TransactionTypeExpense, "35.5", "Food", "Lunch, with team", day(2024, time.March, 3)),
		tx("2", models.TransactionTypeIncome, "5000", "Salary", "March salary", day(2024, time.March, 1)),
	}
	require.NoError(t, WriteCSV(&buf, txs))

	want := "Date,Description,Category,Type,Amount\n" +
		"2024-03-03,\"Lunch, with team\",Food,expense,35.50\n" +
		"2024-03-01,March salary,Salary,income,5000.00\n"
	assert.Equal(t, want, buf.String())
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "transactions_2024-03.csv", ExportFilename("2024-03"))
	assert.Equal(t, "transactions_all.csv", ExportFilename(""))
}
