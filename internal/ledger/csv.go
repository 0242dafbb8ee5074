package ledger

import (
	"encoding/csv"
	"io"

	"ledgerly/internal/models"
)

var csvHeader = []string{"Date", "Description", "Category", "Type", "Amount"}

// WriteCSV writes txs as CSV with a Date,Description,Category,Type,Amount
// header.
func WriteCSV(w io.Writer, txs []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range txs {
		row := []string{
			t.Date.String(),
			t.Description,
			t.Category,
			string(t.Type),
			t.Amount.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename names a CSV export for the given month key.
func ExportFilename(month string) string {
	if month == "" {
		month = All
	}
	return "transactions_" + month + ".csv"
}
