package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/export"
)

// exportService bundles the user's data and hands it to an export sink.
type exportService struct {
	sink         export.Sink
	profile      ProfileServicer
	transactions TransactionServicer
	budgets      BudgetServicer
	now          func() time.Time
}

// NewExportService creates a new ExportServicer.
func NewExportService(sink export.Sink, profile ProfileServicer, transactions TransactionServicer, budgets BudgetServicer) ExportServicer {
	return &exportService{
		sink:         sink,
		profile:      profile,
		transactions: transactions,
		budgets:      budgets,
		now:          time.Now,
	}
}

// ExportUserData writes the profile, transactions and budgets as one JSON
// document named user-data-<timestamp>.json.
func (s *exportService) ExportUserData(ctx context.Context) (*ExportResult, error) {
	at := s.now().UTC()
	bundle := DataExport{
		ExportedAt:   at,
		Profile:      s.profile.GetProfile(),
		Transactions: s.transactions.All(),
		Budgets:      s.budgets.All(),
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, err)
	}

	name := fmt.Sprintf("user-data-%s.json", at.Format("20060102T150405Z"))
	location, err := s.sink.Put(ctx, name, data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, err)
	}

	return &ExportResult{Location: location, Export: bundle}, nil
}
