package services

import (
	"io"
	"sync"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/ledger"
	"ledgerly/internal/models"
	"ledgerly/internal/pagination"
	"ledgerly/internal/uuid"
)

// transactionService keeps the transaction list in memory. Every mutation
// replaces the list with the result of a ledger reducer.
type transactionService struct {
	mu    sync.RWMutex
	txs   []models.Transaction
	today func() models.Date
}

// NewTransactionService creates a new TransactionServicer with an empty list.
func NewTransactionService() TransactionServicer {
	return &transactionService{today: models.Today}
}

func (s *transactionService) build(id string, input TransactionInput) (models.Transaction, error) {
	if !input.Type.Valid() {
		return models.Transaction{}, apperrors.ErrInvalidTransactionType
	}
	if input.Amount.IsNegative() {
		return models.Transaction{}, apperrors.ErrInvalidAmount
	}
	date := input.Date
	if date.IsZero() {
		date = s.today()
	}
	return models.Transaction{
		ID:          id,
		Type:        input.Type,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        date,
	}, nil
}

// CreateTransaction appends a new transaction.
func (s *transactionService) CreateTransaction(input TransactionInput) (*models.Transaction, error) {
	tx, err := s.build(uuid.New(), input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.txs = ledger.AddTransaction(s.txs, tx)
	s.mu.Unlock()

	return &tx, nil
}

// GetTransaction returns a transaction by ID.
func (s *transactionService) GetTransaction(id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.txs {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, apperrors.ErrTransactionNotFound
}

// ReplaceTransaction overwrites every field of a transaction except its ID.
func (s *transactionService) ReplaceTransaction(id string, input TransactionInput) (*models.Transaction, error) {
	tx, err := s.build(id, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := ledger.ReplaceTransaction(s.txs, id, tx)
	if !ok {
		return nil, apperrors.ErrTransactionNotFound
	}
	s.txs = next
	return &tx, nil
}

// DeleteTransaction removes a transaction.
func (s *transactionService) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := ledger.RemoveTransaction(s.txs, id)
	if !ok {
		return apperrors.ErrTransactionNotFound
	}
	s.txs = next
	return nil
}

func (s *transactionService) selectSorted(query TransactionQuery) []models.Transaction {
	s.mu.RLock()
	filtered := ledger.Apply(s.txs, query.Filter)
	s.mu.RUnlock()
	return ledger.Sort(filtered, query.SortBy, query.Order)
}

// ListTransactions returns one page of the filtered, sorted list with stats
// over the whole filtered list.
func (s *transactionService) ListTransactions(query TransactionQuery) (*TransactionList, error) {
	sorted := s.selectSorted(query)
	return &TransactionList{
		PageResponse: pagination.Slice(sorted, query.Page),
		Stats:        ledger.Derive(sorted),
	}, nil
}

// ExportCSV writes the filtered, sorted list as CSV.
func (s *transactionService) ExportCSV(w io.Writer, query TransactionQuery) error {
	if err := ledger.WriteCSV(w, s.selectSorted(query)); err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, err)
	}
	return nil
}

// Categories lists the categories in use, in first-seen order.
func (s *transactionService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ledger.Categories(s.txs)
}

// MonthSummary totals the transactions of a YYYY-MM month. An empty month
// means the current one.
func (s *transactionService) MonthSummary(month string) (*MonthSummary, error) {
	if month == "" {
		month = s.today().MonthKey()
	}
	if _, err := ledger.ParseMonth(month); err != nil {
		return nil, apperrors.ErrInvalidMonth
	}

	s.mu.RLock()
	inMonth := ledger.Apply(s.txs, ledger.Filter{Month: month})
	s.mu.RUnlock()

	stats := ledger.Derive(inMonth)
	return &MonthSummary{
		Month:   month,
		Income:  stats.TotalIncome,
		Expense: stats.TotalExpense,
		Balance: stats.Balance,
		Count:   stats.Count,
	}, nil
}

// All returns a copy of every transaction in insertion order.
func (s *transactionService) All() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}
