package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/ledger"
	"ledgerly/internal/logger"
	"ledgerly/internal/models"
	"ledgerly/internal/notify"
	"ledgerly/internal/uuid"
)

// budgetService holds the budget list in memory and writes it through to the
// store after every reduction. The in-memory list only changes once the save
// has succeeded.
type budgetService struct {
	mu      sync.RWMutex
	budgets []models.Budget
	store   BudgetStore
	alerts  notify.Publisher
	profile ProfileServicer
}

// NewBudgetService loads the saved budget list, seeding and saving the
// defaults when nothing was ever saved.
func NewBudgetService(ctx context.Context, store BudgetStore, alerts notify.Publisher, profile ProfileServicer) (BudgetServicer, error) {
	budgets, saved, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	if !saved {
		budgets = DefaultBudgets()
		if err := store.Save(ctx, budgets); err != nil {
			return nil, fmt.Errorf("failed to seed budgets: %w", err)
		}
		logger.Get().Infow("Seeded default budgets", "count", len(budgets))
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return &budgetService{budgets: budgets, store: store, alerts: alerts, profile: profile}, nil
}

// commit saves next and, on success, makes it the current list. Callers hold
// the write lock.
func (s *budgetService) commit(ctx context.Context, next []models.Budget) error {
	if err := s.store.Save(ctx, next); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.budgets = next
	return nil
}

// CreateBudget appends a budget with spent set to zero.
func (s *budgetService) CreateBudget(ctx context.Context, input BudgetInput) (*ledger.BudgetStatus, error) {
	if !ledger.StorableMoney(input.Amount) {
		return nil, apperrors.ErrInvalidBudgetAmount
	}
	budget := models.Budget{
		ID:       uuid.New(),
		Name:     input.Name,
		Category: input.Category,
		Amount:   input.Amount,
		Color:    input.Color,
	}
	if budget.Category == "" {
		budget.Category = budget.Name
	}
	if budget.Color == "" {
		budget.Color = models.DefaultBudgetColor()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := ledger.AddBudget(s.budgets, budget)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	status := ledger.StatusOf(next[len(next)-1])
	return &status, nil
}

// ListBudgets returns every budget with its status and the summary.
func (s *budgetService) ListBudgets() *BudgetList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statuses := make([]ledger.BudgetStatus, len(s.budgets))
	for i, b := range s.budgets {
		statuses[i] = ledger.StatusOf(b)
	}
	return &BudgetList{Budgets: statuses, Summary: ledger.SummarizeBudgets(s.budgets)}
}

// GetBudget returns a budget by ID.
func (s *budgetService) GetBudget(id string) (*ledger.BudgetStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := ledger.FindBudget(s.budgets, id)
	if !ok {
		return nil, apperrors.ErrBudgetNotFound
	}
	status := ledger.StatusOf(b)
	return &status, nil
}

// UpdateBudget merges patch into a budget. Crossing the warning threshold
// raises an alert when budget alerts are enabled.
func (s *budgetService) UpdateBudget(ctx context.Context, id string, patch ledger.BudgetPatch) (*ledger.BudgetStatus, error) {
	if (patch.Amount != nil && !ledger.StorableMoney(*patch.Amount)) || (patch.Spent != nil && !ledger.StorableMoney(*patch.Spent)) {
		return nil, apperrors.ErrInvalidBudgetAmount
	}

	after, crossed, err := s.patch(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if crossed {
		s.raiseAlert(ctx, after)
	}

	status := ledger.StatusOf(after)
	return &status, nil
}

// patch applies and saves the patch under the write lock. crossed reports
// whether the budget moved into the warning range.
func (s *budgetService) patch(ctx context.Context, id string, patch ledger.BudgetPatch) (after models.Budget, crossed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before, ok := ledger.FindBudget(s.budgets, id)
	if !ok {
		return models.Budget{}, false, apperrors.ErrBudgetNotFound
	}
	next, _ := ledger.PatchBudget(s.budgets, id, patch)
	if err = s.commit(ctx, next); err != nil {
		return models.Budget{}, false, err
	}

	after, _ = ledger.FindBudget(next, id)
	crossed = !ledger.BudgetWarning(before.Spent, before.Amount) && ledger.BudgetWarning(after.Spent, after.Amount)
	return after, crossed, nil
}

// DeleteBudget removes a budget.
func (s *budgetService) DeleteBudget(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := ledger.RemoveBudget(s.budgets, id)
	if !ok {
		return apperrors.ErrBudgetNotFound
	}
	return s.commit(ctx, next)
}

// Palette returns the selectable budget colors.
func (s *budgetService) Palette() []models.PaletteColor {
	out := make([]models.PaletteColor, len(models.BudgetPalette))
	copy(out, models.BudgetPalette)
	return out
}

// All returns a copy of the budget list.
func (s *budgetService) All() []models.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Budget, len(s.budgets))
	copy(out, s.budgets)
	return out
}

// raiseAlert publishes a budget alert. It runs without s.mu held. Failures
// are logged only.
func (s *budgetService) raiseAlert(ctx context.Context, b models.Budget) {
	if s.alerts == nil || s.profile == nil || !s.profile.GetProfile().Preferences.BudgetAlerts {
		return
	}
	if err := s.alerts.PublishBudgetAlert(ctx, notify.NewBudgetAlert(b, time.Now())); err != nil {
		logger.Get().Errorw("failed to publish budget alert",
			"error", err,
			"budget_id", b.ID,
		)
	}
}
