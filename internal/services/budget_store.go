package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"ledgerly/internal/models"
)

const budgetsSavedKey = "budgets_saved"

// gormBudgetStore keeps the budget list in the budgets table. Saves replace
// the whole table inside one database transaction.
type gormBudgetStore struct {
	db *gorm.DB
}

// NewGormBudgetStore creates a BudgetStore backed by db.
func NewGormBudgetStore(db *gorm.DB) BudgetStore {
	return &gormBudgetStore{db: db}
}

// Load returns the saved list in position order and whether a list was ever
// saved.
func (s *gormBudgetStore) Load(ctx context.Context) ([]models.Budget, bool, error) {
	var marker models.StoreMeta
	err := s.db.WithContext(ctx).Where("key = ?", budgetsSavedKey).First(&marker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var budgets []models.Budget
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&budgets).Error; err != nil {
		return nil, true, err
	}
	return budgets, true, nil
}

// Save replaces the stored list with budgets and marks the list as saved.
func (s *gormBudgetStore) Save(ctx context.Context, budgets []models.Budget) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Budget{}).Error; err != nil {
			return err
		}
		if len(budgets) > 0 {
			rows := make([]models.Budget, len(budgets))
			for i, b := range budgets {
				b.Position = i
				rows[i] = b
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		marker := models.StoreMeta{Key: budgetsSavedKey, Value: "true", UpdatedAt: time.Now()}
		return tx.Save(&marker).Error
	})
}
