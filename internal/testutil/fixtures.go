package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ledgerly/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Amount parses a decimal literal and fails the test on bad input.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", s, err)
	}
	return d
}

// NewTestTransaction builds an in-memory transaction with a unique id.
func NewTestTransaction(typ models.TransactionType, amount int64, category string, date models.Date) models.Transaction {
	n := nextID()
	return models.Transaction{
		ID:          fmt.Sprintf("tx-%d", n),
		Type:        typ,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Description: fmt.Sprintf("Test Transaction %d", n),
		Date:        date,
	}
}

// NewTestBudget builds a budget with a unique id and name.
func NewTestBudget(amount, spent int64) models.Budget {
	n := nextID()
	return models.Budget{
		ID:       fmt.Sprintf("budget-%d", n),
		Name:     fmt.Sprintf("Test Budget %d", n),
		Category: fmt.Sprintf("Test Category %d", n),
		Amount:   decimal.NewFromInt(amount),
		Spent:    decimal.NewFromInt(spent),
		Color:    models.DefaultBudgetColor(),
	}
}

// CreateTestBudget stores a budget at the given list position.
func CreateTestBudget(t *testing.T, db *gorm.DB, position int, amount, spent int64) *models.Budget {
	t.Helper()

	budget := NewTestBudget(amount, spent)
	budget.Position = position
	if err := db.Create(&budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return &budget
}

// CreateTestActivity stores an activity entry created at the given time.
func CreateTestActivity(t *testing.T, db *gorm.DB, action string, createdAt time.Time) *models.ActivityEntry {
	t.Helper()

	entry := &models.ActivityEntry{
		Action:       action,
		ResourceType: "budget",
		ResourceID:   fmt.Sprintf("budget-%d", nextID()),
		IPAddress:    "127.0.0.1",
	}
	entry.CreatedAt = createdAt
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test activity entry: %v", err)
	}
	return entry
}

// HashPassword hashes a password at minimum cost for fast tests.
func HashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}
