package services

import (
	"github.com/shopspring/decimal"

	"ledgerly/internal/models"
)

// DefaultPassword is the profile password until it is changed.
const DefaultPassword = "changeme123"

// DefaultBudgets are seeded when no budget list has ever been saved.
func DefaultBudgets() []models.Budget {
	return []models.Budget{
		{ID: "1", Position: 0, Name: "Daily Expenses", Category: "Daily Expenses", Amount: decimal.NewFromInt(2000), Spent: decimal.NewFromInt(850), Color: "#ef4444"},
		{ID: "2", Position: 1, Name: "Transport", Category: "Transport", Amount: decimal.NewFromInt(500), Spent: decimal.NewFromInt(320), Color: "#4f46e5"},
		{ID: "3", Position: 2, Name: "Entertainment", Category: "Entertainment", Amount: decimal.NewFromInt(1000), Spent: decimal.NewFromInt(450), Color: "#10b981"},
	}
}

// DefaultProfile is the profile every process starts with. The password
// hash is filled in by the profile service.
func DefaultProfile() models.UserProfile {
	return models.UserProfile{
		Name:          "Daniel Wu",
		Email:         "YZ@example.com",
		Avatar:        "YZ",
		Currency:      "CNY",
		Notifications: true,
		DarkMode:      false,
		Language:      "zh-CN",
		SecurityLevel: models.SecurityLevelMedium,
		Preferences: models.Preferences{
			EmailNotifications: true,
			PushNotifications:  true,
			MonthlyReport:      true,
			BudgetAlerts:       true,
			Currency: models.CurrencyPreference{
				Code:   "CNY",
				Symbol: "¥",
				Format: models.CurrencyPositionBefore,
			},
			DateFormat: models.DateFormatISO,
			TimeFormat: models.TimeFormat24h,
		},
	}
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// DefaultCards are the cards shown on the accounts screens.
func DefaultCards() []models.Card {
	return []models.Card{
		{
			ID:         "1",
			Type:       models.CardTypeDebit,
			Bank:       "China Merchants Bank",
			Number:     "**** **** **** 8888",
			Balance:    decimal.RequireFromString("25680.50"),
			Currency:   "¥",
			Color:      "#000000",
			ExpiryDate: "07/25",
		},
		{
			ID:              "2",
			Type:            models.CardTypeCredit,
			Bank:            "China Merchants Bank",
			Number:          "**** **** **** 6666",
			Balance:         decimal.NewFromInt(50000),
			Currency:        "¥",
			Color:           "#1e3a8a",
			ExpiryDate:      "09/26",
			CreditLimit:     decimalPtr("50000"),
			AvailableCredit: decimalPtr("38000"),
			BillDay:         3,
			RepaymentDay:    20,
			PointsBalance:   5680,
		},
		{
			ID:              "3",
			Type:            models.CardTypeCredit,
			Bank:            "China CITIC Bank",
			Number:          "**** **** **** 4321",
			Balance:         decimal.NewFromInt(30000),
			Currency:        "¥",
			Color:           "#b91c1c",
			ExpiryDate:      "12/27",
			CreditLimit:     decimalPtr("30000"),
			AvailableCredit: decimalPtr("20000"),
			BillDay:         8,
			RepaymentDay:    28,
		},
	}
}
