package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"ledgerly/internal/ledger"
	"ledgerly/internal/models"
	"ledgerly/internal/pagination"
)

// TransactionInput carries the fields of a new or replacement transaction.
// A zero Date means today.
type TransactionInput struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        models.Date
}

// TransactionQuery selects, orders and pages transactions.
type TransactionQuery struct {
	Filter ledger.Filter
	SortBy ledger.SortField
	Order  ledger.SortOrder
	Page   pagination.PageRequest
}

// TransactionList is one page of a filtered, sorted list plus statistics
// derived from the whole filtered list.
type TransactionList struct {
	pagination.PageResponse[models.Transaction]
	Stats ledger.Stats `json:"stats"`
}

// MonthSummary is the month-to-date overview on the home screen.
type MonthSummary struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Count   int             `json:"count"`
}

// TransactionServicer defines the contract for the in-memory transaction list.
type TransactionServicer interface {
	CreateTransaction(input TransactionInput) (*models.Transaction, error)
	GetTransaction(id string) (*models.Transaction, error)
	ReplaceTransaction(id string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(id string) error
	ListTransactions(query TransactionQuery) (*TransactionList, error)
	ExportCSV(w io.Writer, query TransactionQuery) error
	Categories() []string
	MonthSummary(month string) (*MonthSummary, error)
	All() []models.Transaction
}

// BudgetStore persists the budget list. Load reports whether a list was ever
// saved, so that an explicitly emptied list is not reseeded.
type BudgetStore interface {
	Load(ctx context.Context) ([]models.Budget, bool, error)
	Save(ctx context.Context, budgets []models.Budget) error
}

// BudgetInput carries the fields of a new budget. Empty Category defaults to
// Name and empty Color to the first palette color.
type BudgetInput struct {
	Name     string
	Category string
	Amount   decimal.Decimal
	Color    string
}

// BudgetList is every budget with its status plus the aggregate summary.
type BudgetList struct {
	Budgets []ledger.BudgetStatus `json:"budgets"`
	Summary ledger.BudgetSummary  `json:"summary"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(ctx context.Context, input BudgetInput) (*ledger.BudgetStatus, error)
	ListBudgets() *BudgetList
	GetBudget(id string) (*ledger.BudgetStatus, error)
	UpdateBudget(ctx context.Context, id string, patch ledger.BudgetPatch) (*ledger.BudgetStatus, error)
	DeleteBudget(ctx context.Context, id string) error
	Palette() []models.PaletteColor
	All() []models.Budget
}

// ProfileUpdate lists the profile fields to overwrite. A non-nil Preferences
// replaces the preferences wholesale.
type ProfileUpdate struct {
	Name          *string
	Email         *string
	Avatar        *string
	Currency      *string
	Notifications *bool
	DarkMode      *bool
	Language      *string
	SecurityLevel *models.SecurityLevel
	Preferences   *models.Preferences
}

// PreferencesUpdate lists the preference fields to overwrite. A non-nil
// Currency replaces the currency preference wholesale.
type PreferencesUpdate struct {
	EmailNotifications *bool
	PushNotifications  *bool
	MonthlyReport      *bool
	BudgetAlerts       *bool
	Currency           *models.CurrencyPreference
	DateFormat         *models.DateFormat
	TimeFormat         *models.TimeFormat
}

// ProfileServicer defines the contract for the single user profile.
type ProfileServicer interface {
	GetProfile() models.UserProfile
	UpdateProfile(update ProfileUpdate) models.UserProfile
	UpdatePreferences(update PreferencesUpdate) models.UserProfile
	ChangePassword(current, next, confirm string) error
}

// CategoryAmount is one category's share of a total.
type CategoryAmount struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// DailyTrend is the income and expense of a single day.
type DailyTrend struct {
	Date    models.Date     `json:"date"`
	Weekday string          `json:"weekday"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// OverallStats summarizes the analysis window.
type OverallStats struct {
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpense       decimal.Decimal `json:"total_expense"`
	Balance            decimal.Decimal `json:"balance"`
	TransactionCount   int             `json:"transaction_count"`
	AverageTransaction decimal.Decimal `json:"average_transaction"`
}

// MonthComparison compares the month of the reference date with the month
// before it. Growth rates are nil when the previous value is zero.
type MonthComparison struct {
	CurrentMonth  string           `json:"current_month"`
	PreviousMonth string           `json:"previous_month"`
	Current       ledger.Totals    `json:"current"`
	Previous      ledger.Totals    `json:"previous"`
	IncomeGrowth  *decimal.Decimal `json:"income_growth"`
	ExpenseGrowth *decimal.Decimal `json:"expense_growth"`
}

// AnalyticsOverview is the analysis screen for one period.
type AnalyticsOverview struct {
	Period            ledger.Period    `json:"period"`
	Window            ledger.Window    `json:"window"`
	OverallStats      OverallStats     `json:"overall_stats"`
	ExpenseByCategory []CategoryAmount `json:"expense_by_category"`
	IncomeByCategory  []CategoryAmount `json:"income_by_category"`
	DailyTrends       []DailyTrend     `json:"daily_trends"`
	MonthlyComparison MonthComparison  `json:"monthly_comparison"`
}

// AnalyticsServicer defines the contract for spend analysis.
type AnalyticsServicer interface {
	Overview(period ledger.Period, asOf models.Date) (*AnalyticsOverview, error)
}

// CreditSummary totals the credit cards. Utilization is nil when the total
// limit is zero.
type CreditSummary struct {
	CardCount      int              `json:"card_count"`
	TotalLimit     decimal.Decimal  `json:"total_limit"`
	TotalAvailable decimal.Decimal  `json:"total_available"`
	TotalUsed      decimal.Decimal  `json:"total_used"`
	Utilization    *decimal.Decimal `json:"utilization"`
	PointsBalance  int              `json:"points_balance"`
}

// CardServicer defines the contract for the read-only card list.
type CardServicer interface {
	ListCards(cardType *models.CardType) []models.Card
	GetCard(id string) (*models.Card, error)
	CreditSummary() CreditSummary
}

// DataExport is the bundle written by a user data export.
type DataExport struct {
	ExportedAt   time.Time            `json:"exportedAt"`
	Profile      models.UserProfile   `json:"profile"`
	Transactions []models.Transaction `json:"transactions"`
	Budgets      []models.Budget      `json:"budgets"`
}

// ExportResult reports where an export was stored.
type ExportResult struct {
	Location string     `json:"location"`
	Export   DataExport `json:"export"`
}

// ExportServicer defines the contract for user data exports.
type ExportServicer interface {
	ExportUserData(ctx context.Context) (*ExportResult, error)
}

// ActivityServicer defines the contract for the activity log.
type ActivityServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	ListActivity(page pagination.PageRequest) (*pagination.PageResponse[models.ActivityEntry], error)
}
