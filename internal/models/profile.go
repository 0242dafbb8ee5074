package models

// SecurityLevel is the user's chosen account security posture.
type SecurityLevel string

const (
	SecurityLevelLow    SecurityLevel = "low"
	SecurityLevelMedium SecurityLevel = "medium"
	SecurityLevelHigh   SecurityLevel = "high"
)

// CurrencyPosition places the currency symbol before or after the amount.
type CurrencyPosition string

const (
	CurrencyPositionBefore CurrencyPosition = "before"
	CurrencyPositionAfter  CurrencyPosition = "after"
)

// DateFormat is a display format for dates.
type DateFormat string

const (
	DateFormatISO DateFormat = "YYYY-MM-DD"
	DateFormatDMY DateFormat = "DD/MM/YYYY"
	DateFormatMDY DateFormat = "MM/DD/YYYY"
)

// TimeFormat is a display format for times of day.
type TimeFormat string

const (
	TimeFormat24h TimeFormat = "24h"
	TimeFormat12h TimeFormat = "12h"
)

// CurrencyPreference describes how amounts are displayed.
type CurrencyPreference struct {
	Code   string           `json:"code"`
	Symbol string           `json:"symbol"`
	Format CurrencyPosition `json:"format"`
}

// Preferences are the user's notification and display settings.
type Preferences struct {
	EmailNotifications bool               `json:"emailNotifications"`
	PushNotifications  bool               `json:"pushNotifications"`
	MonthlyReport      bool               `json:"monthlyReport"`
	BudgetAlerts       bool               `json:"budgetAlerts"`
	Currency           CurrencyPreference `json:"currency"`
	DateFormat         DateFormat         `json:"dateFormat"`
	TimeFormat         TimeFormat         `json:"timeFormat"`
}

// UserProfile is the single user's profile. It lives in memory only.
type UserProfile struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Avatar        string        `json:"avatar"`
	Currency      string        `json:"currency"`
	Notifications bool          `json:"notifications"`
	DarkMode      bool          `json:"darkMode"`
	Language      string        `json:"language"`
	SecurityLevel SecurityLevel `json:"securityLevel"`
	Preferences   Preferences   `json:"preferences"`

	PasswordHash string `json:"-"`
}
