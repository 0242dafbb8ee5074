// Package errors provides the application error type for the ledgerly API.
// Service-layer failures are returned as *AppError so that handlers can answer
// with a stable code and message without leaking internal details.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Transaction type must be income or expense", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount          = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must not be negative", StatusCode: http.StatusBadRequest}
	ErrInvalidMonth           = &AppError{Code: "INVALID_MONTH", Message: "Month must use the YYYY-MM format", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound      = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrInvalidBudgetAmount = &AppError{Code: "INVALID_AMOUNT", Message: "Budget amounts must be between 0 and 999999999999.99 with at most 2 decimal places", StatusCode: http.StatusBadRequest}
)

// Card errors.
var (
	ErrCardNotFound = &AppError{Code: "CARD_NOT_FOUND", Message: "Card not found", StatusCode: http.StatusNotFound}
)

// Analytics errors.
var (
	ErrInvalidPeriod = &AppError{Code: "INVALID_PERIOD", Message: "Period must be week, month, or year", StatusCode: http.StatusBadRequest}
)

// Profile errors.
var (
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Current password is incorrect", StatusCode: http.StatusUnauthorized}
	ErrPasswordMismatch   = &AppError{Code: "PASSWORD_MISMATCH", Message: "New password and confirmation do not match", StatusCode: http.StatusBadRequest}
	ErrWeakPassword       = &AppError{Code: "WEAK_PASSWORD", Message: "Password must be between 8 and 72 characters", StatusCode: http.StatusBadRequest}
	ErrExportFailed       = &AppError{Code: "EXPORT_FAILED", Message: "Data export failed", StatusCode: http.StatusBadGateway}
)
