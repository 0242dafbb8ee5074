package testutil

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
)

// AssertAppError checks that err carries the given ledgerly error code, such
// as "BUDGET_NOT_FOUND" or "INVALID_AMOUNT".
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()

	var appErr *apperrors.AppError
	switch {
	case err == nil:
		t.Fatalf("expected %s, got nil", code)
	case !errors.As(err, &appErr):
		t.Fatalf("expected %s, got %T: %v", code, err, err)
	case appErr.Code != code:
		t.Errorf("expected %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertErrorResponse checks an API error reply: the HTTP status and the
// {"error": {"code", "message"}} body the handlers write.
func AssertErrorResponse(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	if rec.Code != status {
		t.Errorf("expected status %d, got %d", status, rec.Code)
	}
	var body struct {
		Error apperrors.AppError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected error body, got %q: %v", rec.Body.String(), err)
	}
	if body.Error.Code != code {
		t.Errorf("expected error code %s, got %q", code, body.Error.Code)
	}
	if body.Error.Message == "" {
		t.Error("expected an error message")
	}
}

// AssertAmount compares a money value by numeric equality, so "10.10" and
// "10.1" match.
func AssertAmount(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()

	expected, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatalf("invalid expected amount %q: %v", want, err)
	}
	if !got.Equal(expected) {
		t.Errorf("expected amount %s, got %s", want, got)
	}
}
