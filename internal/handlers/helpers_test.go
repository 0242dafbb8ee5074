package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/logger"
	"ledgerly/internal/models"
	"ledgerly/internal/pagination"
	"ledgerly/internal/services"
	"ledgerly/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
	logger.Init("test")
}

// --- mock activity service ---

type activityCall struct {
	action       string
	resourceType string
	resourceID   string
	changes      map[string]interface{}
}

type mockActivityService struct {
	calls          []activityCall
	listActivityFn func(page pagination.PageRequest) (*pagination.PageResponse[models.ActivityEntry], error)
}

func (m *mockActivityService) Log(action, resourceType, resourceID, _ string, changes map[string]interface{}) {
	m.calls = append(m.calls, activityCall{action: action, resourceType: resourceType, resourceID: resourceID, changes: changes})
}

func (m *mockActivityService) ListActivity(page pagination.PageRequest) (*pagination.PageResponse[models.ActivityEntry], error) {
	if m.listActivityFn != nil {
		return m.listActivityFn(page)
	}
	resp := pagination.NewPageResponse([]models.ActivityEntry{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

var _ services.ActivityServicer = (*mockActivityService)(nil)

func (m *mockActivityService) assertLogged(t *testing.T, action string) {
	t.Helper()
	for _, call := range m.calls {
		if call.action == action {
			return
		}
	}
	t.Errorf("expected activity %q to be logged, got %v", action, m.calls)
}

// --- helpers ---

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestRespondWithError(t *testing.T) {
	route := func(err error) *gin.Engine {
		r := gin.New()
		r.GET("/", func(c *gin.Context) { respondWithError(c, err) })
		return r
	}

	t.Run("uses the app error status and code", func(t *testing.T) {
		rec := doRequest(route(apperrors.ErrBudgetNotFound), "GET", "/", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})

	t.Run("hides unexpected errors", func(t *testing.T) {
		rec := doRequest(route(errors.New("disk on fire")), "GET", "/", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INTERNAL_ERROR")
		if strings.Contains(rec.Body.String(), "disk on fire") {
			t.Error("internal error text leaked into the response")
		}
	})
}

func TestParseOptionalDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty is zero", input: ""},
		{name: "calendar date", input: "2024-03-15", want: "2024-03-15"},
		{name: "rfc3339", input: "2024-03-15T10:30:00Z", want: "2024-03-15"},
		{name: "garbage", input: "15/03/2024", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOptionalDate(tt.input)
			if tt.wantErr {
				var appErr *apperrors.AppError
				if !errors.As(err, &appErr) || appErr.Code != "INVALID_INPUT" {
					t.Fatalf("expected INVALID_INPUT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want == "" {
				if !got.IsZero() {
					t.Errorf("expected zero date, got %s", got)
				}
				return
			}
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
