package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ledgerly/internal/export"
	"ledgerly/internal/logger"
	"ledgerly/internal/notify"
	"ledgerly/internal/services"
	"ledgerly/internal/testutil"
	"ledgerly/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
	logger.Init("test")
}

type capturedAlerts struct {
	mu     sync.Mutex
	alerts []*notify.BudgetAlert
}

func (p *capturedAlerts) PublishBudgetAlert(_ context.Context, alert *notify.BudgetAlert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, alert)
	return nil
}

func (p *capturedAlerts) Close() error { return nil }

func (p *capturedAlerts) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.alerts)
}

type app struct {
	router    *gin.Engine
	db        *gorm.DB
	alerts    *capturedAlerts
	exportDir string
}

func newApp(t *testing.T, db *gorm.DB) *app {
	t.Helper()
	alerts := &capturedAlerts{}
	exportDir := t.TempDir()

	profile, err := services.NewProfileService()
	require.NoError(t, err)
	budgets, err := services.NewBudgetService(context.Background(), services.NewGormBudgetStore(db), alerts, profile)
	require.NoError(t, err)
	transactions := services.NewTransactionService()

	router := NewRouter(Services{
		Transactions: transactions,
		Budgets:      budgets,
		Profile:      profile,
		Analytics:    services.NewAnalyticsService(transactions),
		Cards:        services.NewCardService(services.DefaultCards()),
		Export:       services.NewExportService(export.NewLocalSink(exportDir), profile, transactions, budgets),
		Activity:     services.NewActivityService(db),
	})
	return &app{router: router, db: db, alerts: alerts, exportDir: exportDir}
}

func (a *app) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var result map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result), rec.Body.String())
	}
	return rec, result
}

func TestRouter_Platform(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	a := newApp(t, db)

	rec, result := a.do(t, "GET", "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", result["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, _ = a.do(t, "GET", "/api/v1/nothing-here", "")
	testutil.AssertErrorResponse(t, rec, http.StatusNotFound, "NOT_FOUND")

	rec, _ = a.do(t, "OPTIONS", "/api/v1/budgets", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_BudgetLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	a := newApp(t, db)

	rec, result := a.do(t, "GET", "/api/v1/budgets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, result["budgets"], 3, "defaults are seeded on first start")

	rec, result = a.do(t, "PATCH", "/api/v1/budgets/1", `{"spent":"1900"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	budget := result["budget"].(map[string]interface{})
	assert.Equal(t, true, budget["warning"])
	assert.Equal(t, "95", budget["percentage"])
	assert.Equal(t, 1, a.alerts.count(), "crossing the threshold raises one alert")

	rec, _ = a.do(t, "PUT", "/api/v1/budgets/1", `{"spent":"1950"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, a.alerts.count(), "staying over the threshold does not raise again")

	rec, result = a.do(t, "POST", "/api/v1/budgets", `{"name":"Books","amount":"300"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := result["budget"].(map[string]interface{})
	assert.Equal(t, "Books", created["category"])
	assert.Equal(t, "#ef4444", created["color"])
	assert.Equal(t, "0", created["spent"])

	rec, _ = a.do(t, "DELETE", "/api/v1/budgets/2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(t, "GET", "/api/v1/budgets/2", "")
	testutil.AssertErrorResponse(t, rec, http.StatusNotFound, "BUDGET_NOT_FOUND")

	// A restart reads the saved list back instead of reseeding.
	restarted := newApp(t, db)
	rec, result = restarted.do(t, "GET", "/api/v1/budgets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := result["budgets"].([]interface{})
	require.Len(t, list, 3)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "1", first["id"])
	assert.Equal(t, "1950", first["spent"])
	assert.Equal(t, "Books", list[2].(map[string]interface{})["name"])

	rec, result = a.do(t, "GET", "/api/v1/activity?page_size=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), result["total_items"])
	newest := result["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "DELETE_BUDGET", newest["action"])
}

func TestRouter_BudgetAmountsMatchStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	a := newApp(t, db)

	rec, _ := a.do(t, "PATCH", "/api/v1/budgets/1", `{"spent":"10.123456789012345678"}`)
	testutil.AssertErrorResponse(t, rec, http.StatusBadRequest, "INVALID_AMOUNT")
	rec, _ = a.do(t, "POST", "/api/v1/budgets", `{"name":"Huge","amount":"1000000000000"}`)
	testutil.AssertErrorResponse(t, rec, http.StatusBadRequest, "INVALID_AMOUNT")

	rec, _ = a.do(t, "PATCH", "/api/v1/budgets/1", `{"spent":"10.12","amount":"2000.50"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, result := newApp(t, db).do(t, "GET", "/api/v1/budgets/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	budget := result["budget"].(map[string]interface{})
	assert.Equal(t, "10.12", budget["spent"])
	assert.Equal(t, "2000.5", budget["amount"])
}

func TestRouter_TransactionFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	a := newApp(t, db)

	for _, body := range []string{
		`{"type":"income","amount":"5000","category":"Salary","description":"March pay","date":"2024-03-01"}`,
		`{"type":"expense","amount":"42.5","category":"Food","description":"Groceries","date":"2024-03-05"}`,
		`{"type":"expense","amount":"18","category":"Transport","description":"Metro card","date":"2024-03-05T08:00:00Z"}`,
		`{"type":"expense","amount":"99","category":"Food","description":"Dinner","date":"2024-02-28"}`,
	} {
		rec, _ := a.do(t, "POST", "/api/v1/transactions", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec, result := a.do(t, "GET", "/api/v1/transactions?month=2024-03&sort_by=amount&order=asc", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(3), result["total_items"])
	data := result["data"].([]interface{})
	assert.Equal(t, "18", data[0].(map[string]interface{})["amount"])
	stats := result["stats"].(map[string]interface{})
	assert.Equal(t, "5000", stats["total_income"])
	assert.Equal(t, "60.5", stats["total_expense"])

	rec, result = a.do(t, "GET", "/api/v1/transactions?month=all&category=Food&search=DIN", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), result["total_items"])

	rec, result = a.do(t, "GET", "/api/v1/transactions/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{"Salary", "Food", "Transport"}, result["categories"])

	rec, result = a.do(t, "GET", "/api/v1/summary?month=2024-03", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := result["summary"].(map[string]interface{})
	assert.Equal(t, "4939.5", summary["balance"])

	rec, _ = a.do(t, "GET", "/api/v1/transactions/export?month=2024-02", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="transactions_2024-02.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Date,Description,Category,Type,Amount\n2024-02-28,Dinner,Food,expense,99.00\n", rec.Body.String())

	rec, result = a.do(t, "GET", "/api/v1/analytics?period=month&as_of=2024-03-15", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	comparison := result["monthly_comparison"].(map[string]interface{})
	assert.Nil(t, comparison["income_growth"], "no income last month")
	assert.Len(t, result["daily_trends"], 31)

	rec, _ = a.do(t, "PUT", "/api/v1/transactions/does-not-exist",
		`{"type":"income","amount":"1","category":"Gift"}`)
	testutil.AssertErrorResponse(t, rec, http.StatusNotFound, "TRANSACTION_NOT_FOUND")
}

func TestRouter_ProfileFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	a := newApp(t, db)

	rec, result := a.do(t, "PATCH", "/api/v1/profile/preferences", `{"budgetAlerts":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	prefs := result["profile"].(map[string]interface{})["preferences"].(map[string]interface{})
	assert.Equal(t, false, prefs["budgetAlerts"])
	assert.Equal(t, "24h", prefs["timeFormat"], "untouched preferences are kept")

	rec, _ = a.do(t, "PATCH", "/api/v1/budgets/2", `{"spent":"499"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, a.alerts.count(), "alerts are off")

	rec, _ = a.do(t, "PUT", "/api/v1/profile/password",
		`{"current_password":"changeme123","new_password":"better-secret","confirm_password":"better-secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = a.do(t, "PUT", "/api/v1/profile/password",
		`{"current_password":"changeme123","new_password":"another-one","confirm_password":"another-one"}`)
	testutil.AssertErrorResponse(t, rec, http.StatusUnauthorized, "INVALID_CREDENTIALS")

	rec, result = a.do(t, "POST", "/api/v1/profile/export", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	location := result["location"].(string)
	assert.Equal(t, a.exportDir, filepath.Dir(location))
	raw, err := os.ReadFile(location)
	require.NoError(t, err)
	var bundle services.DataExport
	require.NoError(t, json.Unmarshal(raw, &bundle))
	assert.Len(t, bundle.Budgets, 3)
	assert.Equal(t, "Daniel Wu", bundle.Profile.Name)
}
