package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cleared-dev/myfinances/internal/config"
	"github.com/cleared-dev/myfinances/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var aug15 = time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) (*gin.Engine, *session.Session) {
	t.Helper()
	sess := session.NewSample(
		session.WithClock(func() time.Time { return aug15 }),
		session.WithLogger(zap.NewNop().Sugar()),
	)
	cfg := config.Default().Server
	cfg.CORSOrigins = []string{"http://localhost:5173"}
	return NewRouter(sess, cfg), sess
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := parseJSON(t, rec)
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error object: %s", rec.Body.String())
	return e["code"].(string)
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doRequest(r, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", parseJSON(t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestDashboard(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doRequest(r, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := parseJSON(t, rec)
	assert.Equal(t, "2025-08-15", body["as_of"])
	assert.Equal(t, "Aug 25", body["month"])

	totals := body["totals"].(map[string]any)
	income := totals["income"].(map[string]any)
	assert.Equal(t, "90000", income["value"])
	assert.Equal(t, "₹90,000", income["display"])
	savings := totals["savings"].(map[string]any)
	assert.Equal(t, "₹57,450", savings["display"])

	recent := body["recent"].([]any)
	require.Len(t, recent, 5)
	first := recent[0].(map[string]any)
	assert.Equal(t, float64(7), first["id"])
	assert.Equal(t, "+₹15,000", first["amount_display"])
	assert.Equal(t, "7 Aug 2025", first["date_display"])
}

func TestDashboard_AsOf(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/dashboard?as_of=2025-07-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	totals := parseJSON(t, rec)["totals"].(map[string]any)
	assert.Equal(t, "0", totals["income"].(map[string]any)["value"])
	assert.Equal(t, "57450", totals["balance"].(map[string]any)["value"], "balance is all-time")

	rec = doRequest(r, http.MethodGet, "/api/dashboard?as_of=July", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, rec))
}

func TestListTransactions(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/transactions?kind=expense&search=MONTHLY", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := parseJSON(t, rec)
	assert.Equal(t, float64(2), body["count"])
	txns := body["transactions"].([]any)
	assert.Equal(t, float64(4), txns[0].(map[string]any)["id"])
	assert.Equal(t, "-₹25,000", txns[0].(map[string]any)["amount_display"])

	rec = doRequest(r, http.MethodGet, "/api/transactions?kind=gift", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_KIND", errorCode(t, rec))
}

func TestCreateTransaction(t *testing.T) {
	r, sess := newTestRouter(t)

	rec := doRequest(r, http.MethodPost, "/api/transactions",
		`{"date":"2025-08-20","kind":"expense","amount":"1500.50","category":"Shopping","description":"Shoes"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	txn := parseJSON(t, rec)["transaction"].(map[string]any)
	assert.Equal(t, float64(8), txn["id"])
	assert.Equal(t, "N/A", txn["source"])
	assert.Equal(t, "-₹1,500.5", txn["amount_display"])

	got, err := sess.Transaction(8)
	require.NoError(t, err)
	assert.Equal(t, "Shoes", got.Description)
}

func TestCreateTransaction_DefaultsDateToNow(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodPost, "/api/transactions",
		`{"kind":"income","amount":2000,"category":"Investment"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	txn := parseJSON(t, rec)["transaction"].(map[string]any)
	assert.Equal(t, "2025-08-15", txn["date"])
}

func TestCreateTransaction_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"negative amount", `{"kind":"expense","amount":"-5","category":"Food"}`, "INVALID_AMOUNT"},
		{"missing amount", `{"kind":"expense","category":"Food"}`, "INVALID_INPUT"},
		{"bad kind", `{"kind":"gift","amount":"5","category":"Food"}`, "INVALID_KIND"},
		{"wrong category", `{"kind":"income","amount":"5","category":"Food"}`, "INVALID_CATEGORY"},
		{"bad date", `{"date":"20/08/2025","kind":"expense","amount":"5","category":"Food"}`, "INVALID_INPUT"},
		{"malformed", `{"kind":`, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, sess := newTestRouter(t)
			rec := doRequest(r, http.MethodPost, "/api/transactions", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, errorCode(t, rec))
			assert.Len(t, sess.Transactions(emptyFilter), 7)
		})
	}
}

func TestDeleteTransaction(t *testing.T) {
	r, sess := newTestRouter(t)

	rec := doRequest(r, http.MethodDelete, "/api/transactions/3", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, sess.Transactions(emptyFilter), 6)

	rec = doRequest(r, http.MethodDelete, "/api/transactions/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))

	rec = doRequest(r, http.MethodDelete, "/api/transactions/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTransaction(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/transactions/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	txn := parseJSON(t, rec)["transaction"].(map[string]any)
	assert.Equal(t, "Salary", txn["category"])

	rec = doRequest(r, http.MethodGet, "/api/transactions/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategories(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/categories?kind=income", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cats := parseJSON(t, rec)["categories"].([]any)
	assert.Len(t, cats, 5)
	assert.Equal(t, "Salary", cats[0])

	rec = doRequest(r, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, parseJSON(t, rec)["categories"].([]any), 6)
}

func TestSetBudget(t *testing.T) {
	r, sess := newTestRouter(t)

	rec := doRequest(r, http.MethodPut, "/api/budgets/Food", `{"limit":9000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, sess.BudgetList()[0].Limit.Equal(decimalFromInt(9000)))

	rec = doRequest(r, http.MethodPut, "/api/budgets/Food", `{"limit":"0"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_LIMIT", errorCode(t, rec))
	assert.True(t, sess.BudgetList()[0].Limit.Equal(decimalFromInt(9000)))

	rec = doRequest(r, http.MethodPut, "/api/budgets/Travel", `{"limit":"10"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "UNKNOWN_CATEGORY", errorCode(t, rec))

	rec = doRequest(r, http.MethodPut, "/api/budgets/Food", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListBudgets(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doRequest(r, http.MethodGet, "/api/budgets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	bs := parseJSON(t, rec)["budgets"].([]any)
	require.Len(t, bs, 7)
	bills := bs[3].(map[string]any)
	assert.Equal(t, "Bills", bills["category"])
	assert.Equal(t, "₹30,000", bills["limit"].(map[string]any)["display"])
}

func TestTrend(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/reports/trend?months=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := parseJSON(t, rec)
	assert.Equal(t, []any{"Jun 25", "Jul 25", "Aug 25"}, body["labels"])
	assert.Equal(t, []any{"0", "0", "32550"}, body["expenses"])

	rec = doRequest(r, http.MethodGet, "/api/reports/trend", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, parseJSON(t, rec)["labels"].([]any), 6)

	rec = doRequest(r, http.MethodGet, "/api/reports/trend?months=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBudgetReport(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/reports/budgets?as_of=2025-08-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := parseJSON(t, rec)

	items := body["budgets"].([]any)
	require.Len(t, items, 7)
	bills := items[3].(map[string]any)
	assert.Equal(t, "warning", bills["status"])
	assert.Equal(t, "83.3", bills["percentage"])

	comparison := body["comparison"].(map[string]any)
	assert.Len(t, comparison["labels"].([]any), 7)
}

func TestCORS(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestActivity_InMemory(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doRequest(r, http.MethodGet, "/api/activity", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, parseJSON(t, rec)["activity"])
}
