package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/services"
	"expensetracker/internal/storage/memory"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()

	now := time.Now()
	seeds := []core.TransactionInput{
		{Title: "Coffee", Amount: decimal.NewFromFloat(4.50), Category: core.CategoryFood, Date: now.AddDate(0, 0, -1)},
		{Title: "Gas", Amount: decimal.NewFromFloat(45.00), Category: core.CategoryTransport, Date: now.AddDate(0, 0, -10)},
	}
	for _, in := range seeds {
		if _, err := store.Create(ctx, in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	tracker := services.NewTracker(store, testLogger())
	if err := tracker.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return NewServer(":0", tracker, testLogger()), store
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestDashboardAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Expense Tracker") {
		t.Fatal("dashboard body missing heading")
	}

	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health status=%d", rr.Code)
	}
}

func TestTransactionListPartial(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/partials/transactions", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Coffee") || !strings.Contains(body, "Gas") {
		t.Fatal("list missing seeded transactions")
	}
	// Newest first
	if strings.Index(body, "Coffee") > strings.Index(body, "Gas") {
		t.Fatal("transactions not sorted newest first")
	}
}

func TestCreateTransaction(t *testing.T) {
	srv, store := newTestServer(t)

	// Wrong method
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/transactions", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Invalid amount
	rr = postForm(t, srv, "/transactions", url.Values{
		"title":  {"Lunch"},
		"amount": {"-5"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Empty title
	rr = postForm(t, srv, "/transactions", url.Values{
		"title":  {"   "},
		"amount": {"5.00"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Success
	rr = postForm(t, srv, "/transactions", url.Values{
		"title":    {"Lunch"},
		"amount":   {"12.99"},
		"category": {"Food"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("HX-Trigger") != "transactions:changed" {
		t.Fatal("missing HX-Trigger header")
	}

	rows, _ := store.FetchAll(context.Background())
	if len(rows) != 3 {
		t.Fatalf("expected 3 stored rows, got %d", len(rows))
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv, store := newTestServer(t)
	rows, _ := store.FetchAll(context.Background())

	rr := postForm(t, srv, "/transactions/delete", url.Values{"id": {rows[0].ID}})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	// Deleting again is a no-op that still renders the list.
	rr = postForm(t, srv, "/transactions/delete", url.Values{"id": {rows[0].ID}})
	if rr.Code != http.StatusOK {
		t.Fatalf("repeat delete expected 200, got %d", rr.Code)
	}

	left, _ := store.FetchAll(context.Background())
	if len(left) != 1 {
		t.Fatalf("expected 1 row left, got %d", len(left))
	}
}

func TestUpdateTransaction(t *testing.T) {
	srv, store := newTestServer(t)
	rows, _ := store.FetchAll(context.Background())

	rr := postForm(t, srv, "/transactions/update", url.Values{
		"id":       {rows[0].ID},
		"title":    {"Espresso"},
		"amount":   {"3.00"},
		"category": {"Food"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	updated, _ := store.FetchAll(context.Background())
	if updated[0].Title != "Espresso" {
		t.Fatalf("update not applied: %+v", updated[0])
	}
}

func TestFilterEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := postForm(t, srv, "/filters/search", url.Values{"search": {"cof"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("search status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Coffee") || strings.Contains(body, "Gas") {
		t.Fatalf("search filter not applied: %s", body)
	}

	rr = postForm(t, srv, "/filters/category", url.Values{"category": {"Transport"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("category status=%d", rr.Code)
	}

	rr = postForm(t, srv, "/filters/range", url.Values{"range": {"last7days"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("range status=%d", rr.Code)
	}
	// Transport + last 7 days matches nothing (Gas is 10 days old).
	if strings.Contains(rr.Body.String(), "Gas") {
		t.Fatal("stale result after combined filters")
	}

	rr = postForm(t, srv, "/filters/clear", url.Values{})
	if rr.Code != http.StatusOK {
		t.Fatalf("clear status=%d", rr.Code)
	}
	body = rr.Body.String()
	if !strings.Contains(body, "Coffee") || !strings.Contains(body, "Gas") {
		t.Fatal("clear did not restore the full set")
	}
}

func TestFilterRangeCustomValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := postForm(t, srv, "/filters/range", url.Values{
		"range": {"custom"},
		"start": {"2025-06-10"},
		"end":   {"2025-06-01"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("reversed bounds expected 422, got %d", rr.Code)
	}

	rr = postForm(t, srv, "/filters/range", url.Values{
		"range": {"custom"},
		"start": {"not-a-date"},
		"end":   {"2025-06-01"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad date expected 422, got %d", rr.Code)
	}
}

func TestFilterRangeCustomIncludesEndDay(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	if _, err := store.Create(ctx, core.TransactionInput{
		Title:    "Dinner",
		Amount:   decimal.NewFromFloat(35.50),
		Category: core.CategoryFood,
		Date:     time.Date(2025, 6, 10, 19, 30, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	tracker := services.NewTracker(store, testLogger())
	if err := tracker.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	srv := NewServer(":0", tracker, testLogger())

	rr := postForm(t, srv, "/filters/range", url.Values{
		"range": {"custom"},
		"start": {"2025-06-01"},
		"end":   {"2025-06-10"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Dinner") {
		t.Fatal("transaction later in the end day must fall inside the range")
	}
}

func TestTrendEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/trend", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}

	var points []struct {
		Date   string  `json:"date"`
		Amount float64 `json:"amount"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 trend points, got %d", len(points))
	}
	if points[0].Date > points[1].Date {
		t.Fatal("trend points not in ascending date order")
	}
}

func TestSummaryAndCategoryPartials(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/partials/summary", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("summary status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "$49.50") {
		t.Fatalf("summary missing total: %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/partials/categories", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("categories status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Food") || !strings.Contains(body, "Transport") {
		t.Fatal("breakdown missing categories")
	}
	if strings.Contains(body, "Bills") {
		t.Fatal("breakdown must omit categories with no transactions")
	}
}

func TestRenderGuardsMissingTemplates(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.templates = nil

	for _, path := range []string{"/", "/partials/transactions", "/partials/summary", "/partials/categories"} {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("%s expected 500 without templates, got %d", path, rr.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing nosniff header")
	}
	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("missing frame options header")
	}
}
