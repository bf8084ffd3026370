package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamevault-dashboard/internal/config"
	"gamevault-dashboard/internal/models"
	"gamevault-dashboard/internal/services"
)

func testAnalytics() *services.Analytics {
	date := func(d int) time.Time {
		return time.Date(2027, 9, d, 0, 0, 0, 0, time.UTC)
	}

	a := services.NewAnalytics(config.AnalyticsConfig{})
	a.SetData(&models.Dataset{
		Visits: []models.Visit{
			{CustomerID: "C001", CustomerName: "Thabo M", Date: date(1), AmountPaid: 500, DurationMin: 45, Game: "FIFA", Rating: 5, Age: 24},
			{CustomerID: "C002", CustomerName: "Naledi K", Date: date(2), AmountPaid: 250, DurationMin: 60, Game: "Snooker", Rating: 4, Age: 31},
		},
		Snacks: []models.SnackSale{
			{Date: date(1), Snack: "Chips", UnitPrice: 15, Quantity: 4, TotalSale: 60},
		},
		Tournaments: []models.TournamentEntry{
			{Date: date(1), Participant: "Lefika P", EntryFee: 100},
		},
		Expenses: []models.ExpenseRecord{
			{Date: date(1), Category: "Rent", Amount: 3000},
		},
	})
	return a
}

func newTestAPIHandlers() *APIHandlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAPIHandlers(testAnalytics(), logger)
}

func decodeSuccess(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("expected success envelope, got %s", w.Body.String())
	}
	return body
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("missing error object in %s", w.Body.String())
	}
	return errObj
}

func TestHandleKPIs(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/kpis", nil)
	w := httptest.NewRecorder()
	h.HandleKPIs(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=60" {
		t.Errorf("Cache-Control = %q, want public, max-age=60", cc)
	}

	body := decodeSuccess(t, w)
	data := body["data"].(map[string]any)
	if data["gameplay_revenue"] != 750.0 {
		t.Errorf("gameplay_revenue = %v, want 750", data["gameplay_revenue"])
	}
	if data["tournament_revenue"] != 1100.0 {
		t.Errorf("tournament_revenue = %v, want 1100", data["tournament_revenue"])
	}
	if data["total_visits"] != 2.0 {
		t.Errorf("total_visits = %v, want 2", data["total_visits"])
	}
}

func TestHandleKPIs_DateFilter(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/kpis?start=2027-09-02&end=2027-09-02", nil)
	w := httptest.NewRecorder()
	h.HandleKPIs(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeSuccess(t, w)
	data := body["data"].(map[string]any)
	if data["total_visits"] != 1.0 {
		t.Errorf("total_visits = %v, want 1", data["total_visits"])
	}
	if data["tournament_revenue"] != 0.0 {
		t.Errorf("tournament_revenue = %v, want 0", data["tournament_revenue"])
	}
}

func TestHandleKPIs_BadDate(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/kpis?start=09-01-2027", nil)
	w := httptest.NewRecorder()
	h.HandleKPIs(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	errObj := decodeError(t, w)
	if errObj["code"] != "BAD_REQUEST" {
		t.Errorf("error code = %v, want BAD_REQUEST", errObj["code"])
	}
}

func TestHandleKPIs_InvalidRange(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/kpis?start=2027-09-30&end=2027-09-01", nil)
	w := httptest.NewRecorder()
	h.HandleKPIs(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	errObj := decodeError(t, w)
	if errObj["code"] != "INVALID_RANGE" {
		t.Errorf("error code = %v, want INVALID_RANGE", errObj["code"])
	}
}

func TestAggregateEndpoints(t *testing.T) {
	h := newTestAPIHandlers()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, data any)
	}{
		{
			name:    "game popularity",
			handler: h.HandleGamePopularity,
			check: func(t *testing.T, data any) {
				rows := data.([]any)
				if len(rows) != 2 {
					t.Fatalf("rows = %d, want 2", len(rows))
				}
				first := rows[0].(map[string]any)
				if first["game"] != "FIFA" {
					t.Errorf("first game = %v, want FIFA", first["game"])
				}
			},
		},
		{
			name:    "top customers",
			handler: h.HandleTopCustomers,
			check: func(t *testing.T, data any) {
				rows := data.([]any)
				first := rows[0].(map[string]any)
				if first["customer_name"] != "Thabo M" || first["total_paid"] != 500.0 {
					t.Errorf("first customer = %v", first)
				}
			},
		},
		{
			name:    "expense breakdown",
			handler: h.HandleExpenseBreakdown,
			check: func(t *testing.T, data any) {
				rows := data.([]any)
				first := rows[0].(map[string]any)
				if first["category"] != "Rent" || first["amount"] != 3000.0 {
					t.Errorf("first expense = %v", first)
				}
			},
		},
		{
			name:    "snack popularity",
			handler: h.HandleSnackPopularity,
			check: func(t *testing.T, data any) {
				rows := data.([]any)
				first := rows[0].(map[string]any)
				if first["snack"] != "Chips" || first["quantity"] != 4.0 {
					t.Errorf("first snack = %v", first)
				}
			},
		},
		{
			name:    "daily revenue",
			handler: h.HandleDailyRevenue,
			check: func(t *testing.T, data any) {
				rows := data.([]any)
				if len(rows) != 2 {
					t.Fatalf("rows = %d, want 2", len(rows))
				}
				first := rows[0].(map[string]any)
				if first["date"] != "2027-09-01" {
					t.Errorf("first date = %v, want 2027-09-01", first["date"])
				}
				if first["total"] != 500.0+60+1100 {
					t.Errorf("first total = %v, want 1660", first["total"])
				}
			},
		},
		{
			name:    "rating distribution",
			handler: h.HandleRatingDistribution,
			check: func(t *testing.T, data any) {
				rows := data.([]any)
				if len(rows) != 5 {
					t.Fatalf("rows = %d, want 5", len(rows))
				}
			},
		},
		{
			name:    "age distribution",
			handler: h.HandleAgeDistribution,
			check: func(t *testing.T, data any) {
				rows := data.([]any)
				if len(rows) == 0 {
					t.Fatal("expected at least one age bucket")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
			w := httptest.NewRecorder()
			tt.handler(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=60" {
				t.Errorf("Cache-Control = %q", cc)
			}

			body := decodeSuccess(t, w)
			tt.check(t, body["data"])
		})
	}
}

func TestHandleGames(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
	w := httptest.NewRecorder()
	h.HandleGames(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeSuccess(t, w)
	data := body["data"].(map[string]any)

	games := data["games"].([]any)
	if len(games) != 2 || games[0] != "FIFA" || games[1] != "Snooker" {
		t.Errorf("games = %v, want [FIFA Snooker]", games)
	}
	if data["min_date"] != "2027-09-01" || data["max_date"] != "2027-09-02" {
		t.Errorf("date bounds = %v..%v", data["min_date"], data["max_date"])
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeSuccess(t, w)
	data := body["data"].(map[string]any)
	if data["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", data["status"])
	}
}

func TestHandleStats(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	h.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeSuccess(t, w)
	data := body["data"].(map[string]any)
	if data["visits"] != 2.0 {
		t.Errorf("visits = %v, want 2", data["visits"])
	}
	if data["record_count"] != 5.0 {
		t.Errorf("record_count = %v, want 5", data["record_count"])
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
		check   func(t *testing.T, q services.Query)
	}{
		{
			name: "empty",
			url:  "/api/kpis",
			check: func(t *testing.T, q services.Query) {
				if !q.Start.IsZero() || !q.End.IsZero() || q.Game != "" {
					t.Errorf("expected zero query, got %+v", q)
				}
			},
		},
		{
			name: "full",
			url:  "/api/kpis?start=2027-09-01&end=2027-09-30&game=FIFA",
			check: func(t *testing.T, q services.Query) {
				if q.Start.Format("2006-01-02") != "2027-09-01" {
					t.Errorf("start = %v", q.Start)
				}
				if q.End.Format("2006-01-02") != "2027-09-30" {
					t.Errorf("end = %v", q.End)
				}
				if q.Game != "FIFA" {
					t.Errorf("game = %q", q.Game)
				}
			},
		},
		{
			name:    "bad start",
			url:     "/api/kpis?start=notadate",
			wantErr: true,
		},
		{
			name:    "bad end",
			url:     "/api/kpis?end=2027/09/30",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			q, err := parseQuery(req)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseQuery() error: %v", err)
			}
			tt.check(t, q)
		})
	}
}
