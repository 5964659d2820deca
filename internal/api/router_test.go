package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/virattt/openbb-financialdatasets-backend/internal/auth"
	"github.com/virattt/openbb-financialdatasets-backend/internal/dashboard"
	"github.com/virattt/openbb-financialdatasets-backend/internal/store"
	"github.com/virattt/openbb-financialdatasets-backend/internal/upstream"
	"github.com/virattt/openbb-financialdatasets-backend/internal/widget"
)

// newTestRouter wires a router against a fake upstream. envKey simulates the
// FINANCIAL_DATASETS_API_KEY fallback.
func newTestRouter(t *testing.T, upstreamHandler http.HandlerFunc, envKey string) http.Handler {
	t.Helper()

	fake := httptest.NewServer(upstreamHandler)
	t.Cleanup(fake.Close)

	db, err := store.New(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	registry := widget.DefaultCatalog()
	dash, err := dashboard.Load(registry)
	if err != nil {
		t.Fatalf("load dashboard: %v", err)
	}

	client := upstream.New(fake.URL, 5*time.Second)
	return NewRouter(Options{
		Upstream:    client,
		EnvKey:      envKey,
		Registry:    registry,
		Dashboard:   dash,
		Store:       db,
		Hub:         NewHub(client, envKey, time.Second),
		BasePath:    "/",
		CORSOrigins: []string{"https://pro.openbb.co"},
	})
}

func doGet(t *testing.T, h http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestKeyResolution_HeaderBeatsEnv(t *testing.T) {
	var gotKey string
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		w.Write([]byte(`{"income_statements":[]}`))
	}, "E")

	rec := doGet(t, router, "/income?ticker=AAPL&period=annual&limit=10",
		map[string]string{auth.HeaderKey: "H"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotKey != "H" {
		t.Errorf("upstream key = %q, want header key %q", gotKey, "H")
	}
}

func TestKeyResolution_PrimaryHeaderBeatsAlt(t *testing.T) {
	var gotKey string
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		w.Write([]byte(`{"news":[]}`))
	}, "")

	doGet(t, router, "/stock_news?ticker=AAPL", map[string]string{
		auth.HeaderKey:    "primary",
		auth.HeaderKeyAlt: "alt",
	})
	if gotKey != "primary" {
		t.Errorf("upstream key = %q, want %q", gotKey, "primary")
	}
}

func TestKeyResolution_EnvFallback(t *testing.T) {
	var gotKey string
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		w.Write([]byte(`{"income_statements":[]}`))
	}, "E")

	rec := doGet(t, router, "/income?ticker=AAPL&period=annual&limit=10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotKey != "E" {
		t.Errorf("upstream key = %q, want env key %q", gotKey, "E")
	}
}

func TestMissingKey_NonAllowListedReturns401(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called without a key")
	}, "")

	for _, path := range []string{
		"/income?ticker=AAPL",
		"/stock_news?ticker=AAPL",
		"/insider_trades?ticker=AAPL",
		"/stock_snapshot?ticker=AAPL",
		"/earnings_press_releases?ticker=AAPL",
	} {
		rec := doGet(t, router, path, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", path, rec.Code)
		}
	}
}

func TestMissingKey_AllowListedReturnsEmptyPayload(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called without a key")
	}, "")

	for _, path := range []string{
		"/stock_tickers",
		"/institutional_investors",
		"/earnings_press_releases/tickers",
	} {
		rec := doGet(t, router, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
			continue
		}
		var options []any
		if err := json.Unmarshal(rec.Body.Bytes(), &options); err != nil {
			t.Errorf("%s: invalid JSON: %v", path, err)
		}
		if len(options) != 0 {
			t.Errorf("%s: expected empty payload, got %v", path, options)
		}
	}
}

func TestStockTickers_WithKey(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("stock_tickers is static, no upstream call expected")
	}, "E")

	rec := doGet(t, router, "/stock_tickers", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var options []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &options); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(options) != 3 {
		t.Fatalf("expected 3 free-tier tickers, got %d", len(options))
	}
	if options[0]["value"] != "AAPL" {
		t.Errorf("first option = %v", options[0])
	}
}

func TestUpstreamError_RelayedVerbatim(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`plan limit reached`))
	}, "E")

	rec := doGet(t, router, "/income?ticker=AAPL&period=annual&limit=10", nil)
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["error"] != "plan limit reached" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestIncome_TransposedByPeriod(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/financials/income-statements" {
			t.Errorf("upstream path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"income_statements":[
			{"ticker":"AAPL","report_period":"2024-09-28","revenue":391035000000,"net_income":93736000000},
			{"ticker":"AAPL","report_period":"2023-09-30","revenue":383285000000,"net_income":96995000000}
		]}`))
	}, "E")

	rec := doGet(t, router, "/income?ticker=AAPL&period=annual&limit=10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var rows []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 metric rows, got %d", len(rows))
	}
	// Rows sorted by metric name: Net Income before Revenue.
	if rows[0]["metric"] != "Net Income" || rows[1]["metric"] != "Revenue" {
		t.Errorf("unexpected row order: %v", rows)
	}
	if rows[1]["2024-09-28"] != float64(391035000000) {
		t.Errorf("revenue 2024 = %v", rows[1]["2024-09-28"])
	}
}

func TestCompanyFacts_SortedFactRows(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"company_facts":{"market_cap":3.4e12,"name":"Apple Inc.","cik":"0000320193"}}`))
	}, "E")

	rec := doGet(t, router, "/company_facts?ticker=AAPL", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var rows []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	want := []string{"Cik", "Market Cap", "Name"}
	for i, w := range want {
		if rows[i]["fact"] != w {
			t.Errorf("row %d fact = %v, want %s", i, rows[i]["fact"], w)
		}
	}
}

func TestStockSnapshot(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		ticker := r.URL.Query().Get("ticker")
		w.Write([]byte(`{"snapshot":{"ticker":"` + ticker + `","price":123.45,"timestamp":"2024-03-20T15:30:00Z"}}`))
	}, "E")

	rec := doGet(t, router, "/stock_snapshot?ticker=AAPL,%20MSFT", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var rows []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(rows))
	}
	if rows[0]["ticker"] != "AAPL" || rows[1]["ticker"] != "MSFT" {
		t.Errorf("tickers = %v, %v", rows[0]["ticker"], rows[1]["ticker"])
	}
	if rows[0]["timestamp"] != "2024-03-20 15:30:00" {
		t.Errorf("timestamp = %v", rows[0]["timestamp"])
	}

	rec = doGet(t, router, "/stock_snapshot?ticker=%20,%20", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty ticker list: status = %d, want 400", rec.Code)
	}
}

func TestInstitutionalInvestors_Options(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/institutional-ownership/investors/" {
			t.Errorf("upstream path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"investors":["VANGUARD_GROUP_INC","BERKSHIRE_HATHAWAY_INC"]}`))
	}, "E")

	rec := doGet(t, router, "/institutional_investors", nil)
	var options []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &options); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	if options[0]["label"] != "Berkshire Hathaway Inc" || options[0]["value"] != "BERKSHIRE_HATHAWAY_INC" {
		t.Errorf("first option = %v", options[0])
	}
}

func TestWidgetsAndAppsJSON(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, "")

	rec := doGet(t, router, "/widgets.json", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("widgets.json status = %d", rec.Code)
	}
	var widgets map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &widgets); err != nil {
		t.Fatalf("invalid widgets.json: %v", err)
	}
	income, ok := widgets["income"]
	if !ok {
		t.Fatal("widgets.json missing income widget")
	}
	if income["id"] != "income" {
		t.Errorf("income id = %v", income["id"])
	}

	rec = doGet(t, router, "/apps.json", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("apps.json status = %d", rec.Code)
	}
	var app map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &app); err != nil {
		t.Fatalf("invalid apps.json: %v", err)
	}
	if app["name"] == "" {
		t.Error("apps.json has no name")
	}
}

func TestRootBanner(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, "")
	rec := doGet(t, router, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["Info"] == "" {
		t.Error("missing Info banner")
	}
}

func TestUsageEndpoint(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"news":[]}`))
	}, "E")

	doGet(t, router, "/stock_news?ticker=AAPL", nil)
	doGet(t, router, "/stock_news?ticker=MSFT", nil)

	rec := doGet(t, router, "/api/v1/usage", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var report struct {
		WSConnections int              `json:"ws_connections"`
		Endpoints     []map[string]any `json:"endpoints"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.WSConnections != 0 {
		t.Errorf("ws_connections = %d, want 0", report.WSConnections)
	}
	found := false
	for _, u := range report.Endpoints {
		if u["endpoint"] == "/stock_news" {
			found = true
			if u["requests"] != float64(2) {
				t.Errorf("requests = %v, want 2", u["requests"])
			}
		}
	}
	if !found {
		t.Error("usage summary missing /stock_news")
	}
}

func TestBasePathStripping(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer fake.Close()

	registry := widget.DefaultCatalog()
	dash, err := dashboard.Load(registry)
	if err != nil {
		t.Fatal(err)
	}
	router := NewRouter(Options{
		Upstream:  upstream.New(fake.URL, time.Second),
		Registry:  registry,
		Dashboard: dash,
		BasePath:  "/fd",
	})

	rec := doGet(t, router, "/fd/widgets.json", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("prefixed route: status = %d, want 200", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, "")

	req := httptest.NewRequest(http.MethodOptions, "/income", nil)
	req.Header.Set("Origin", "https://pro.openbb.co")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://pro.openbb.co" {
		t.Errorf("allow-origin = %q", got)
	}

	// Unknown origins get no CORS headers.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow-origin %q for unknown origin", got)
	}
}
