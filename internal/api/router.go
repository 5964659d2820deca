package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/virattt/openbb-financialdatasets-backend/internal/model"
	"github.com/virattt/openbb-financialdatasets-backend/internal/store"
	"github.com/virattt/openbb-financialdatasets-backend/internal/upstream"
	"github.com/virattt/openbb-financialdatasets-backend/internal/widget"
)

// Options bundles the router dependencies.
type Options struct {
	Upstream    *upstream.Client
	EnvKey      string
	Registry    *widget.Registry
	Dashboard   *model.Dashboard
	Store       *store.Store
	Hub         *Hub
	BasePath    string
	CORSOrigins []string
}

// NewRouter creates the HTTP router with all API routes.
func NewRouter(opts Options) http.Handler {
	mux := http.NewServeMux()

	p := proxy{client: opts.Upstream, envKey: opts.EnvKey}

	meta := &metaAPI{registry: opts.Registry, dashboard: opts.Dashboard}
	fin := &financialsAPI{proxy: p}
	prices := &pricesAPI{proxy: p}
	news := &newsAPI{proxy: p}
	own := &ownershipAPI{proxy: p}
	tickers := &tickersAPI{proxy: p}
	usage := &usageAPI{store: opts.Store, hub: opts.Hub}

	// Workspace bootstrap
	mux.HandleFunc("GET /{$}", meta.root)
	mux.HandleFunc("GET /widgets.json", meta.widgets)
	mux.HandleFunc("GET /apps.json", meta.apps)

	// Financial statements
	for endpoint, route := range statementRoutes {
		mux.HandleFunc("GET /"+endpoint, fin.statements(route))
	}
	mux.HandleFunc("GET /company_facts", fin.companyFacts)

	// Prices
	mux.HandleFunc("GET /stock_prices_historical", prices.historical("/prices"))
	mux.HandleFunc("GET /crypto_prices", prices.historical("/crypto/prices"))
	mux.HandleFunc("GET /stock_snapshot", prices.snapshot("/prices/snapshot"))
	mux.HandleFunc("GET /crypto_snapshot", prices.snapshot("/crypto/prices/snapshot"))

	// News
	mux.HandleFunc("GET /stock_news", news.stockNews)
	mux.HandleFunc("GET /earnings_press_releases", news.earningsPressReleases)

	// Option lists (allow-listed for unauthenticated bootstrap)
	mux.HandleFunc("GET /stock_tickers", tickers.stockTickers)
	mux.HandleFunc("GET /institutional_investors", tickers.institutionalInvestors)
	mux.HandleFunc("GET /earnings_press_releases/tickers", tickers.earningsTickers)

	// Ownership
	mux.HandleFunc("GET /insider_trades", own.insiderTrades)
	mux.HandleFunc("GET /institutional_ownership_by_investor", own.byInvestor)
	mux.HandleFunc("GET /institutional_ownership_by_ticker", own.byTicker)

	// Operational
	mux.HandleFunc("GET /api/v1/usage", usage.summary)
	mux.Handle("GET /metrics", promhttp.Handler())

	// WebSocket live grids
	if opts.Hub != nil {
		mux.HandleFunc("GET /stock_ws", opts.Hub.HandleStocks)
		mux.HandleFunc("GET /crypto_ws", opts.Hub.HandleCrypto)
	}

	var handler http.Handler = mux

	// If base_path is set, strip the prefix so internal routing works unchanged
	if opts.BasePath != "/" && opts.BasePath != "" {
		inner := handler
		bp := opts.BasePath
		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, bp) {
				r.URL.Path = strings.TrimPrefix(r.URL.Path, bp)
				if r.URL.Path == "" {
					r.URL.Path = "/"
				}
				r.URL.RawPath = strings.TrimPrefix(r.URL.RawPath, bp)
			}
			inner.ServeHTTP(w, r)
		})
	}

	return withMiddleware(handler, opts.CORSOrigins, opts.Store)
}

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func withMiddleware(next http.Handler, origins []string, db *store.Store) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Recovery
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[http] panic: %v", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		// CORS for the Workspace origins
		if origin := r.Header.Get("Origin"); allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// WebSocket upgrades need the raw ResponseWriter (Hijacker).
		if strings.HasSuffix(r.URL.Path, "_ws") {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		httpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.URL.Path).Observe(elapsed.Seconds())

		if db != nil {
			entry := model.RequestLog{
				Endpoint:   r.URL.Path,
				Status:     rec.status,
				DurationMS: elapsed.Milliseconds(),
			}
			if err := db.LogRequest(&entry); err != nil {
				log.Printf("[http] request log: %v", err)
			}
		}

		log.Printf("[http] %s %s %d %s", r.Method, r.URL.Path, rec.status, elapsed)
	})
}
