package api

import (
	"net/http"
	"net/url"
)

type ownershipAPI struct {
	proxy
}

// insiderTrades proxies /insider-trades and normalizes each row.
func (a *ownershipAPI) insiderTrades(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("ticker", r.URL.Query().Get("ticker"))
	limit := r.URL.Query().Get("limit")
	if limit == "" {
		limit = "50"
	}
	q.Set("limit", limit)

	body, ok := a.fetch(w, r, "/insider-trades", q)
	if !ok {
		return
	}
	trades, err := unwrap(body, "insider_trades")
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "malformed upstream response"})
		return
	}
	if trades == nil {
		trades = []map[string]any{}
	}
	for _, trade := range trades {
		if d, ok := trade["transaction_date"]; ok {
			trade["transaction_date"] = formatTimestamp(d, "2006-01-02")
		}
		if shares, ok := trade["shares"].(float64); ok {
			trade["shares"] = int64(shares)
		}
		delete(trade, "ticker")
		delete(trade, "filing_date")
		delete(trade, "transaction_code")
	}
	writeJSON(w, http.StatusOK, trades)
}

// byInvestor lists the holdings of one institutional investor.
func (a *ownershipAPI) byInvestor(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("investor", r.URL.Query().Get("investor"))
	limit := r.URL.Query().Get("limit")
	if limit == "" {
		limit = "100"
	}
	q.Set("limit", limit)

	body, ok := a.fetch(w, r, "/institutional-ownership", q)
	if !ok {
		return
	}
	holdings, err := unwrap(body, "institutional_ownership")
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "malformed upstream response"})
		return
	}
	if holdings == nil {
		holdings = []map[string]any{}
	}
	for _, h := range holdings {
		normalizeHolding(h)
	}
	writeJSON(w, http.StatusOK, holdings)
}

// byTicker lists the institutions holding one stock.
func (a *ownershipAPI) byTicker(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("ticker", r.URL.Query().Get("ticker"))
	limit := r.URL.Query().Get("limit")
	if limit == "" {
		limit = "100"
	}
	q.Set("limit", limit)

	body, ok := a.fetch(w, r, "/institutional-ownership", q)
	if !ok {
		return
	}
	holdings, err := unwrap(body, "institutional_ownership")
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "malformed upstream response"})
		return
	}
	if holdings == nil {
		holdings = []map[string]any{}
	}
	for _, h := range holdings {
		if inv, ok := h["investor"].(string); ok {
			h["investor"] = titleWords(inv)
		}
		normalizeHolding(h)
		delete(h, "ticker")
		delete(h, "company_name")
	}
	writeJSON(w, http.StatusOK, holdings)
}

func normalizeHolding(h map[string]any) {
	if d, ok := h["report_date"]; ok {
		h["report_date"] = formatTimestamp(d, "2006-01-02")
	}
	if shares, ok := h["shares"].(float64); ok {
		h["shares"] = int64(shares)
	}
}
