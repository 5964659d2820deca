package api

import (
	"net/http"
	"net/url"
)

// statementRoute maps one local financials endpoint onto its upstream path
// and response envelope field.
type statementRoute struct {
	upstreamPath string
	field        string
}

var statementRoutes = map[string]statementRoute{
	"income":            {"/financials/income-statements", "income_statements"},
	"balance":           {"/financials/balance-sheets", "balance_sheets"},
	"cash_flow":         {"/financials/cash-flow-statements", "cash_flow_statements"},
	"financial_metrics": {"/financial-metrics", "financial_metrics"},
}

type financialsAPI struct {
	proxy
}

func (a *financialsAPI) statements(route statementRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := url.Values{}
		q.Set("ticker", r.URL.Query().Get("ticker"))
		q.Set("period", r.URL.Query().Get("period"))
		q.Set("limit", r.URL.Query().Get("limit"))

		body, ok := a.fetch(w, r, route.upstreamPath, q)
		if !ok {
			return
		}
		rows, err := unwrap(body, route.field)
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "malformed upstream response"})
			return
		}
		writeJSON(w, http.StatusOK, transposeStatements(rows))
	}
}

// companyFacts returns key company information as sorted fact/value rows.
func (a *financialsAPI) companyFacts(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("ticker", r.URL.Query().Get("ticker"))

	body, ok := a.fetch(w, r, "/company/facts", q)
	if !ok {
		return
	}
	facts, err := unwrapObject(body, "company_facts")
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "malformed upstream response"})
		return
	}

	rows := make([]map[string]any, 0, len(facts))
	for k, v := range facts {
		rows = append(rows, map[string]any{"fact": titleWords(k), "value": v})
	}
	sortByField(rows, "fact")
	writeJSON(w, http.StatusOK, rows)
}
