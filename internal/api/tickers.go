package api

import (
	"log"
	"net/http"
	"sort"

	"github.com/virattt/openbb-financialdatasets-backend/internal/model"
)

// tickersAPI serves the option lists the Workspace needs before any widget
// can load. These endpoints are allow-listed: with no resolvable API key
// they answer 200 with an empty list so the dashboard shell still renders.
type tickersAPI struct {
	proxy
}

// freeTierTickers is the static list the upstream free tier supports.
var freeTierTickers = []model.Option{
	{Label: "Apple Inc. (AAPL)", Value: "AAPL"},
	{Label: "Microsoft Corp. (MSFT)", Value: "MSFT"},
	{Label: "Tesla Inc. (TSLA)", Value: "TSLA"},
}

func (a *tickersAPI) stockTickers(w http.ResponseWriter, r *http.Request) {
	if _, err := a.key(r); err != nil {
		writeJSON(w, http.StatusOK, []model.Option{})
		return
	}
	writeJSON(w, http.StatusOK, freeTierTickers)
}

// institutionalInvestors lists the investors available upstream as sorted
// label/value options.
func (a *tickersAPI) institutionalInvestors(w http.ResponseWriter, r *http.Request) {
	apiKey, err := a.key(r)
	if err != nil {
		writeJSON(w, http.StatusOK, []model.Option{})
		return
	}

	body, status, err := a.client.Get(r.Context(), "/institutional-ownership/investors/", nil, apiKey)
	if err != nil || status != http.StatusOK {
		log.Printf("[tickers] investors fetch failed: status=%d err=%v", status, err)
		writeJSON(w, http.StatusOK, []model.Option{})
		return
	}

	var envelope struct {
		Investors []string `json:"investors"`
	}
	if err := decodeBody(body, &envelope); err != nil {
		writeJSON(w, http.StatusOK, []model.Option{})
		return
	}
	sort.Strings(envelope.Investors)

	options := make([]model.Option, 0, len(envelope.Investors))
	for _, inv := range envelope.Investors {
		options = append(options, model.Option{Label: titleWords(inv), Value: inv})
	}
	writeJSON(w, http.StatusOK, options)
}

// earningsTickers lists tickers with earnings press releases. Falls back to
// a single default entry when upstream is unavailable.
func (a *tickersAPI) earningsTickers(w http.ResponseWriter, r *http.Request) {
	apiKey, err := a.key(r)
	if err != nil {
		writeJSON(w, http.StatusOK, []model.Option{})
		return
	}

	fallback := []model.Option{{Label: "AAPL", Value: "AAPL"}}

	body, status, err := a.client.Get(r.Context(), "/earnings/press-releases/tickers/", nil, apiKey)
	if err != nil || status != http.StatusOK {
		log.Printf("[tickers] earnings tickers fetch failed: status=%d err=%v", status, err)
		writeJSON(w, http.StatusOK, fallback)
		return
	}

	var envelope struct {
		Tickers []string `json:"tickers"`
	}
	if err := decodeBody(body, &envelope); err != nil {
		writeJSON(w, http.StatusOK, fallback)
		return
	}
	sort.Strings(envelope.Tickers)

	options := make([]model.Option, 0, len(envelope.Tickers))
	for _, t := range envelope.Tickers {
		options = append(options, model.Option{Label: t, Value: t})
	}
	writeJSON(w, http.StatusOK, options)
}
