package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type pricesAPI struct {
	proxy
}

// historical proxies /prices or /crypto/prices and cleans each bar: the
// RFC 3339 timestamp becomes a readable "time" column and upstream-only
// fields are dropped.
func (a *pricesAPI) historical(upstreamPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := url.Values{}
		for _, p := range []string{"ticker", "interval", "interval_multiplier", "start_date", "end_date"} {
			q.Set(p, r.URL.Query().Get(p))
		}

		body, ok := a.fetch(w, r, upstreamPath, q)
		if !ok {
			return
		}
		prices, err := unwrap(body, "prices")
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "malformed upstream response"})
			return
		}
		if prices == nil {
			prices = []map[string]any{}
		}
		for _, bar := range prices {
			if ts, ok := bar["timestamp"]; ok {
				bar["time"] = formatTimestamp(ts, "2006-01-02 15:04:05")
			}
			delete(bar, "timestamp")
			delete(bar, "time_milliseconds")
			delete(bar, "ticker")
		}
		writeJSON(w, http.StatusOK, prices)
	}
}

// snapshot serves the initial rows for the live grids: one upstream snapshot
// request per requested ticker.
func (a *pricesAPI) snapshot(upstreamPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tickers := splitTickers(r.URL.Query().Get("ticker"))
		if len(tickers) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no valid tickers provided"})
			return
		}

		apiKey, err := a.key(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		results := make([]map[string]any, 0, len(tickers))
		for _, t := range tickers {
			q := url.Values{}
			q.Set("ticker", t)
			snap, err := fetchSnapshot(r.Context(), &a.proxy, upstreamPath, q, apiKey)
			if err != nil {
				// Best effort per ticker, matching a partial grid over a
				// failed response.
				continue
			}
			if snap != nil {
				results = append(results, snap)
			}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

// fetchSnapshot fetches one price snapshot and formats its timestamp. Shared
// with the WebSocket producers.
func fetchSnapshot(ctx context.Context, p *proxy, path string, q url.Values, apiKey string) (map[string]any, error) {
	body, status, err := p.client.Get(ctx, path, q, apiKey)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("upstream %s: status %d", path, status)
	}
	snap, err := unwrapObject(body, "snapshot")
	if err != nil || snap == nil {
		return nil, err
	}
	if ts, ok := snap["timestamp"]; ok {
		snap["timestamp"] = formatTimestamp(ts, "2006-01-02 15:04:05")
	}
	return snap, nil
}

// splitTickers parses a comma-separated ticker list, dropping empties.
func splitTickers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
