package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/virattt/openbb-financialdatasets-backend/internal/auth"
	"github.com/virattt/openbb-financialdatasets-backend/internal/upstream"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// proxy bundles the upstream client with the environment-supplied fallback
// key. Every data handler embeds one.
type proxy struct {
	client *upstream.Client
	envKey string
}

// key resolves the effective API key for a request (headers first, then the
// env fallback).
func (p *proxy) key(r *http.Request) (string, error) {
	return auth.Resolve(r.Header, p.envKey)
}

// fetch resolves the key, performs one upstream GET and handles the error
// paths: missing key → 401, transport failure → 502, upstream non-2xx →
// relayed status with the upstream body as the error message. Returns the
// raw body and true only on upstream 200.
func (p *proxy) fetch(w http.ResponseWriter, r *http.Request, path string, query url.Values) ([]byte, bool) {
	apiKey, err := p.key(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return nil, false
	}
	return p.fetchWithKey(r.Context(), w, path, query, apiKey)
}

func (p *proxy) fetchWithKey(ctx context.Context, w http.ResponseWriter, path string, query url.Values, apiKey string) ([]byte, bool) {
	body, status, err := p.client.Get(ctx, path, query, apiKey)
	if err != nil {
		log.Printf("[proxy] %s: %v", path, err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return nil, false
	}
	if status != http.StatusOK {
		log.Printf("[proxy] %s: upstream status %d", path, status)
		writeJSON(w, status, map[string]string{"error": string(body)})
		return nil, false
	}
	return body, true
}

// unwrap extracts the named array from an upstream envelope like
// {"income_statements": [...]}.
func unwrap(body []byte, field string) ([]map[string]any, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	raw, ok := envelope[field]
	if !ok {
		return []map[string]any{}, nil
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// unwrapObject extracts the named object from an upstream envelope like
// {"snapshot": {...}}.
func unwrapObject(body []byte, field string) (map[string]any, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	raw, ok := envelope[field]
	if !ok {
		return nil, nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeBody unmarshals an upstream body into v.
func decodeBody(body []byte, v any) error {
	return json.Unmarshal(body, v)
}

// formatTimestamp reformats an RFC 3339 timestamp into layout; unparseable
// values pass through unchanged (upstream occasionally sends plain dates).
func formatTimestamp(v any, layout string) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return v
	}
	return t.Format(layout)
}

// sortByField orders rows by a string column for stable display.
func sortByField(rows []map[string]any, field string) {
	sort.Slice(rows, func(i, j int) bool {
		a, _ := rows[i][field].(string)
		b, _ := rows[j][field].(string)
		return a < b
	})
}

// titleWords turns "BERKSHIRE_HATHAWAY_INC" or "market_cap" into
// "Berkshire Hathaway Inc" / "Market Cap".
func titleWords(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
