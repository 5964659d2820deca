package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestGet_SendsKeyAndQuery(t *testing.T) {
	var gotKey, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"prices":[]}`))
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)
	q := url.Values{}
	q.Set("ticker", "AAPL")
	body, status, err := c.Get(context.Background(), "/prices", q, "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if gotKey != "secret" {
		t.Errorf("X-API-KEY = %q, want %q", gotKey, "secret")
	}
	if gotQuery != "ticker=AAPL" {
		t.Errorf("query = %q, want %q", gotQuery, "ticker=AAPL")
	}
	if string(body) != `{"prices":[]}` {
		t.Errorf("body = %q", body)
	}
}

func TestGet_RelaysNon2xxVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"message":"upgrade required"}`))
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)
	body, status, err := c.Get(context.Background(), "/financials/income-statements", nil, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusPaymentRequired {
		t.Errorf("status = %d, want 402", status)
	}
	if string(body) != `{"message":"upgrade required"}` {
		t.Errorf("body = %q", body)
	}
}

func TestGet_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := New(server.URL, time.Second)
	_, _, err := c.Get(context.Background(), "/news", nil, "k")
	if err == nil {
		t.Fatal("expected transport error")
	}
	var ue *Error
	if !errors.As(err, &ue) {
		t.Fatalf("expected *upstream.Error, got %T", err)
	}
	if ue.Path != "/news" {
		t.Errorf("Path = %q, want /news", ue.Path)
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New("", 0)
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
	if c.http.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", c.http.Timeout)
	}
}
