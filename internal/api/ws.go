package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"github.com/virattt/openbb-financialdatasets-backend/internal/upstream"
)

// pingInterval paces the keepalive pings. A var so tests can shorten it.
var pingInterval = 30 * time.Second

// Hub manages the live-grid WebSocket connections. Each client subscribes to
// a set of tickers and gets one snapshot row per ticker per refresh cycle,
// polled from the upstream snapshot endpoint with the client's own API key.
type Hub struct {
	proxy   proxy
	refresh time.Duration

	mu      sync.RWMutex
	clients map[string]*wsClient
}

type wsClient struct {
	id      string
	conn    *websocket.Conn
	apiKey  string
	mu      sync.Mutex
	tickers []string
}

// NewHub creates a hub polling upstream every refresh interval.
func NewHub(client *upstream.Client, envKey string, refresh time.Duration) *Hub {
	if refresh <= 0 {
		refresh = time.Second
	}
	return &Hub{
		proxy:   proxy{client: client, envKey: envKey},
		refresh: refresh,
		clients: make(map[string]*wsClient),
	}
}

// ClientCount returns the number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleStocks upgrades a stock live-grid connection.
func (h *Hub) HandleStocks(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "/prices/snapshot")
}

// HandleCrypto upgrades a crypto live-grid connection.
func (h *Hub) HandleCrypto(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "/crypto/prices/snapshot")
}

func (h *Hub) handle(w http.ResponseWriter, r *http.Request, snapshotPath string) {
	// The key is resolved once, at upgrade time. No key, no stream.
	apiKey, err := h.proxy.key(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // origins are already filtered by the CORS middleware
	})
	if err != nil {
		log.Printf("[ws] accept error: %v", err)
		return
	}

	client := &wsClient{
		id:     uuid.NewString(),
		conn:   conn,
		apiKey: apiKey,
	}

	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()
	wsConnections.Inc()
	log.Printf("[ws] connected %s", client.id)

	ctx, cancel := context.WithCancel(r.Context())
	defer func() {
		cancel()
		h.mu.Lock()
		delete(h.clients, client.id)
		h.mu.Unlock()
		wsConnections.Dec()
		conn.Close(websocket.StatusNormalClosure, "bye")
		log.Printf("[ws] disconnected %s", client.id)
	}()

	go client.pingLoop(ctx)
	go h.producer(ctx, client, snapshotPath)
	client.readPump(ctx)
}

// readPump consumes subscription updates: {"params":{"ticker":"AAPL,MSFT"}}.
// The ticker value may be a comma-separated string or an array. The Workspace
// sends one subscription and then only listens, so reads carry no deadline;
// dead peers surface through the ping loop instead.
func (c *wsClient) readPump(ctx context.Context) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return
		}

		var msg struct {
			Params struct {
				Ticker json.RawMessage `json:"ticker"`
			} `json:"params"`
		}
		if err := json.Unmarshal(data, &msg); err != nil || len(msg.Params.Ticker) == 0 {
			continue
		}

		tickers := parseTickerValue(msg.Params.Ticker)
		if len(tickers) == 0 {
			continue
		}
		c.mu.Lock()
		c.tickers = tickers
		c.mu.Unlock()
	}
}

// producer polls the snapshot endpoint for each subscribed ticker and pushes
// one row per message.
func (h *Hub) producer(ctx context.Context, c *wsClient, snapshotPath string) {
	ticker := time.NewTicker(h.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		c.mu.Lock()
		tickers := append([]string(nil), c.tickers...)
		c.mu.Unlock()

		for _, t := range tickers {
			q := url.Values{}
			q.Set("ticker", t)
			snap, err := fetchSnapshot(ctx, &h.proxy, snapshotPath, q, c.apiKey)
			if err != nil {
				log.Printf("[ws] snapshot %s failed: %v", t, err)
				continue
			}
			if snap == nil {
				continue
			}
			if _, ok := snap["price"]; !ok {
				continue
			}
			data, err := json.Marshal(snap)
			if err != nil {
				continue
			}
			if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		}
	}
}

func (c *wsClient) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, pingInterval)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				// Unanswered ping means a dead peer. Closing here unblocks
				// the reader so the connection tears down.
				c.conn.Close(websocket.StatusGoingAway, "ping timeout")
				return
			}
		}
	}
}

// parseTickerValue accepts "AAPL,MSFT" or ["AAPL","MSFT"].
func parseTickerValue(raw json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return splitTickers(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		var out []string
		for _, t := range list {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
		return out
	}
	return nil
}
