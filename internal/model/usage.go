package model

// RequestLog is one proxied API request, recorded for the usage report.
type RequestLog struct {
	ID         int64  `json:"id,omitempty"`
	Timestamp  int64  `json:"timestamp"`
	Endpoint   string `json:"endpoint"`
	Status     int    `json:"status"`
	DurationMS int64  `json:"duration_ms"`
}

// EndpointUsage aggregates request logs per endpoint.
type EndpointUsage struct {
	Endpoint      string  `json:"endpoint"`
	Requests      int64   `json:"requests"`
	Errors        int64   `json:"errors"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	LastSeen      int64   `json:"last_seen"`
}

// UsageReport is the /api/v1/usage payload.
type UsageReport struct {
	WSConnections int             `json:"ws_connections"`
	Endpoints     []EndpointUsage `json:"endpoints"`
}
