package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fdbackend_http_requests_total",
		Help: "HTTP requests handled, by path and status code",
	}, []string{"path", "code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fdbackend_http_request_duration_seconds",
		Help:    "HTTP request latency, by path",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	wsConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fdbackend_ws_connections",
		Help: "Currently open WebSocket connections",
	})
)
