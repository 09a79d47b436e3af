package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TokenRefreshes counts exchange outcomes: hit (served from cache after
	// waiting on another caller's refresh), ok, auth_error, transport_error,
	// config_error.
	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrbridge_token_refresh_total",
		Help: "Token exchange attempts by outcome.",
	}, []string{"outcome"})

	ToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrbridge_tool_calls_total",
		Help: "MCP tools/call invocations by tool and status.",
	}, []string{"tool", "status"})

	VendorRequestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hrbridge_vendor_request_seconds",
		Help:    "Latency of outbound HR platform requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
)
