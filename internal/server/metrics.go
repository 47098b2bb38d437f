package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	toolCallCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "image_science",
		Name:      "tool_calls_total",
		Help:      "Number of MCP tool calls by tool and result.",
	}, []string{"tool", "result"})
	toolCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "image_science",
		Name:      "tool_call_duration_seconds",
		Help:      "Duration of MCP tool calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"tool"})
)

// MetricsHandler serves the prometheus metrics of the process.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
