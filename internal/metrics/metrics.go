// Package metrics holds the Prometheus collectors shared across typecast.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InferenceRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "typecast",
		Name:      "inference_requests_total",
		Help:      "Inference calls by backend and outcome.",
	}, []string{"backend", "outcome"})

	InferenceLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "typecast",
		Name:      "inference_latency_seconds",
		Help:      "Inference call latency.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
	}, []string{"backend"})

	LogsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "typecast",
		Name:      "logs_parsed_total",
		Help:      "Uploaded chat logs by result (ok, invalid).",
	}, []string{"result"})

	Analyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "typecast",
		Name:      "analyses_total",
		Help:      "Analysis runs by result (ok, failed).",
	}, []string{"result"})

	ToolDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "typecast",
		Name:      "tool_dispatches_total",
		Help:      "Routed chat replies by tool (none, chart, compatibility).",
	}, []string{"tool"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "typecast",
		Name:      "active_sessions",
		Help:      "Sessions currently held by the session store.",
	})
)
