package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// requisições HTTP recebidas por rota, método e status
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_dashboard_requests_total",
			Help: "Total API requests received",
		},
		[]string{"path", "method", "status"},
	)

	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ads_dashboard_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// chamadas à Graph API por operação e resultado
	GraphRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_dashboard_graph_requests_total",
			Help: "Total Graph API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	GraphLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ads_dashboard_graph_request_duration_seconds",
			Help:    "Histogram of Graph API call latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// quantas vezes o transporte secundário foi usado
	GraphFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_dashboard_graph_fallback_total",
			Help: "Graph API calls retried on the fallback transport",
		},
		[]string{"outcome"},
	)

	SnapshotSyncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_dashboard_snapshot_sync_accounts_total",
			Help: "Accounts processed by the snapshot sync",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		GraphRequests,
		GraphLatency,
		GraphFallbacks,
		SnapshotSyncRuns,
	)
}
