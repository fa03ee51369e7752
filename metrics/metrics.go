package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoopstats_store_operations_total",
			Help: "Total flat-file store operations",
		},
		[]string{"store", "op"},
	)

	ReconcileRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoopstats_reconcile_rows_total",
			Help: "Rows kept, inserted and deleted by reconciliation passes",
		},
		[]string{"mode", "outcome"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hoopstats_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
