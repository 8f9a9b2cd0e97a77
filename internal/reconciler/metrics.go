package reconciler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout_service",
		Subsystem: "reconciler",
		Name:      "runs_total",
		Help:      "Total number of reconciliation runs.",
	}, []string{"result"})

	paymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout_service",
		Subsystem: "reconciler",
		Name:      "payments_total",
		Help:      "Pending payments checked by the reconciler.",
	}, []string{"result"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "checkout_service",
		Subsystem: "reconciler",
		Name:      "run_duration_seconds",
		Help:      "Duration of a reconciliation run in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)
