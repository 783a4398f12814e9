package fallback

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal counts store calls.
	// Labels: store (primary, local), operation, result (success, error)
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schoolhub",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of store operations by store and result",
		},
		[]string{"store", "operation", "result"},
	)

	// FallbacksTotal counts operations served by the local store after the primary failed or was down.
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schoolhub",
			Subsystem: "store",
			Name:      "fallbacks_total",
			Help:      "Total number of operations that fell back to the local store",
		},
		[]string{"operation"},
	)
)

func recordOperation(store, op string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	OperationsTotal.WithLabelValues(store, op, result).Inc()
}
