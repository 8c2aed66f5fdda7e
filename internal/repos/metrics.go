package repos

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	operationList   = "list"
	operationLog    = "log"
	operationStatus = "status"

	resultSuccess = "success"
	resultError   = "error"
)

type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics registers repository inspection metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "repospect",
			Subsystem: "repos",
			Name:      "operations_total",
			Help:      "Repository inspection operations by operation and result.",
		}, []string{"operation", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "repospect",
			Subsystem: "repos",
			Name:      "operation_duration_seconds",
			Help:      "Duration of repository inspection operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) observe(operation string, started time.Time, err error) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}

	m.operations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
