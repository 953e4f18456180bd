package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels shared by request metrics.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidTag   = "invalid_tag"
	OutcomeDecodeError  = "decode_error"
	OutcomeHandlerError = "handler_error"
	OutcomeUnsupported  = "unsupported"
)

var (
	registerOnce sync.Once

	adminRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scadmin",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total admin RPC requests served.",
		},
		[]string{"api_key", "outcome"},
	)
	adminDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scadmin",
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Admin RPC request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"api_key", "outcome"},
	)
	deleteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scadmin",
			Subsystem: "delete",
			Name:      "requests_total",
			Help:      "Delete requests by resource label and status code.",
		},
		[]string{"label", "code"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(adminRequests, adminDuration, deleteRequests)
	})
}

func RecordAdminRequest(apiKey, outcome string, duration time.Duration) {
	RegisterMetrics()
	adminRequests.WithLabelValues(apiKey, outcome).Inc()
	adminDuration.WithLabelValues(apiKey, outcome).Observe(duration.Seconds())
}

func RecordDelete(label, code string) {
	RegisterMetrics()
	deleteRequests.WithLabelValues(label, code).Inc()
}
