package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decodeAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txlens",
		Subsystem: "decode_api",
		Name:      "requests_total",
		Help:      "Count of decode API requests.",
	}, []string{"endpoint", "status"})
	decodeAPIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txlens",
		Subsystem: "decode_api",
		Name:      "request_duration_seconds",
		Help:      "Duration of decode API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "status"})
)

// DecodeAPI tracks metrics for HTTP decode endpoints.
type DecodeAPI struct{}

// NewDecodeAPI creates a DecodeAPI metrics collector.
func NewDecodeAPI() *DecodeAPI {
	return &DecodeAPI{}
}

// Observe records duration and status of one handled request.
func (m DecodeAPI) Observe(endpoint string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	decodeAPIRequestsTotal.WithLabelValues(endpoint, status).Inc()
	decodeAPIRequestDuration.WithLabelValues(endpoint, status).Observe(time.Since(started).Seconds())
}
