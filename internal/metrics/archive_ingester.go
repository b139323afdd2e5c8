package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/txlens/txlens-backend/internal/model"
)

var (
	archiveFetchBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txlens",
		Subsystem: "archive_ingester",
		Name:      "fetch_batch_total",
		Help:      "Count of attempts to fetch raw record batches.",
	}, []string{"network", "status"})

	archiveFetchBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txlens",
		Subsystem: "archive_ingester",
		Name:      "fetch_batch_duration_seconds",
		Help:      "Duration of fetching a raw record batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	archiveProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txlens",
		Subsystem: "archive_ingester",
		Name:      "process_batch_total",
		Help:      "Count of processed batches.",
	}, []string{"network", "status"})

	archiveProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txlens",
		Subsystem: "archive_ingester",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch of raw records.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	archiveProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txlens",
		Subsystem: "archive_ingester",
		Name:      "process_batch_size",
		Help:      "Number of raw records processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})

	archiveProcessRecordDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txlens",
		Subsystem: "archive_ingester",
		Name:      "process_record_duration_seconds",
		Help:      "Duration of decoding a single raw record.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
)

type ArchiveIngester struct {
	network model.Network
}

func NewArchiveIngester(network model.Network) *ArchiveIngester {
	if network == "" {
		network = "unknown"
	}
	return &ArchiveIngester{network: network}
}

func (m ArchiveIngester) ObserveFetchBatch(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	archiveFetchBatchTotal.WithLabelValues(string(m.network), status).Inc()
	archiveFetchBatchDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func (m ArchiveIngester) ObserveProcessBatch(err error, records int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	archiveProcessBatchTotal.WithLabelValues(string(m.network), status).Inc()
	archiveProcessBatchDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	archiveProcessBatchSize.WithLabelValues(string(m.network)).Observe(float64(records))
}

func (m ArchiveIngester) ObserveProcessRecord(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	archiveProcessRecordDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
}
