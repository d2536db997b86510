// Package metrics registers the service's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// PriceUpdates counts updateAssetPrice outcomes by status.
	PriceUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "foodsync_price_updates_total", Help: "Price update attempts"},
		[]string{"status"},
	)

	// AuditWriteFailures counts audit appends that failed after the
	// primary action already succeeded.
	AuditWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "foodsync_audit_write_failures_total", Help: "Audit appends dropped after a successful update"},
	)

	// FeedPolls counts external reference feed polls by provider and status.
	FeedPolls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "foodsync_feed_polls_total", Help: "External feed poll attempts"},
		[]string{"provider", "status"},
	)

	// SyncRecords counts indexer record upserts by entity kind and status.
	SyncRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "foodsync_sync_records_total", Help: "Indexer record upserts"},
		[]string{"kind", "status"},
	)

	// SyncDuration tracks per-kind sync latency.
	SyncDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "foodsync_sync_duration_seconds", Help: "Entity sync latency", Buckets: prometheus.DefBuckets},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(PriceUpdates, AuditWriteFailures, FeedPolls, SyncRecords, SyncDuration)
}
