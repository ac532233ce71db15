package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scan pipeline metrics
var (
	ScanRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_mapper_scan_runs_total",
			Help: "Total number of scan runs",
		},
	)

	ScanFilesProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_mapper_scan_files_processed_total",
			Help: "Total number of new media files processed and persisted",
		},
	)

	ScanNoMetadataTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_mapper_scan_no_metadata_total",
			Help: "Total number of files persisted without embedded metadata",
		},
	)

	ScanErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_mapper_scan_errors_total",
			Help: "Total number of per-file extraction errors",
		},
	)

	ScanLastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_mapper_scan_last_run_duration_seconds",
			Help: "Duration of the last scan run in seconds",
		},
	)

	ScanLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_mapper_scan_last_run_timestamp",
			Help: "Unix timestamp of the last scan run",
		},
	)

	ScanWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_mapper_scan_workers",
			Help: "Number of extraction workers used by the last scan",
		},
	)
)

// Database metrics
var (
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_mapper_db_queries_total",
			Help: "Total number of database operations",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_mapper_db_query_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBFlushSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "photo_mapper_db_flush_size_records",
			Help:    "Number of records written per buffer flush",
			Buckets: []float64{1, 10, 25, 50, 100, 250, 500},
		},
	)

	DBRowsInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_mapper_db_rows_inserted_total",
			Help: "Total number of rows inserted (duplicates excluded)",
		},
	)
)

// Cleanup metrics
var (
	CleanCheckedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_mapper_clean_records_checked_total",
			Help: "Total number of records checked against the filesystem",
		},
	)

	CleanDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_mapper_clean_records_deleted_total",
			Help: "Total number of orphaned records deleted",
		},
	)
)

// Map generation metrics
var (
	MapGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_mapper_map_generations_total",
			Help: "Total number of map generation attempts",
		},
		[]string{"status"}, // "success", "empty", "error"
	)

	MapRowsEmitted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_mapper_map_rows_emitted",
			Help: "Number of location rows emitted by the last map generation",
		},
	)
)

// Filesystem retry metrics
var (
	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_mapper_filesystem_stale_errors_total",
			Help: "Total number of NFS stale file handle errors",
		},
		[]string{"operation"},
	)

	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_mapper_filesystem_retry_attempts_total",
			Help: "Total number of filesystem operation retries",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_mapper_filesystem_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retry",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_mapper_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation"},
	)
)
