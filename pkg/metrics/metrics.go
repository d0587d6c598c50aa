package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry metrics
	WorkersActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "granary_workers_active",
			Help: "Number of workers with a heartbeat inside the liveness window",
		},
	)

	HeartbeatsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "granary_heartbeats_total",
			Help: "Total number of worker heartbeats received",
		},
	)

	WorkersReaped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "granary_workers_reaped_total",
			Help: "Total number of workers dropped after missing heartbeats",
		},
	)

	// Placement metrics
	PlacementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "granary_placements_total",
			Help: "Total placement decisions by result",
		},
		[]string{"result"},
	)

	// Ingest metrics
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "granary_uploads_total",
			Help: "Total file uploads by status",
		},
		[]string{"status"},
	)

	DownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "granary_downloads_total",
			Help: "Total file downloads by status",
		},
		[]string{"status"},
	)

	UploadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "granary_upload_duration_seconds",
			Help:    "Time spent chunking and publishing one upload",
			Buckets: prometheus.DefBuckets,
		},
	)

	DownloadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "granary_download_duration_seconds",
			Help:    "Time spent reassembling one download",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Chunk pipeline metrics
	ChunksPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "granary_chunks_published_total",
			Help: "Total chunk messages published to the broker",
		},
	)

	ChunksConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "granary_chunks_consumed_total",
			Help: "Total chunk messages consumed by outcome",
		},
		[]string{"outcome"},
	)

	ChunksStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "granary_chunks_stored_total",
			Help: "Total chunks written to local disk",
		},
	)

	ChunksForwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "granary_chunks_forwarded_total",
			Help: "Total chunks forwarded to the assigned peer worker",
		},
	)

	ChunksRetrieved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "granary_chunks_retrieved_total",
			Help: "Total chunk retrieval requests served by found/missing",
		},
		[]string{"found"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(WorkersActive)
	prometheus.MustRegister(HeartbeatsTotal)
	prometheus.MustRegister(WorkersReaped)
	prometheus.MustRegister(PlacementsTotal)
	prometheus.MustRegister(UploadsTotal)
	prometheus.MustRegister(DownloadsTotal)
	prometheus.MustRegister(UploadDuration)
	prometheus.MustRegister(DownloadDuration)
	prometheus.MustRegister(ChunksPublished)
	prometheus.MustRegister(ChunksConsumed)
	prometheus.MustRegister(ChunksStored)
	prometheus.MustRegister(ChunksForwarded)
	prometheus.MustRegister(ChunksRetrieved)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
