package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var chunksEmbeddedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "rag_chunks_embedded_total",
	Help: "Total number of chunks embedded and persisted",
})

var emptyContextTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rag_empty_context_total",
	Help: "Retrievals that degraded to an empty context, labelled by reason",
}, []string{"reason"})

var activeEmbedWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "rag_active_embed_worker_count",
	Help: "Number of active embedding workers within ingestion runs",
})

var ingestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "rag_ingest_duration_seconds",
	Help:    "Total time spent ingesting one document.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "rag_dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureIngestMetrics(status string, timeElapsed time.Duration) {
	ingestDuration.WithLabelValues(status).Observe(timeElapsed.Seconds())
}

func AddChunksEmbedded(n int) {
	chunksEmbeddedTotal.Add(float64(n))
}

func IncrementEmptyContext(reason string) {
	emptyContextTotal.WithLabelValues(reason).Inc()
}

func IncrementActiveEmbedWorkerCount() {
	activeEmbedWorkerCount.Inc()
}

func DecrementActiveEmbedWorkerCount() {
	activeEmbedWorkerCount.Dec()
}
