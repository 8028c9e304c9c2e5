// Package metrics exposes Prometheus instrumentation for ingestion and the
// HTTP API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	IngestRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finsight_ingest_runs_total",
		Help: "Number of ingestion runs started.",
	})

	IngestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finsight_ingest_errors_total",
		Help: "Number of ingestion runs that failed.",
	})

	BarsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finsight_bars_stored_total",
		Help: "Number of daily bars written to the store.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finsight_http_requests_total",
		Help: "HTTP requests served, by path and status code.",
	}, []string{"path", "code"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "finsight_analysis_duration_seconds",
		Help:    "Time spent computing a full analysis for one symbol.",
		Buckets: prometheus.DefBuckets,
	})
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
