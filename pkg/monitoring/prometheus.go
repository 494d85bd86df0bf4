package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metric definitions.
var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Analytics metrics
	computeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_compute_duration_seconds",
			Help:    "Engine function compute latency distribution",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"function"},
	)

	computeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_compute_errors_total",
			Help: "Engine function failures, schema errors included",
		},
		[]string{"function"},
	)

	datasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_rows_loaded",
			Help: "Rows loaded per dataset table",
		},
		[]string{"table"},
	)
)

// PrometheusMiddleware records request counts and latency per route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).
			Observe(time.Since(start).Seconds())
	}
}

// ObserveCompute records one engine function invocation.
func ObserveCompute(function string, start time.Time, err error) {
	computeDuration.WithLabelValues(function).Observe(time.Since(start).Seconds())
	if err != nil {
		computeErrors.WithLabelValues(function).Inc()
	}
}

// SetDatasetRows publishes the loaded row count for a table.
func SetDatasetRows(table string, rows int) {
	datasetRows.WithLabelValues(table).Set(float64(rows))
}
