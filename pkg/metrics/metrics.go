package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PDF conversion runs a headless browser, so buckets reach well past one second.
	ConversionBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: ConversionBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
	)

	// CV pipeline metrics
	CVGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_generations_total",
			Help: "CV generation requests by outcome",
		},
		[]string{"outcome"},
	)

	CVPersistence = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_persistence_total",
			Help: "Best-effort profile persistence attempts by outcome",
		},
		[]string{"outcome"},
	)

	PDFConversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pdf_conversion_duration_seconds",
			Help:    "HTML to PDF conversion duration in seconds",
			Buckets: ConversionBuckets,
		},
		[]string{"engine", "status"},
	)
)

// MeasureDuration returns the seconds elapsed since start.
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
