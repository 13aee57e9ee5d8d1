package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors exported on /metrics
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ReportDuration    *prometheus.HistogramVec
	ItemsAnalysed     *prometheus.CounterVec
	UnmatchedProducts prometheus.Gauge
	CacheRequests     *prometheus.CounterVec
	PriceUpdates      *prometheus.CounterVec
}

// New registers every collector on reg under the given prefix
func New(reg prometheus.Registerer, prefix string) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		ReportDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_report_duration_seconds",
				Help:    "Duration of analytics report computations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report"},
		),
		ItemsAnalysed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_items_analysed_total",
				Help: "Total number of inventory items analysed",
			},
			[]string{"report"},
		),
		UnmatchedProducts: f.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_unmatched_products",
				Help: "Sold product names with no inventory record in the last report",
			},
		),
		CacheRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_cache_requests_total",
				Help: "Report cache lookups by result",
			},
			[]string{"report", "result"},
		),
		PriceUpdates: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_price_updates_total",
				Help: "Inventory price updates by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// TrackReport returns a function that records the duration of a report run
func (m *Metrics) TrackReport(report string) func() {
	start := time.Now()
	return func() {
		m.ReportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
	}
}

// RecordCache counts a cache hit or miss
func (m *Metrics) RecordCache(report string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(report, result).Inc()
}

// Middleware records request count and latency per route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
	}
}
