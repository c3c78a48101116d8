// Package metrics provides Prometheus instrumentation for the service.
// This is part of the platform layer and contains no business logic.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics records nothing.
type Metrics struct {
	// Parse outcomes: "ok" or the parse error kind
	ParseOutcome *prometheus.CounterVec

	// Classified number types of successfully parsed numbers
	NumberType *prometheus.CounterVec

	// Cache lookups by result: "hit", "miss", "error"
	CacheLookup *prometheus.CounterVec

	// Items per batch request
	BatchSize prometheus.Histogram

	// HTTP request latency by route
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ParseOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phonekit_parse_total",
			Help: "Parse attempts by outcome",
		}, []string{"outcome"}),

		NumberType: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phonekit_number_type_total",
			Help: "Parsed numbers by classified number type",
		}, []string{"type"}),

		CacheLookup: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phonekit_cache_lookups_total",
			Help: "Inspection cache lookups by result",
		}, []string{"result"}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "phonekit_batch_items",
			Help:    "Number of items per batch request",
			Buckets: []float64{1, 10, 50, 100, 250, 500, 1000},
		}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phonekit_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"method", "route", "status"}),
	}
}

// IncrementParse records a parse outcome.
func (m *Metrics) IncrementParse(outcome string) {
	if m != nil {
		m.ParseOutcome.WithLabelValues(outcome).Inc()
	}
}

// IncrementNumberType records the type of a parsed number.
func (m *Metrics) IncrementNumberType(numberType string) {
	if m != nil {
		m.NumberType.WithLabelValues(numberType).Inc()
	}
}

// IncrementCache records a cache lookup result.
func (m *Metrics) IncrementCache(result string) {
	if m != nil {
		m.CacheLookup.WithLabelValues(result).Inc()
	}
}

// ObserveBatchSize records the size of a batch request.
func (m *Metrics) ObserveBatchSize(items int) {
	if m != nil {
		m.BatchSize.Observe(float64(items))
	}
}

// HTTPMiddleware records request latency. Unmatched routes are reported as "unmatched".
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
