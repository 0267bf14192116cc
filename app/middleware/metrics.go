package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Total HTTP requests partitioned by method, route, and status code
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// Request duration in seconds partitioned by method, route, and status code
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// In-flight HTTP requests
	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	validationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketing_validation_failures_total",
			Help: "Requests rejected by a validation ruleset",
		},
		[]string{"ruleset"},
	)

	analyticsOverviewDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketing_analytics_overview_seconds",
			Help:    "Time spent building analytics overviews",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"time_range", "outcome"},
	)
)

// Metrics returns a Fiber v3 middleware that records basic Prometheus metrics.
// Labels are kept low-cardinality by using the matched route path when available.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}

		labels := prometheus.Labels{
			"method": c.Method(),
			"route":  route,
			"status": strconv.Itoa(c.Response().StatusCode()),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}

// ObserveValidationFailure counts a request rejected by ruleset
func ObserveValidationFailure(ruleset string) {
	validationFailures.WithLabelValues(ruleset).Inc()
}

// ObserveAnalyticsOverview records how long an overview took to build
func ObserveAnalyticsOverview(timeRange string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	analyticsOverviewDuration.WithLabelValues(timeRange, outcome).Observe(time.Since(started).Seconds())
}
