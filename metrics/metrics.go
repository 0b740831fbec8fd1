package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// CasesCreated counts successfully numbered cases
	CasesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lexium_cases_created_total",
			Help: "Total number of cases created",
		},
		[]string{"outsourced"},
	)

	// CaseWorkEntries counts recorded work entries
	CaseWorkEntries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lexium_case_work_entries_total",
			Help: "Total number of case work entries recorded",
		},
	)

	// ReportQueries counts report aggregations by report name
	ReportQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lexium_report_queries_total",
			Help: "Total number of report aggregations run",
		},
		[]string{"report"},
	)

	// RateLimited counts requests rejected by a rate limiter
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lexium_rate_limited_total",
			Help: "Total number of requests rejected by rate limiting",
		},
		[]string{"limiter"},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDurationHistogram,
			CasesCreated,
			CaseWorkEntries,
			ReportQueries,
			RateLimited,
		)
	})
}

// Middleware records request count and latency for every route
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			method := c.Request().Method
			path := c.Path()

			RequestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			RequestDurationHistogram.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler returns the HTTP handler exposing Prometheus metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
