package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OrderStatusUpdates counts status transition attempts by target status
	// and outcome (applied or rejected).
	OrderStatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sellerhub_order_status_updates_total",
		Help: "Order status transition attempts by target status and outcome.",
	}, []string{"status", "outcome"})

	// WithdrawalRequests counts withdrawal submissions by validation outcome.
	WithdrawalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sellerhub_withdrawal_requests_total",
		Help: "Withdrawal request submissions by outcome.",
	}, []string{"outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sellerhub_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// Handler exposes the Prometheus scrape endpoint as an echo handler.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// Middleware records request latency per route.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			requestDuration.WithLabelValues(
				c.Request().Method, c.Path(), statusLabel(c.Response().Status),
			).Observe(v)
		}))
		defer timer.ObserveDuration()
		return next(c)
	}
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
