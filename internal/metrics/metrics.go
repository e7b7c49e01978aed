// Package metrics exposes Prometheus instrumentation for HTTP traffic
// and a few domain counters.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confession_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "confession_http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "path"},
	)

	EntriesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "confession_entries_created_total",
		Help: "Entries submitted",
	})

	Reveals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confession_reveals_total",
			Help: "Reveal outcomes by kind (matched, first_author)",
		},
		[]string{"outcome"},
	)

	MissionsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "confession_missions_completed_total",
		Help: "Daily mission instances completed",
	})
)

// Register installs all collectors on the default registry.
func Register() {
	prometheus.MustRegister(RequestCount, RequestDuration, EntriesCreated, Reveals, MissionsCompleted)
}

// Middleware records request counts and latencies per route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		RequestCount.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}
