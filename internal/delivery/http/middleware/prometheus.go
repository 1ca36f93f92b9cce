package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airport_locator_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "airport_locator_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

// Prometheus - метрики HTTP запросов; /metrics и /swagger не учитываются
func Prometheus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if strings.HasPrefix(path, "/metrics") || strings.HasPrefix(path, "/swagger") {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		// шаблон маршрута, чтобы не раздувать кардинальность
		routePath := c.Route().Path
		if routePath == "" || routePath == "/" {
			routePath = path
		}
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())
		if e, ok := err.(*fiber.Error); ok {
			// ответ ещё не записан ErrorHandler'ом
			status = strconv.Itoa(e.Code)
			if e.Code == fiber.StatusNotFound {
				routePath = "unmatched"
			}
		}

		httpRequestsTotal.WithLabelValues(method, routePath, status).Inc()
		httpRequestDuration.WithLabelValues(method, routePath).Observe(time.Since(start).Seconds())

		return err
	}
}

// MetricsHandler - эндпоинт для scrape через adaptor net/http -> fiber
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
