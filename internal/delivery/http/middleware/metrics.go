package middleware

import (
	"strconv"
	"time"

	"jobtrack/internal/metrics"

	"github.com/gofiber/fiber/v3"
)

// MetricsMiddleware labels requests by route template so IDs do not explode
// the series count. Unmatched paths share one label.
type MetricsMiddleware struct {
	m *metrics.Metrics
}

func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{m: m}
}

func (mw *MetricsMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if mw == nil || mw.m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		method := c.Method()
		mw.m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().StatusCode())).Inc()
		mw.m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
