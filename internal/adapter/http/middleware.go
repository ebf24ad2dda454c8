package http

import (
	"strconv"
	"time"

	"cv-generator/pkg/logger"
	"cv-generator/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// Observability tags each request with an id, logs it and records HTTP
// metrics. Handler errors are resolved here through the app ErrorHandler so
// the logged status matches what the client receives.
func Observability() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		metrics.ActiveRequests.Inc()
		defer metrics.ActiveRequests.Dec()

		rid := c.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDHeader, rid)

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		// unmatched requests still carry the path of this middleware
		if route == "" || (route == "/" && c.Path() != "/") {
			route = "unmatched"
		}
		elapsed := time.Since(start)

		code := strconv.Itoa(status)
		metrics.HTTPRequestDuration.WithLabelValues(c.Method(), route, code).Observe(elapsed.Seconds())
		metrics.HTTPRequestTotal.WithLabelValues(c.Method(), route, code).Inc()

		logger.LogHTTPRequest(c.Method(), c.Path(), status, elapsed,
			zap.String("request_id", rid),
			zap.String("route", route),
			zap.String("ip", c.IP()),
			zap.Int("req_bytes", len(c.Body())),
		)
		return nil
	}
}
