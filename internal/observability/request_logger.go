package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UnmatchedRoute is the metrics key for requests no route handled.
const UnmatchedRoute = "<unmatched>"

// RouteKey returns the registered route template for the request, so metric
// keys stay bounded regardless of the paths clients send.
func RouteKey(c *fiber.Ctx) string {
	route := c.Route()
	if route == nil || route.Path == "" {
		return UnmatchedRoute
	}
	if route.Path == "/" && c.Path() != "/" {
		return UnmatchedRoute
	}
	return route.Path
}

// RequestLogger logs every request and feeds the request counters.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		metrics.RecordRequest(RouteKey(c), c.Method(), status, elapsed)
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
		)
		return err
	}
}
