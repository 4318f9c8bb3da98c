package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cake-service/internal/api/http/handlers"
	"github.com/spec-kit/cake-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Cakes          *handlers.CakesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Show)
	}

	cakes := app.Group("/cakes", cfg.AuthMiddleware.Handle, auth.RequireUser())
	cakes.Post("", cfg.Cakes.Publish)
}
