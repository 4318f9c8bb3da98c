package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	name string
	ping Pinger
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	deps        []dependency
}

// NewHealthHandler returns a handler whose readiness covers the user store
// (postgres) and the user cache (redis).
func NewHealthHandler(serviceName, version string, postgres, redis Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		deps: []dependency{
			{name: "postgres", ping: postgres},
			{name: "redis", ping: redis},
		},
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready pings every dependency and answers 503 if any is unreachable.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	statuses, ready := h.check(ctx)
	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "one or more dependencies unavailable",
				"details": statuses,
			},
		})
	}
	return c.JSON(fiber.Map{
		"status":       "ready",
		"service":      h.serviceName,
		"dependencies": statuses,
	})
}

func (h *HealthHandler) check(ctx context.Context) (map[string]string, bool) {
	statuses := make(map[string]string, len(h.deps))
	ready := true
	for _, dep := range h.deps {
		if dep.ping == nil {
			statuses[dep.name] = "not configured"
			ready = false
			continue
		}
		if err := dep.ping.Ping(ctx); err != nil {
			statuses[dep.name] = err.Error()
			ready = false
			continue
		}
		statuses[dep.name] = "ok"
	}
	return statuses, ready
}
