package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
)

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/checkhealth", h.CheckHealth)
}

// CheckHealth always answers 200 while the process is up; dependency state is
// reported in the body.
func (h *HealthHandler) CheckHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = "unavailable: " + err.Error()
			continue
		}
		deps[name] = "ok"
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status":       "Claim service is healthy",
		"dependencies": deps,
	})
}
