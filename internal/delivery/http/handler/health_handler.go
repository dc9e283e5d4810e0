package handler

import (
	"context"
	"time"

	"github.com/akinankarali/upwork-job-api/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the browser mode and the state of the optional
// backends. A nil backend is reported as disabled.
type HealthHandler struct {
	browserMode string
	cache       Pinger
	database    Pinger
}

func NewHealthHandler(browserMode string, cache Pinger, database Pinger) *HealthHandler {
	return &HealthHandler{browserMode: browserMode, cache: cache, database: database}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"browser_mode": h.browserMode,
		"cache":        backendState(ctx, h.cache),
		"database":     backendState(ctx, h.database),
	})
}

func backendState(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
