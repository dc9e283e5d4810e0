package routes

import (
	"github.com/akinankarali/upwork-job-api/internal/delivery/http/handler"
	"github.com/akinankarali/upwork-job-api/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	search *handler.SearchHandler
	health *handler.HealthHandler
	ws     *ws.Handler
}

func NewRegistry(search *handler.SearchHandler, health *handler.HealthHandler, wsHandler *ws.Handler) *Registry {
	return &Registry{search: search, health: health, ws: wsHandler}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
	if r.search != nil {
		r.search.RegisterRoutes(app)
	}
	if r.ws != nil {
		app.Get("/ws/searches", r.ws.HandleSearchesWS)
	}
}
