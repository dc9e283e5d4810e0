package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/akinankarali/upwork-job-api/internal/config"
	"github.com/akinankarali/upwork-job-api/internal/delivery/http/handler"
	"github.com/akinankarali/upwork-job-api/internal/delivery/http/middleware"
	"github.com/akinankarali/upwork-job-api/internal/delivery/http/routes"
	"github.com/akinankarali/upwork-job-api/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns the
// HTTP app with a cleanup that stops both.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	var cachePing, dbPing handler.Pinger
	if c.Cache.Enabled() {
		cachePing = c.Cache
	}
	if c.DB != nil {
		dbPing = c.DB
	}

	routes.NewRegistry(
		handler.NewSearchHandler(c.Search),
		handler.NewHealthHandler(c.Config.Browser.Mode, cachePing, dbPing),
		ws.NewHandler(c.Hub, c.Logger),
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
