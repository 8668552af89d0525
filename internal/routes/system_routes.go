package routes

import (
	"presence-backend/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupSystemRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewSystemHandler(d.DB, d.Version)

	app.Get("/api/health", hdl.Health)
	app.Get("/api/info", hdl.Info)

	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics.Registry(), promhttp.HandlerOpts{})))
	}
}
