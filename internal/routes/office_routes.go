package routes

import (
	"presence-backend/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func SetupOfficeRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewOfficeHandler(d.Offices, d.Log)

	auth, isAdmin := d.adminOnly()

	api := app.Group("/api/offices")
	api.Get("/", hdl.GetAll)
	api.Post("/", hdl.Create)

	app.Put("/api/admin/offices/:id", auth, isAdmin, hdl.Update)
}
