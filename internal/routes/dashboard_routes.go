package routes

import (
	"presence-backend/internal/handler"
	"presence-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, d *Deps) {
	repo := repository.NewDashboardRepository(d.DB)
	hdl := handler.NewDashboardHandler(repo, newPresenceUsecase(d), d.Log)

	auth, isAdmin := d.adminOnly()

	app.Get("/api/admin/dashboard", auth, isAdmin, hdl.GetStats)
}
