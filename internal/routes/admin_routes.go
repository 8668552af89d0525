package routes

import (
	"presence-backend/internal/handler"
	"presence-backend/internal/repository"
	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, d *Deps) {
	adminRepo := repository.NewAdminRepository(d.DB)
	alertRepo := repository.NewAlertRepository(d.DB)
	uc := usecase.NewAdminUsecase(adminRepo, d.Config.JWTSecret, d.Config.JWTTTL)
	hdl := handler.NewAdminHandler(uc, alertRepo, d.Log)

	auth, isAdmin := d.adminOnly()

	app.Post("/api/admin/login", hdl.Login)
	app.Get("/api/admin/location-alerts", auth, isAdmin, hdl.LocationAlerts)
}
