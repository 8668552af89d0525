package routes

import (
	"presence-backend/internal/handler"
	"presence-backend/internal/repository"
	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupLocationRoutes(app *fiber.App, d *Deps) {
	workerRepo := repository.NewWorkerRepository(d.DB)
	locationRepo := repository.NewLocationRepository(d.DB)
	uc := usecase.NewLocationUsecase(workerRepo, d.Offices, locationRepo, d.Metrics, d.Log)
	hdl := handler.NewLocationHandler(uc, d.Log)

	auth, isAdmin := d.adminOnly()

	app.Post("/api/location-update", hdl.Update)
	app.Get("/api/admin/workers/:worker_id/locations", auth, isAdmin, hdl.History)
}
