package routes

import (
	"presence-backend/internal/handler"
	"presence-backend/internal/repository"
	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupWorkerRoutes(app *fiber.App, d *Deps) {
	workerRepo := repository.NewWorkerRepository(d.DB)
	uc := usecase.NewWorkerUsecase(workerRepo, d.Offices, d.Images, d.Log)
	hdl := handler.NewWorkerHandler(uc, d.Log)

	auth, isAdmin := d.adminOnly()

	api := app.Group("/api/workers")
	api.Post("/", hdl.Register)
	api.Get("/", hdl.GetAll)
	api.Get("/:worker_id", hdl.GetByID)

	app.Delete("/api/admin/workers/:worker_id", auth, isAdmin, hdl.Delete)
}
