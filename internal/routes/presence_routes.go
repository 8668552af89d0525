package routes

import (
	"presence-backend/internal/handler"
	"presence-backend/internal/repository"
	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func newPresenceUsecase(d *Deps) *usecase.PresenceUsecase {
	return usecase.NewPresenceUsecase(
		repository.NewWorkerRepository(d.DB),
		d.Offices,
		repository.NewLocationRepository(d.DB),
		repository.NewAttendanceRepository(d.DB),
		d.Metrics,
		d.Log,
	)
}

func SetupPresenceRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewPresenceHandler(newPresenceUsecase(d), d.Log)

	app.Get("/api/presence", hdl.Roster)
	app.Get("/api/presence/:worker_id", hdl.Get)
	app.Get("/api/live-employee-locations", hdl.Roster)

	auth, isAdmin := d.adminOnly()
	app.Post("/api/admin/update-employee-status", auth, isAdmin, hdl.SyncStatus)
}
