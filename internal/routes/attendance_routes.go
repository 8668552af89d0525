package routes

import (
	"presence-backend/internal/handler"
	"presence-backend/internal/repository"
	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(app *fiber.App, d *Deps) {
	workerRepo := repository.NewWorkerRepository(d.DB)
	attendanceRepo := repository.NewAttendanceRepository(d.DB)
	uc := usecase.NewAttendanceUsecase(workerRepo, d.Offices, attendanceRepo, d.Images, d.Metrics, d.Log)
	hdl := handler.NewAttendanceHandler(uc, d.Log)

	auth, isAdmin := d.adminOnly()

	app.Post("/api/attendance", hdl.Submit)
	app.Get("/api/workers/:worker_id/attendance-logs", hdl.WorkerLogs)
	app.Get("/api/admin/attendance-logs", auth, isAdmin, hdl.AdminLogs)
}
