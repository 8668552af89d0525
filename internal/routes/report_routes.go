package routes

import (
	"presence-backend/internal/handler"
	"presence-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, d *Deps) {
	workerRepo := repository.NewWorkerRepository(d.DB)
	attendanceRepo := repository.NewAttendanceRepository(d.DB)
	hdl := handler.NewReportHandler(workerRepo, attendanceRepo, d.Log)

	auth, isAdmin := d.adminOnly()

	app.Get("/api/admin/reports/monthly", auth, isAdmin, hdl.GetMonthlyRecap)
}
