package handler

import (
	"log/slog"
	"strconv"
	"time"

	"presence-backend/internal/model"
	"presence-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	workerRepo     repository.WorkerRepository
	attendanceRepo repository.AttendanceRepository
	log            *slog.Logger
	now            func() time.Time
}

func NewReportHandler(workerRepo repository.WorkerRepository, attendanceRepo repository.AttendanceRepository, log *slog.Logger) *ReportHandler {
	return &ReportHandler{
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		log:            log,
		now:            time.Now,
	}
}

// Daily codes in the monthly recap.
const (
	recapPresent = "H" // at least one login that day
	recapAbsent  = "-" // past day without a login
	recapPending = " " // today or later
)

// GetMonthlyRecap returns, per worker, a code for every day of ?month=&year=
// plus login/logout totals. Days are UTC calendar days.
func (h *ReportHandler) GetMonthlyRecap(c *fiber.Ctx) error {
	month, errMonth := strconv.Atoi(c.Query("month"))
	year, errYear := strconv.Atoi(c.Query("year"))
	if errMonth != nil || errYear != nil || month < 1 || month > 12 || year < 1970 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month (1-12) and year are required"})
	}

	// 1. Workers and the month's events
	workers, err := h.workerRepo.GetAll(c.UserContext(), "")
	if err != nil {
		return respondError(c, h.log, err, "failed to load workers")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	events, err := h.attendanceRepo.GetByRange(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, h.log, err, "failed to load attendance")
	}

	// Map[WorkerID][day] = action counts
	type dayCount struct{ logins, logouts int }
	byWorker := make(map[uint]map[int]*dayCount)
	for _, e := range events {
		days, ok := byWorker[e.WorkerID]
		if !ok {
			days = make(map[int]*dayCount)
			byWorker[e.WorkerID] = days
		}
		day := e.Timestamp.UTC().Day()
		if days[day] == nil {
			days[day] = &dayCount{}
		}
		if e.Action == model.ActionLogin {
			days[day].logins++
		} else {
			days[day].logouts++
		}
	}

	// 2. Build rows
	daysInMonth := end.AddDate(0, 0, -1).Day()
	today := h.now().UTC().Truncate(24 * time.Hour)

	reportData := make([]fiber.Map, 0, len(workers))
	for _, w := range workers {
		daily := make(map[string]string, daysInMonth)
		present, absent, logins, logouts := 0, 0, 0, 0

		for d := 1; d <= daysInMonth; d++ {
			date := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
			counts := byWorker[w.ID][d]
			if counts != nil {
				logins += counts.logins
				logouts += counts.logouts
			}

			code := recapPending
			switch {
			case counts != nil && counts.logins > 0:
				code = recapPresent
				present++
			case date.Before(today):
				code = recapAbsent
				absent++
			}
			daily[date.Format("02")] = code
		}

		officeName := ""
		if w.Office != nil {
			officeName = w.Office.Name
		}
		reportData = append(reportData, fiber.Map{
			"worker_id": w.ExternalID,
			"name":      w.Name,
			"office":    officeName,
			"daily":     daily,
			"stats": fiber.Map{
				"days_present": present,
				"days_absent":  absent,
				"logins":       logins,
				"logouts":      logouts,
			},
		})
	}

	return c.JSON(fiber.Map{
		"period":     start.Format("January 2006"),
		"days_count": daysInMonth,
		"data":       reportData,
	})
}
