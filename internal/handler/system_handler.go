package handler

import (
	"presence-backend/internal/biometric"
	"presence-backend/internal/model"
	"presence-backend/internal/presence"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SystemHandler struct {
	db      *gorm.DB
	version string
}

func NewSystemHandler(db *gorm.DB, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// Health reports whether the database answers a ping.
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok", "database": "ok"})
}

// Info lists the thresholds the server decides with.
func (h *SystemHandler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version":                    h.version,
		"descriptor_length":          biometric.VectorLength,
		"match_threshold":            biometric.Threshold,
		"location_freshness_seconds": int(presence.LocationFreshness.Seconds()),
		"attendance_stale_seconds":   int(presence.AttendanceStaleAfter.Seconds()),
		"actions":                    []model.AttendanceAction{model.ActionLogin, model.ActionLogout},
	})
}
