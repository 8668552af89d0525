package handler

import (
	"log/slog"
	"time"

	"presence-backend/internal/repository"
	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	repo     repository.DashboardRepository
	presence *usecase.PresenceUsecase
	log      *slog.Logger
}

func NewDashboardHandler(repo repository.DashboardRepository, presence *usecase.PresenceUsecase, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{repo: repo, presence: presence, log: log}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).UTC()

	stats, err := h.repo.GetDashboardStats(c.UserContext(), dayStart)
	if err != nil {
		return respondError(c, h.log, err, "failed to load dashboard")
	}

	online, err := h.presence.CountOnline(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "failed to load dashboard")
	}
	stats["online_now"] = online

	return c.JSON(fiber.Map{
		"message": "dashboard statistics",
		"data":    stats,
	})
}
