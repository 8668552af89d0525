package handler

import (
	"log/slog"

	"presence-backend/internal/presence"
	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type PresenceHandler struct {
	uc  *usecase.PresenceUsecase
	log *slog.Logger
}

func NewPresenceHandler(uc *usecase.PresenceUsecase, log *slog.Logger) *PresenceHandler {
	return &PresenceHandler{uc: uc, log: log}
}

func (h *PresenceHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.UserContext(), c.Params("worker_id"))
	if err != nil {
		return respondError(c, h.log, err, "failed to load presence")
	}
	return c.JSON(fiber.Map{"data": p})
}

func (h *PresenceHandler) Roster(c *fiber.Ctx) error {
	roster, err := h.uc.Roster(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "failed to load presence roster")
	}

	online := 0
	for _, p := range roster {
		if p.Status == presence.StatusOnline {
			online++
		}
	}

	return c.JSON(fiber.Map{
		"total":  len(roster),
		"online": online,
		"data":   roster,
	})
}

// SyncStatus runs the stale-location sweep on demand.
func (h *PresenceHandler) SyncStatus(c *fiber.Ctx) error {
	n, err := h.uc.SweepStale(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "failed to update worker status")
	}
	return c.JSON(fiber.Map{"message": "worker status updated", "deactivated": n})
}
