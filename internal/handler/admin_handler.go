package handler

import (
	"log/slog"
	"strconv"

	"presence-backend/internal/repository"
	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	uc     *usecase.AdminUsecase
	alerts repository.AlertRepository
	log    *slog.Logger
}

func NewAdminHandler(uc *usecase.AdminUsecase, alerts repository.AlertRepository, log *slog.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, alerts: alerts, log: log}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	token, admin, err := h.uc.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, h.log, err, "login failed")
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"token":   token,
		"data":    admin,
	})
}

// LocationAlerts lists the most recent geofence alerts.
func (h *AdminHandler) LocationAlerts(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid limit"})
	}

	alerts, err := h.alerts.GetRecent(c.UserContext(), limit)
	if err != nil {
		return respondError(c, h.log, err, "failed to load location alerts")
	}
	return c.JSON(fiber.Map{"data": alerts})
}
