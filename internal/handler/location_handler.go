package handler

import (
	"log/slog"
	"time"

	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type LocationHandler struct {
	uc  *usecase.LocationUsecase
	log *slog.Logger
}

func NewLocationHandler(uc *usecase.LocationUsecase, log *slog.Logger) *LocationHandler {
	return &LocationHandler{uc: uc, log: log}
}

type LocationUpdateRequest struct {
	WorkerID           string   `json:"worker_id"`
	EmployeeID         string   `json:"employee_id"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	DistanceFromOffice float64  `json:"distance_from_office"`
	WithinGeofence     bool     `json:"is_in_office_radius"`
	Sharing            *bool    `json:"is_sharing"`
}

func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var req LocationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	workerID := req.WorkerID
	if workerID == "" {
		workerID = req.EmployeeID
	}
	// Clients that omit the flag are sharing.
	sharing := req.Sharing == nil || *req.Sharing

	res, err := h.uc.IngestPing(c.UserContext(), usecase.PingInput{
		WorkerID:           workerID,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		DistanceFromOffice: req.DistanceFromOffice,
		WithinGeofence:     req.WithinGeofence,
		SharingEnabled:     sharing,
	})
	if err != nil {
		return respondError(c, h.log, err, "failed to update location")
	}

	return c.JSON(res)
}

// History returns the pings of one worker between ?from and ?to (RFC 3339),
// defaulting to the last 24 hours.
func (h *LocationHandler) History(c *fiber.Ctx) error {
	end := time.Now()
	start := end.Add(-24 * time.Hour)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be RFC 3339"})
		}
		start = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must be RFC 3339"})
		}
		end = t
	}

	pings, err := h.uc.History(c.UserContext(), c.Params("worker_id"), start, end)
	if err != nil {
		return respondError(c, h.log, err, "failed to load location history")
	}
	return c.JSON(fiber.Map{"data": pings})
}
