package handler

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"presence-backend/internal/model"
	"presence-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type OfficeHandler struct {
	repo repository.OfficeRepository
	log  *slog.Logger
}

func NewOfficeHandler(repo repository.OfficeRepository, log *slog.Logger) *OfficeHandler {
	return &OfficeHandler{repo: repo, log: log}
}

type OfficeRequest struct {
	Name         string   `json:"name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters float64  `json:"radius_meters"`
}

func (r *OfficeRequest) validate() string {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return "name is required"
	case r.Latitude == nil || r.Longitude == nil:
		return "latitude and longitude are required"
	case *r.Latitude < -90 || *r.Latitude > 90 || *r.Longitude < -180 || *r.Longitude > 180:
		return "coordinates out of range"
	case r.RadiusMeters < 0:
		return "radius_meters must not be negative"
	}
	return ""
}

func (h *OfficeHandler) GetAll(c *fiber.Ctx) error {
	offices, err := h.repo.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "failed to load offices")
	}
	return c.JSON(fiber.Map{"data": offices})
}

func (h *OfficeHandler) Create(c *fiber.Ctx) error {
	var req OfficeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	office := model.Office{
		Name:         strings.TrimSpace(req.Name),
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		RadiusMeters: req.RadiusMeters,
	}
	if office.RadiusMeters == 0 {
		office.RadiusMeters = model.DefaultRadiusMeters
	}

	if err := h.repo.Create(c.UserContext(), &office); err != nil {
		return respondError(c, h.log, err, "failed to create office")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "office created", "data": office})
}

func (h *OfficeHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid office id"})
	}

	var req OfficeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	office, err := h.repo.GetByID(c.UserContext(), uint(id))
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "office not found"})
	}
	if err != nil {
		return respondError(c, h.log, err, "failed to load office")
	}

	office.Name = strings.TrimSpace(req.Name)
	office.Latitude = *req.Latitude
	office.Longitude = *req.Longitude
	if req.RadiusMeters > 0 {
		office.RadiusMeters = req.RadiusMeters
	}

	if err := h.repo.Update(c.UserContext(), office); err != nil {
		return respondError(c, h.log, err, "failed to update office")
	}
	h.log.Info("office updated", "office_id", office.ID, "radius_meters", office.RadiusMeters)
	return c.JSON(fiber.Map{"message": "office updated", "data": office})
}
