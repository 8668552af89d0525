package handler

import (
	"log/slog"

	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type WorkerHandler struct {
	uc  *usecase.WorkerUsecase
	log *slog.Logger
}

func NewWorkerHandler(uc *usecase.WorkerUsecase, log *slog.Logger) *WorkerHandler {
	return &WorkerHandler{uc: uc, log: log}
}

type RegisterWorkerRequest struct {
	WorkerID   string    `json:"worker_id"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	OfficeID   uint      `json:"office_id"`
	Descriptor []float64 `json:"descriptor"`
	FaceImage  string    `json:"face_image"`
}

func (h *WorkerHandler) Register(c *fiber.Ctx) error {
	var req RegisterWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	workerID := req.WorkerID
	if workerID == "" {
		workerID = req.EmployeeID
	}

	worker, created, err := h.uc.Register(c.UserContext(), usecase.RegisterWorkerInput{
		WorkerID:        workerID,
		Name:            req.Name,
		OfficeID:        req.OfficeID,
		Descriptor:      req.Descriptor,
		FaceImageBase64: req.FaceImage,
	})
	if err != nil {
		return respondError(c, h.log, err, "failed to register worker")
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "worker registered", "data": worker})
	}
	return c.JSON(fiber.Map{"message": "worker re-registered", "data": worker})
}

func (h *WorkerHandler) GetAll(c *fiber.Ctx) error {
	workers, err := h.uc.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return respondError(c, h.log, err, "failed to load workers")
	}
	return c.JSON(fiber.Map{"data": workers})
}

func (h *WorkerHandler) GetByID(c *fiber.Ctx) error {
	worker, err := h.uc.Get(c.UserContext(), c.Params("worker_id"))
	if err != nil {
		return respondError(c, h.log, err, "failed to load worker")
	}
	return c.JSON(fiber.Map{"data": worker})
}

func (h *WorkerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("worker_id")); err != nil {
		return respondError(c, h.log, err, "failed to delete worker")
	}
	return c.JSON(fiber.Map{"message": "worker deleted"})
}
