package handler

import (
	"log/slog"
	"strconv"

	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	uc  *usecase.AttendanceUsecase
	log *slog.Logger
}

func NewAttendanceHandler(uc *usecase.AttendanceUsecase, log *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{uc: uc, log: log}
}

type SubmitAttendanceRequest struct {
	WorkerID   string    `json:"worker_id"`
	EmployeeID string    `json:"employee_id"`
	Descriptor []float64 `json:"descriptor"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	Action     string    `json:"action"`
	ImageRef   string    `json:"image_ref"`
	FaceImage  string    `json:"face_image"`
}

func (r *SubmitAttendanceRequest) workerID() string {
	if r.WorkerID != "" {
		return r.WorkerID
	}
	return r.EmployeeID
}

func (h *AttendanceHandler) Submit(c *fiber.Ctx) error {
	var req SubmitAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	verdict, err := h.uc.Submit(c.UserContext(), usecase.SubmitAttendanceInput{
		WorkerID:    req.workerID(),
		Descriptor:  req.Descriptor,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Action:      req.Action,
		ImageRef:    req.ImageRef,
		ImageBase64: req.FaceImage,
	})
	if err != nil {
		return respondError(c, h.log, err, "failed to record attendance")
	}

	if verdict.Accepted() {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "attendance recorded",
			"data":    verdict,
		})
	}
	return c.Status(verdictStatusCode(verdict)).JSON(fiber.Map{
		"error": verdict.Reason,
		"data":  verdict,
	})
}

func verdictStatusCode(v *usecase.Verdict) int {
	switch v.Status {
	case usecase.StatusRejectedInput:
		if v.Reason == usecase.ReasonWorkerNotFound || v.Reason == usecase.ReasonOfficeNotFound {
			return fiber.StatusNotFound
		}
		return fiber.StatusBadRequest
	case usecase.StatusRejectedIdentity, usecase.StatusRejectedGeofence:
		return fiber.StatusForbidden
	default:
		return fiber.StatusOK
	}
}

// WorkerLogs returns the attendance history of one worker, newest first.
func (h *AttendanceHandler) WorkerLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	worker, events, err := h.uc.History(c.UserContext(), c.Params("worker_id"), limit)
	if err != nil {
		return respondError(c, h.log, err, "failed to load attendance history")
	}

	return c.JSON(fiber.Map{
		"worker": worker,
		"data":   events,
	})
}

// AdminLogs returns every event for ?date=today|yesterday|last7days.
func (h *AttendanceHandler) AdminLogs(c *fiber.Ctx) error {
	filter := c.Query("date", "today")

	events, err := h.uc.LogRange(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, err, "failed to load attendance logs")
	}

	return c.JSON(fiber.Map{
		"date":  filter,
		"count": len(events),
		"data":  events,
	})
}
