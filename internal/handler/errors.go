package handler

import (
	"errors"
	"log/slog"

	"presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// respondError maps usecase errors to a status code. Anything unexpected is
// logged and reported as a 500 with the generic message.
func respondError(c *fiber.Ctx, log *slog.Logger, err error, message string) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	log.Error(message, "error", err, "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}
