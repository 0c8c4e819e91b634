package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/fixitnow/fixitnow/internal/services"
)

// Response is the envelope every endpoint returns. Failures carry a
// message and no data; callers can assume all-or-nothing semantics per
// operation.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// respondWithData writes a successful envelope
func respondWithData(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Response{Success: true, Data: data})
}

// respondWithError writes a failure envelope with the given status
func respondWithError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}

// respondWithServiceError maps the service error taxonomy onto HTTP
// status codes and writes the failure envelope.
func respondWithServiceError(c *fiber.Ctx, err error) error {
	return respondWithError(c, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrIllegalState):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
