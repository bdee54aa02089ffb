package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartcalda-api/internal/application/dto"
	"github.com/jhoicas/smartcalda-api/internal/domain"
)

// errorMapping estado HTTP y código para cada error de dominio, en orden de prioridad.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrMissingRequiredField, fiber.StatusBadRequest, "MISSING_REQUIRED_FIELD"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInsufficientBalance, fiber.StatusConflict, "INSUFFICIENT_BALANCE"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrFefoConfirmationRequired, fiber.StatusConflict, "FEFO_CONFIRMATION_REQUIRED"},
	{domain.ErrCapacityExceeded, fiber.StatusUnprocessableEntity, "CAPACITY_EXCEEDED"},
}

// writeError traduce err a una respuesta JSON. Los errores no mapeados son 500.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
