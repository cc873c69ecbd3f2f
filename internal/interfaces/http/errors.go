package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/studio-billing/internal/application/dto"
	"github.com/jhoicas/studio-billing/internal/domain"
)

// writeError traduce un error de dominio a su respuesta HTTP.
//
//	validación        → 422 (con la lista de campos)
//	no encontrado     → 404
//	estado/conflicto  → 409
//	entrada inválida  → 400
//	gateway           → 503
func writeError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: domain.ErrValidation.Error(), Fields: verr.Issues,
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrGateway), errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "UNAVAILABLE", Message: "almacén de facturas no disponible, intente más tarde",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// parseBody decodifica y valida la forma del cuerpo. Devuelve handled=true si ya respondió.
func parseBody(c *fiber.Ctx, out any) (handled bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return true, badBody(c)
	}
	if err := dto.Validate(out); err != nil {
		return true, writeError(c, err)
	}
	return false, nil
}
