package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/studio-billing/internal/application/dto"
)

// RequestRecorder métricas por operación. Lo implementa *metrics.BillingMetrics.
type RequestRecorder interface {
	ObserveRequest(operation string, status int, elapsed time.Duration)
}

type nopRequestRecorder struct{}

func (nopRequestRecorder) ObserveRequest(string, int, time.Duration) {}

const localOp = "op"

// Instrument registra cada petición de la operación op en el log y en las métricas.
// Los errores devueltos por la cadena se resuelven aquí con el ErrorHandler de la app
// para que el estado registrado sea el enviado.
func Instrument(op Op, log zerolog.Logger, rec RequestRecorder) fiber.Handler {
	if rec == nil {
		rec = nopRequestRecorder{}
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(localOp, op)

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		rec.ObserveRequest(string(op), status, elapsed)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("op", string(op)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("petición")
		return nil
	}
}

// ErrorHandler respuesta JSON para errores que no pasan por writeError (rutas
// desconocidas, cuerpos demasiado grandes, pánicos recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	msg := "error interno"
	if code < fiber.StatusInternalServerError {
		msg = err.Error()
	}
	return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: msg})
}
