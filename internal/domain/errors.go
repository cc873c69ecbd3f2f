package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrValidation   = errors.New("datos de factura inválidos")
	ErrInvalidState = errors.New("operación no permitida en el estado actual")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrGateway      = errors.New("fallo en la capa de persistencia")
)

// FieldIssue describe un campo inválido. Field usa la notación del JSON de entrada
// (clientName, items[0].vatRate, ...).
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todos los campos inválidos de una entrada.
// errors.Is(err, ErrValidation) es verdadero para cualquier *ValidationError.
type ValidationError struct {
	Issues []FieldIssue
}

// NewValidationError construye el error; devuelve nil si no hay problemas.
func NewValidationError(issues []FieldIssue) error {
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+": "+is.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Fields devuelve los nombres de campo en el orden en que se detectaron.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		out = append(out, is.Field)
	}
	return out
}

// HasField indica si el campo está entre los problemas reportados.
func (e *ValidationError) HasField(field string) bool {
	for _, is := range e.Issues {
		if is.Field == field {
			return true
		}
	}
	return false
}

// GatewayError envuelve un fallo de la capa de persistencia (red, timeout, driver).
// Conserva el error original para errors.Is/As (p. ej. context.DeadlineExceeded).
type GatewayError struct {
	Op  string
	Err error
}

// NewGatewayError envuelve err; nil si err es nil.
func NewGatewayError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &GatewayError{Op: op, Err: err}
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrGateway.Error(), e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrGateway).
func (e *GatewayError) Is(target error) bool {
	return target == ErrGateway
}
