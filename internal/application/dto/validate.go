package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/studio-billing/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Reportar los nombres del JSON o del query (clientName, items[0].vatRate, status)
	// y no los del struct.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})
	return v
}

// Validate revisa la forma de una petición (longitudes, enumerados, tamaño de listas).
// Devuelve *domain.ValidationError con un FieldIssue por regla incumplida.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	issues := make([]domain.FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, domain.FieldIssue{Field: fieldPath(fe.Namespace()), Message: message(fe)})
	}
	return domain.NewValidationError(issues)
}

// fieldPath quita el nombre del struct raíz: "CreateInvoiceRequest.items[0].description" → "items[0].description".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "requerido"
	case "max":
		return "excede el máximo de " + fe.Param()
	case "min":
		return "por debajo del mínimo de " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "iso4217":
		return "moneda ISO 4217 inválida"
	default:
		return "inválido (" + fe.Tag() + ")"
	}
}
