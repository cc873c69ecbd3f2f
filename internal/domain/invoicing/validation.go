package invoicing

import (
	"fmt"
	"strings"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Mode nivel de exigencia de la validación.
type Mode int

const (
	// ModeDraft tolera campos vacíos (formulario en edición).
	ModeDraft Mode = iota
	// ModeFinal exige todos los campos obligatorios (finalización).
	ModeFinal
)

// Límites de los importes de entrada: como máximo 6 decimales y 12 cifras enteras.
const (
	MaxAmountScale     = 6
	MaxAmountIntDigits = 12
)

// Nombres de campo reportados en domain.FieldIssue.
const (
	FieldClientName    = "clientName"
	FieldClientAddress = "clientAddress"
	FieldItems         = "items"
)

// Validate revisa el borrador completo y devuelve *domain.ValidationError con todos
// los campos inválidos, o nil. No falla al primer error.
func Validate(d entity.InvoiceDraft, rules Rules, mode Mode) error {
	var issues []domain.FieldIssue
	if mode == ModeFinal {
		if strings.TrimSpace(d.ClientName) == "" {
			issues = append(issues, domain.FieldIssue{Field: FieldClientName, Message: "requerido"})
		}
		if strings.TrimSpace(d.ClientAddress) == "" {
			issues = append(issues, domain.FieldIssue{Field: FieldClientAddress, Message: "requerido"})
		}
	}
	issues = append(issues, itemIssues(d.Items, rules, mode)...)
	return domain.NewValidationError(issues)
}

// ValidateItems valida solo las líneas (edición de una factura existente).
func ValidateItems(items []entity.LineItem, rules Rules, mode Mode) error {
	return domain.NewValidationError(itemIssues(items, rules, mode))
}

func itemIssues(items []entity.LineItem, rules Rules, mode Mode) []domain.FieldIssue {
	var issues []domain.FieldIssue
	if mode == ModeFinal && len(items) == 0 {
		issues = append(issues, domain.FieldIssue{Field: FieldItems, Message: "se requiere al menos una línea"})
	}
	for i, it := range items {
		prefix := fmt.Sprintf("items[%d].", i)
		if mode == ModeFinal && strings.TrimSpace(it.Description) == "" {
			issues = append(issues, domain.FieldIssue{Field: prefix + "description", Message: "requerido"})
		}
		if is, ok := amountIssue(prefix+"quantity", it.Quantity, mode); !ok {
			issues = append(issues, is)
		}
		if is, ok := amountIssue(prefix+"unitPrice", it.UnitPrice, mode); !ok {
			issues = append(issues, is)
		}
		switch {
		case !it.VATRate.Valid && mode == ModeFinal:
			issues = append(issues, domain.FieldIssue{Field: prefix + "vatRate", Message: "requerido"})
		case it.VATRate.Valid && !WithinBounds(it.VATRate.Decimal):
			issues = append(issues, boundsIssue(prefix+"vatRate"))
		case it.VATRate.Valid && !rules.AllowsRate(it.VATRate.Decimal):
			issues = append(issues, domain.FieldIssue{
				Field:   prefix + "vatRate",
				Message: fmt.Sprintf("tasa %s no permitida (permitidas: %s)", it.VATRate.Decimal.String(), ratesString(rules.VATRates)),
			})
		}
	}
	return issues
}

func amountIssue(field string, v decimal.NullDecimal, mode Mode) (domain.FieldIssue, bool) {
	if !v.Valid {
		if mode == ModeFinal {
			return domain.FieldIssue{Field: field, Message: "requerido"}, false
		}
		return domain.FieldIssue{}, true
	}
	if !WithinBounds(v.Decimal) {
		return boundsIssue(field), false
	}
	if v.Decimal.IsNegative() {
		return domain.FieldIssue{Field: field, Message: "no puede ser negativo"}, false
	}
	return domain.FieldIssue{}, true
}

// WithinBounds indica si d respeta MaxAmountScale y MaxAmountIntDigits. El exponente se
// acota antes de comparar.
func WithinBounds(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -MaxAmountScale || exp > MaxAmountIntDigits {
		return false
	}
	return d.Abs().LessThan(amountLimit)
}

var amountLimit = decimal.New(1, MaxAmountIntDigits)

// BoundedItems copia las líneas dejando vacío todo importe fuera de límites, para
// poder sumar un borrador aún inválido.
func BoundedItems(items []entity.LineItem) []entity.LineItem {
	out := entity.CloneItems(items)
	for i := range out {
		out[i].Quantity = bounded(out[i].Quantity)
		out[i].UnitPrice = bounded(out[i].UnitPrice)
		out[i].VATRate = bounded(out[i].VATRate)
	}
	return out
}

func bounded(v decimal.NullDecimal) decimal.NullDecimal {
	if v.Valid && !WithinBounds(v.Decimal) {
		return decimal.NullDecimal{}
	}
	return v
}

func boundsIssue(field string) domain.FieldIssue {
	return domain.FieldIssue{
		Field:   field,
		Message: fmt.Sprintf("fuera de rango (máximo %d decimales y %d cifras enteras)", MaxAmountScale, MaxAmountIntDigits),
	}
}

func ratesString(rates []decimal.Decimal) string {
	parts := make([]string, 0, len(rates))
	for _, r := range rates {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}
