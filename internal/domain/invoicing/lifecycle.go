package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
)

// NewInvoice finaliza un borrador: valida (ModeFinal), fija número, fechas y estado pending.
// issuedAt debe venir ya en la zona horaria de facturación.
func NewInvoice(id, number string, d entity.InvoiceDraft, rules Rules, issuedAt time.Time) (*entity.Invoice, error) {
	if err := Validate(d, rules, ModeFinal); err != nil {
		return nil, err
	}
	if id == "" || number == "" {
		return nil, fmt.Errorf("%w: id y número son obligatorios", domain.ErrInvalidInput)
	}
	terms := rules.PaymentTermDays
	if terms <= 0 {
		terms = DefaultPaymentTermDays
	}
	currency := rules.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return &entity.Invoice{
		ID:            id,
		Number:        number,
		ClientName:    strings.TrimSpace(d.ClientName),
		ClientAddress: strings.TrimSpace(d.ClientAddress),
		ClientVAT:     strings.TrimSpace(d.ClientVAT),
		BankDetails:   strings.TrimSpace(d.BankDetails),
		Currency:      currency,
		Items:         entity.CloneItems(d.Items),
		IssueDate:     issuedAt,
		DueDate:       issuedAt.AddDate(0, 0, terms),
		Status:        entity.InvoiceStatusPending,
		CreatedAt:     issuedAt,
		UpdatedAt:     issuedAt,
	}, nil
}

// EditItems reemplaza las líneas de una factura pendiente. Las líneas nuevas deben
// seguir siendo finalizables. Una factura pagada queda intacta y se devuelve ErrInvalidState.
func EditItems(inv *entity.Invoice, items []entity.LineItem, rules Rules, now time.Time) error {
	if inv.IsPaid() {
		return fmt.Errorf("%w: la factura %s ya está pagada", domain.ErrInvalidState, inv.Number)
	}
	if err := ValidateItems(items, rules, ModeFinal); err != nil {
		return err
	}
	inv.Items = entity.CloneItems(items)
	inv.UpdatedAt = now
	return nil
}

// MarkPaid aplica pending → paid. Devuelve changed=false sin error si la factura ya estaba
// pagada con la misma referencia (webhook duplicado); ErrConflict si la referencia difiere.
func MarkPaid(inv *entity.Invoice, reference, provider string, now time.Time) (changed bool, err error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return false, domain.NewValidationError([]domain.FieldIssue{{Field: "paymentReference", Message: "requerido"}})
	}
	switch inv.Status {
	case entity.InvoiceStatusPaid:
		if inv.PaymentReference == reference {
			return false, nil
		}
		return false, fmt.Errorf("%w: la factura %s ya fue pagada con otra referencia", domain.ErrConflict, inv.Number)
	case entity.InvoiceStatusPending:
		paidAt := now
		inv.Status = entity.InvoiceStatusPaid
		inv.PaidAt = &paidAt
		inv.PaymentReference = reference
		inv.PaymentProvider = provider
		inv.UpdatedAt = now
		return true, nil
	default:
		return false, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidState, inv.Status)
	}
}
