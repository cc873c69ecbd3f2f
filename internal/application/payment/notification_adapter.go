package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
)

// Resultados registrados por confirmación.
const (
	OutcomePaid     = "paid"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// NotificationAdapter traduce confirmaciones externas a MarkPaid.
// Las entregas duplicadas (misma referencia) son idempotentes.
type NotificationAdapter struct {
	invoices InvoicePayer
	recorder Recorder
	log      zerolog.Logger
}

// NewNotificationAdapter construye el adaptador. recorder puede ser nil.
func NewNotificationAdapter(invoices InvoicePayer, recorder Recorder, log zerolog.Logger) *NotificationAdapter {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &NotificationAdapter{
		invoices: invoices,
		recorder: recorder,
		log:      log.With().Str("component", "payment").Logger(),
	}
}

// OnPaymentConfirmed registra el cobro de la factura indicada.
func (a *NotificationAdapter) OnPaymentConfirmed(ctx context.Context, c Confirmation) (*entity.Invoice, error) {
	provider := c.Provider
	if provider == "" {
		provider = entity.PaymentProviderManual
	}
	inv, err := a.confirm(ctx, c, provider)
	a.recorder.PaymentConfirmation(provider, outcome(err))
	if err != nil {
		a.log.Warn().Err(err).
			Str("invoice_id", c.InvoiceID).
			Str("provider", provider).
			Str("reference", c.Reference).
			Msg("confirmación de pago rechazada")
		return nil, err
	}
	return inv, nil
}

func (a *NotificationAdapter) confirm(ctx context.Context, c Confirmation, provider string) (*entity.Invoice, error) {
	var issues []domain.FieldIssue
	if strings.TrimSpace(c.InvoiceID) == "" {
		issues = append(issues, domain.FieldIssue{Field: "invoiceId", Message: "requerido"})
	}
	if strings.TrimSpace(c.Reference) == "" {
		issues = append(issues, domain.FieldIssue{Field: "paymentReference", Message: "requerido"})
	}
	if err := domain.NewValidationError(issues); err != nil {
		return nil, err
	}

	if c.Amount != nil || c.Currency != "" {
		inv, err := a.invoices.Get(ctx, c.InvoiceID)
		if err != nil {
			return nil, err
		}
		if err := checkAmount(inv, c); err != nil {
			return nil, err
		}
	}
	return a.invoices.MarkPaid(ctx, c.InvoiceID, c.Reference, provider)
}

// checkAmount compara con el total redondeado a céntimos, que es lo que cobra la pasarela.
func checkAmount(inv *entity.Invoice, c Confirmation) error {
	var issues []domain.FieldIssue
	if c.Currency != "" && !strings.EqualFold(c.Currency, inv.Currency) {
		issues = append(issues, domain.FieldIssue{
			Field:   "currency",
			Message: fmt.Sprintf("se esperaba %s", inv.Currency),
		})
	}
	if c.Amount != nil {
		expected := invoicing.RoundCents(inv.Totals().Total)
		if !invoicing.RoundCents(*c.Amount).Equal(expected) {
			issues = append(issues, domain.FieldIssue{
				Field:   "amount",
				Message: fmt.Sprintf("se esperaba %s", expected.StringFixed(2)),
			})
		}
	}
	return domain.NewValidationError(issues)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomePaid
	case errors.Is(err, domain.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
