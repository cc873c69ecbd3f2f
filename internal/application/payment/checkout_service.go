package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
)

// CheckoutService emite intenciones de pago y las confirma contra la factura.
type CheckoutService struct {
	invoices  InvoicePayer
	adapter   *NotificationAdapter
	providers map[string]IntentProvider
	log       zerolog.Logger
}

// NewCheckoutService registra las pasarelas disponibles por nombre.
func NewCheckoutService(invoices InvoicePayer, adapter *NotificationAdapter, log zerolog.Logger, providers ...IntentProvider) *CheckoutService {
	byName := make(map[string]IntentProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &CheckoutService{
		invoices:  invoices,
		adapter:   adapter,
		providers: byName,
		log:       log.With().Str("component", "checkout").Logger(),
	}
}

// CreateIntent emite una intención por el total (a céntimos) de una factura pendiente.
func (s *CheckoutService) CreateIntent(ctx context.Context, provider, invoiceID string) (*Intent, error) {
	p, err := s.provider(provider)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.IsPaid() {
		return nil, fmt.Errorf("%w: la factura %s ya está pagada", domain.ErrInvalidState, inv.Number)
	}
	intent, err := p.CreateIntent(ctx, inv.ID, invoicing.RoundCents(inv.Totals().Total), inv.Currency)
	if err != nil {
		return nil, fmt.Errorf("%s: crear intención de pago: %w", provider, err)
	}
	s.log.Info().
		Str("invoice_id", inv.ID).
		Str("provider", provider).
		Str("reference", intent.Reference).
		Msg("intención de pago creada")
	return intent, nil
}

// Confirm cobra la factura con una referencia emitida previamente para ella.
// Con invoiceID vacío se usa la factura a la que se emitió la referencia.
func (s *CheckoutService) Confirm(ctx context.Context, provider, invoiceID, reference string) (*Intent, error) {
	p, err := s.provider(provider)
	if err != nil {
		return nil, err
	}
	if reference == "" {
		return nil, domain.NewValidationError([]domain.FieldIssue{{Field: "paymentReference", Message: "requerido"}})
	}
	intent, err := p.Lookup(ctx, reference)
	if err != nil {
		return nil, err
	}
	if invoiceID == "" {
		invoiceID = intent.InvoiceID
	}
	if intent.InvoiceID != invoiceID {
		return nil, domain.NewValidationError([]domain.FieldIssue{{
			Field:   "paymentReference",
			Message: "la referencia pertenece a otra factura",
		}})
	}
	amount := intent.Amount
	if _, err := s.adapter.OnPaymentConfirmed(ctx, Confirmation{
		InvoiceID: invoiceID,
		Reference: intent.Reference,
		Provider:  p.Name(),
		Amount:    &amount,
		Currency:  intent.Currency,
	}); err != nil {
		return nil, err
	}
	return intent, nil
}

func (s *CheckoutService) provider(name string) (IntentProvider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: pasarela %q no configurada", domain.ErrInvalidInput, name)
	}
	return p, nil
}
