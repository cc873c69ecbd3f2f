// Package payment conecta las confirmaciones de las pasarelas (Stripe, PayPal, manual)
// con el motor de facturación.
package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/studio-billing/internal/domain/entity"
)

// InvoicePayer subconjunto del motor de facturación que usa este paquete.
type InvoicePayer interface {
	Get(ctx context.Context, id string) (*entity.Invoice, error)
	MarkPaid(ctx context.Context, id, reference, provider string) (*entity.Invoice, error)
}

// Confirmation aviso de pago recibido de una pasarela. Amount y Currency son opcionales;
// si vienen, deben coincidir con la factura.
type Confirmation struct {
	InvoiceID string
	Reference string
	Provider  string
	Amount    *decimal.Decimal
	Currency  string
}

// Intent intención de pago (PaymentIntent u orden PayPal) emitida para una factura.
type Intent struct {
	Reference    string
	InvoiceID    string
	Provider     string
	ClientSecret string
	Amount       decimal.Decimal
	Currency     string
	CreatedAt    time.Time
}

// IntentProvider pasarela capaz de emitir intenciones de pago y recordar las emitidas.
type IntentProvider interface {
	Name() string
	CreateIntent(ctx context.Context, invoiceID string, amount decimal.Decimal, currency string) (*Intent, error)
	// Lookup devuelve domain.ErrNotFound si la referencia no fue emitida (o expiró).
	Lookup(ctx context.Context, reference string) (*Intent, error)
}

// Recorder métricas de confirmaciones.
type Recorder interface {
	PaymentConfirmation(provider, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) PaymentConfirmation(string, string) {}
