// Package stripe verifica y decodifica los webhooks de Stripe.
package stripe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/jhoicas/studio-billing/internal/application/payment"
	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
)

// EventPaymentIntentSucceeded único evento que confirma un cobro.
const EventPaymentIntentSucceeded = "payment_intent.succeeded"

// MetadataInvoiceID clave de metadata con el id de la factura.
const MetadataInvoiceID = "invoice_id"

// WebhookParser valida la firma Stripe-Signature con el secreto del endpoint.
type WebhookParser struct {
	secret string
}

// NewWebhookParser construye el parser.
func NewWebhookParser(secret string) *WebhookParser {
	return &WebhookParser{secret: secret}
}

// Enabled indica si hay un secreto configurado.
func (p *WebhookParser) Enabled() bool { return p.secret != "" }

// Parse verifica la firma y devuelve la confirmación. handled=false para eventos que no
// confirman un cobro (se responden 200 sin efectos).
func (p *WebhookParser) Parse(payload []byte, signature string) (conf *payment.Confirmation, eventType string, handled bool, err error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, "", false, fmt.Errorf("%w: firma de webhook inválida: %v", domain.ErrInvalidInput, err)
	}
	eventType = string(event.Type)
	if eventType != EventPaymentIntentSucceeded {
		return nil, eventType, false, nil
	}

	var pi stripeapi.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, eventType, false, fmt.Errorf("%w: payment intent ilegible: %v", domain.ErrInvalidInput, err)
	}
	invoiceID := pi.Metadata[MetadataInvoiceID]
	if invoiceID == "" {
		return nil, eventType, false, domain.NewValidationError([]domain.FieldIssue{{
			Field:   "metadata." + MetadataInvoiceID,
			Message: "requerido",
		}})
	}
	// Stripe expresa el importe en la unidad mínima de la moneda (céntimos).
	amount := decimal.New(pi.Amount, -2)
	return &payment.Confirmation{
		InvoiceID: invoiceID,
		Reference: pi.ID,
		Provider:  entity.PaymentProviderStripe,
		Amount:    &amount,
		Currency:  strings.ToUpper(string(pi.Currency)),
	}, eventType, true, nil
}
