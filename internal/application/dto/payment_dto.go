package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/studio-billing/internal/application/payment"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
)

// CreateIntentRequest body para create-payment-intent y create-order.
type CreateIntentRequest struct {
	InvoiceID string `json:"invoiceId" validate:"required,max=64"`
}

// ConfirmPaymentRequest body para confirm-payment (Stripe).
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required,max=200"`
	InvoiceID       string `json:"invoiceId" validate:"max=64"`
}

// CaptureOrderRequest body para capture-order (PayPal).
type CaptureOrderRequest struct {
	OrderID   string `json:"orderId" validate:"required,max=200"`
	InvoiceID string `json:"invoiceId" validate:"max=64"`
}

// IntentResponse intención de pago emitida o confirmada.
type IntentResponse struct {
	Reference     string          `json:"reference"`
	InvoiceID     string          `json:"invoiceId"`
	Provider      string          `json:"provider"`
	ClientSecret  string          `json:"clientSecret,omitempty"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	AmountDisplay string          `json:"amountDisplay"`
	Currency      string          `json:"currency"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PaymentConfirmedResponse respuesta de una confirmación: la intención y la factura cobrada.
type PaymentConfirmedResponse struct {
	Intent  IntentResponse  `json:"intent"`
	Invoice InvoiceResponse `json:"invoice"`
}

// WebhookAck respuesta del endpoint de webhooks.
type WebhookAck struct {
	Received bool   `json:"received"`
	Event    string `json:"event,omitempty"`
	Handled  bool   `json:"handled"`
}

// NewIntentResponse mapea la intención.
func NewIntentResponse(in *payment.Intent) IntentResponse {
	return IntentResponse{
		Reference:     in.Reference,
		InvoiceID:     in.InvoiceID,
		Provider:      in.Provider,
		ClientSecret:  in.ClientSecret,
		Amount:        in.Amount,
		AmountDisplay: invoicing.FormatMoney(in.Amount, in.Currency),
		Currency:      in.Currency,
		CreatedAt:     in.CreatedAt,
	}
}
