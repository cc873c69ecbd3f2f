package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/studio-billing/internal/application/dto"
	"github.com/jhoicas/studio-billing/internal/application/payment"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
)

// WebhookParser verifica y decodifica los webhooks de una pasarela.
type WebhookParser interface {
	Enabled() bool
	Parse(payload []byte, signature string) (conf *payment.Confirmation, eventType string, handled bool, err error)
}

// PaymentHandler endpoints de pasarelas de pago.
type PaymentHandler struct {
	checkout *payment.CheckoutService
	adapter  *payment.NotificationAdapter
	webhooks WebhookParser
	invoices payment.InvoicePayer
}

// NewPaymentHandler construye el handler. webhooks puede ser nil (endpoint deshabilitado).
func NewPaymentHandler(checkout *payment.CheckoutService, adapter *payment.NotificationAdapter, webhooks WebhookParser, invoices payment.InvoicePayer) *PaymentHandler {
	return &PaymentHandler{checkout: checkout, adapter: adapter, webhooks: webhooks, invoices: invoices}
}

// CreateStripeIntent godoc
// @Summary      Crear PaymentIntent
// @Description  Emite una intención de pago por el total (a céntimos) de una factura pendiente.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateIntentRequest  true  "Factura"
// @Success      201   {object}  dto.IntentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/stripe/create-payment-intent [post]
func (h *PaymentHandler) CreateStripeIntent(c *fiber.Ctx) error {
	return h.createIntent(c, entity.PaymentProviderStripe)
}

// CreatePayPalOrder godoc
// @Summary      Crear orden PayPal
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateIntentRequest  true  "Factura"
// @Success      201   {object}  dto.IntentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/paypal/create-order [post]
func (h *PaymentHandler) CreatePayPalOrder(c *fiber.Ctx) error {
	return h.createIntent(c, entity.PaymentProviderPayPal)
}

func (h *PaymentHandler) createIntent(c *fiber.Ctx, provider string) error {
	var in dto.CreateIntentRequest
	if handled, err := parseBody(c, &in); handled {
		return err
	}
	intent, err := h.checkout.CreateIntent(c.UserContext(), provider, in.InvoiceID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewIntentResponse(intent))
}

// ConfirmStripePayment godoc
// @Summary      Confirmar PaymentIntent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ConfirmPaymentRequest  true  "PaymentIntent"
// @Success      200   {object}  dto.PaymentConfirmedResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/payments/stripe/confirm-payment [post]
func (h *PaymentHandler) ConfirmStripePayment(c *fiber.Ctx) error {
	var in dto.ConfirmPaymentRequest
	if handled, err := parseBody(c, &in); handled {
		return err
	}
	return h.confirm(c, entity.PaymentProviderStripe, in.InvoiceID, in.PaymentIntentID)
}

// CapturePayPalOrder godoc
// @Summary      Capturar orden PayPal
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CaptureOrderRequest  true  "Orden"
// @Success      200   {object}  dto.PaymentConfirmedResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/payments/paypal/capture-order [post]
func (h *PaymentHandler) CapturePayPalOrder(c *fiber.Ctx) error {
	var in dto.CaptureOrderRequest
	if handled, err := parseBody(c, &in); handled {
		return err
	}
	return h.confirm(c, entity.PaymentProviderPayPal, in.InvoiceID, in.OrderID)
}

func (h *PaymentHandler) confirm(c *fiber.Ctx, provider, invoiceID, reference string) error {
	intent, err := h.checkout.Confirm(c.UserContext(), provider, invoiceID, reference)
	if err != nil {
		return writeError(c, err)
	}
	inv, err := h.invoices.Get(c.UserContext(), intent.InvoiceID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PaymentConfirmedResponse{
		Intent:  dto.NewIntentResponse(intent),
		Invoice: dto.NewInvoiceResponse(inv),
	})
}

// StripeWebhook godoc
// @Summary      Webhook de Stripe
// @Description  Verifica Stripe-Signature. Solo payment_intent.succeeded cobra la factura;
//               el resto de eventos se acusa con 200 sin efectos.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Firma del evento"
// @Success      200               {object}  dto.WebhookAck
// @Failure      400               {object}  dto.ErrorResponse
// @Failure      409               {object}  dto.ErrorResponse
// @Failure      503               {object}  dto.ErrorResponse
// @Router       /api/payments/stripe/webhook [post]
func (h *PaymentHandler) StripeWebhook(c *fiber.Ctx) error {
	if h.webhooks == nil || !h.webhooks.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "WEBHOOK_DISABLED", Message: "STRIPE_WEBHOOK_SECRET no configurado",
		})
	}
	conf, event, handled, err := h.webhooks.Parse(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		return writeError(c, err)
	}
	if !handled {
		return c.JSON(dto.WebhookAck{Received: true, Event: event})
	}
	if _, err := h.adapter.OnPaymentConfirmed(c.UserContext(), *conf); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.WebhookAck{Received: true, Event: event, Handled: true})
}
