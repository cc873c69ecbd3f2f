package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/studio-billing/internal/application/billing"
	"github.com/jhoicas/studio-billing/internal/application/payment"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Invoices  *billing.InvoiceService
	Documents *billing.DocumentService
	Checkout  *payment.CheckoutService
	Payments  *payment.NotificationAdapter
	Webhooks  WebhookParser // nil: webhook responde 503
	Metrics   RequestRecorder
	// MetricsHandler expone /metrics si no es nil.
	MetricsHandler fiber.Handler
	ServiceName    string
	Log            zerolog.Logger
}

// Router registra /health, /metrics y la tabla de operaciones de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", deps.MetricsHandler)
	}

	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.Documents)
	paymentHandler := NewPaymentHandler(deps.Checkout, deps.Payments, deps.Webhooks, deps.Invoices)

	handlers := map[Op]fiber.Handler{
		OpPreviewInvoice: invoiceHandler.Preview,
		OpCreateInvoice:  invoiceHandler.Create,
		OpListInvoices:   invoiceHandler.List,
		OpGetInvoice:     invoiceHandler.GetByID,
		OpEditItems:      invoiceHandler.EditItems,
		OpMarkPaid:       invoiceHandler.MarkPaid,
		OpInvoicePDF:     invoiceHandler.DownloadPDF,
		OpInvoiceXML:     invoiceHandler.DownloadXML,
		OpBillingStats:   invoiceHandler.Stats,
		OpStripeIntent:   paymentHandler.CreateStripeIntent,
		OpStripeConfirm:  paymentHandler.ConfirmStripePayment,
		OpStripeWebhook:  paymentHandler.StripeWebhook,
		OpPayPalOrder:    paymentHandler.CreatePayPalOrder,
		OpPayPalCapture:  paymentHandler.CapturePayPalOrder,
	}

	log := deps.Log.With().Str("component", "http").Logger()
	for _, r := range routes {
		h, ok := handlers[r.Op]
		if !ok {
			panic(fmt.Sprintf("http: operación %s sin handler", r.Op))
		}
		app.Add(r.Method, r.Path, Instrument(r.Op, log, deps.Metrics), h)
	}
}
