package http

import "github.com/gofiber/fiber/v2"

// Op identifica una operación de la API. Se usa como etiqueta de métricas y logs.
type Op string

const (
	OpPreviewInvoice Op = "preview_invoice"
	OpCreateInvoice  Op = "create_invoice"
	OpListInvoices   Op = "list_invoices"
	OpGetInvoice     Op = "get_invoice"
	OpEditItems      Op = "edit_items"
	OpMarkPaid       Op = "mark_paid"
	OpInvoicePDF     Op = "invoice_pdf"
	OpInvoiceXML     Op = "invoice_xml"
	OpBillingStats   Op = "billing_stats"
	OpStripeIntent   Op = "stripe_intent"
	OpStripeConfirm  Op = "stripe_confirm"
	OpStripeWebhook  Op = "stripe_webhook"
	OpPayPalOrder    Op = "paypal_order"
	OpPayPalCapture  Op = "paypal_capture"
)

// Route entrada de la tabla de operaciones.
type Route struct {
	Op     Op
	Method string
	Path   string
}

// routes tabla completa de la API. /preview va antes que /:id.
var routes = []Route{
	{OpPreviewInvoice, fiber.MethodPost, "/api/invoices/preview"},
	{OpCreateInvoice, fiber.MethodPost, "/api/invoices"},
	{OpListInvoices, fiber.MethodGet, "/api/invoices"},
	{OpGetInvoice, fiber.MethodGet, "/api/invoices/:id"},
	{OpEditItems, fiber.MethodPut, "/api/invoices/:id/items"},
	{OpMarkPaid, fiber.MethodPost, "/api/invoices/:id/pay"},
	{OpInvoicePDF, fiber.MethodGet, "/api/invoices/:id/pdf"},
	{OpInvoiceXML, fiber.MethodGet, "/api/invoices/:id/xml"},
	{OpBillingStats, fiber.MethodGet, "/api/billing/stats"},
	{OpStripeIntent, fiber.MethodPost, "/api/payments/stripe/create-payment-intent"},
	{OpStripeConfirm, fiber.MethodPost, "/api/payments/stripe/confirm-payment"},
	{OpStripeWebhook, fiber.MethodPost, "/api/payments/stripe/webhook"},
	{OpPayPalOrder, fiber.MethodPost, "/api/payments/paypal/create-order"},
	{OpPayPalCapture, fiber.MethodPost, "/api/payments/paypal/capture-order"},
}

// Routes copia de la tabla de operaciones.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}
