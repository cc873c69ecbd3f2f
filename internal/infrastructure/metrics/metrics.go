// Package metrics expone contadores Prometheus del motor de facturación y de la API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/studio-billing/internal/domain/entity"
)

// BillingMetrics implementa billing.Recorder y payment.Recorder.
type BillingMetrics struct {
	invoicesCreated *prometheus.CounterVec
	invoicesPaid    *prometheus.CounterVec
	amountInvoiced  *prometheus.CounterVec
	confirmations   *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registra los colectores en registerer (DefaultRegisterer si es nil).
func New(registerer prometheus.Registerer) *BillingMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	m := &BillingMetrics{
		invoicesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_invoices_created_total",
			Help: "Facturas emitidas.",
		}, []string{"currency"}),
		invoicesPaid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_invoices_paid_total",
			Help: "Facturas cobradas por pasarela.",
		}, []string{"provider"}),
		amountInvoiced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_amount_invoiced_total",
			Help: "Importe total facturado (TTC).",
		}, []string{"currency"}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_payment_confirmations_total",
			Help: "Confirmaciones de pago recibidas por resultado.",
		}, []string{"provider", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_http_requests_total",
			Help: "Peticiones HTTP por operación y código.",
		}, []string{"operation", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "billing_http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP por operación.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
	}
	registerer.MustRegister(
		m.invoicesCreated,
		m.invoicesPaid,
		m.amountInvoiced,
		m.confirmations,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *BillingMetrics) InvoiceCreated(inv *entity.Invoice) {
	m.invoicesCreated.WithLabelValues(inv.Currency).Inc()
	total, _ := inv.Totals().Total.Float64()
	m.amountInvoiced.WithLabelValues(inv.Currency).Add(total)
}

func (m *BillingMetrics) InvoicePaid(inv *entity.Invoice) {
	m.invoicesPaid.WithLabelValues(inv.PaymentProvider).Inc()
}

func (m *BillingMetrics) PaymentConfirmation(provider, outcome string) {
	m.confirmations.WithLabelValues(provider, outcome).Inc()
}

// ObserveRequest registra una petición HTTP ya respondida.
func (m *BillingMetrics) ObserveRequest(operation string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
