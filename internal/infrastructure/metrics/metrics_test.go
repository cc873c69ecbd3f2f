package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/infrastructure/metrics"
)

func TestBillingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	inv := &entity.Invoice{Currency: "EUR", PaymentProvider: "stripe", Items: []entity.LineItem{{
		Quantity:  decimal.NewNullDecimal(decimal.NewFromInt(2)),
		UnitPrice: decimal.NewNullDecimal(decimal.NewFromInt(100)),
		VATRate:   decimal.NewNullDecimal(decimal.NewFromInt(20)),
	}}}
	m.InvoiceCreated(inv)
	m.InvoicePaid(inv)
	m.PaymentConfirmation("stripe", "paid")
	m.PaymentConfirmation("stripe", "paid")
	m.ObserveRequest("OpGetInvoice", 200, 3*time.Millisecond)

	n, err := testutil.GatherAndCount(reg,
		"billing_invoices_created_total",
		"billing_invoices_paid_total",
		"billing_payment_confirmations_total",
		"billing_http_requests_total",
	)
	assert.NoError(t, err)
	assert.Equal(t, 4, n)

	expected := `
# HELP billing_amount_invoiced_total Importe total facturado (TTC).
# TYPE billing_amount_invoiced_total counter
billing_amount_invoiced_total{currency="EUR"} 240
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "billing_amount_invoiced_total"))
}
