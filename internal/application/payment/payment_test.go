package payment_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/studio-billing/internal/application/billing"
	"github.com/jhoicas/studio-billing/internal/application/payment"
	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/infrastructure/memory"
	"github.com/jhoicas/studio-billing/internal/infrastructure/payment/fake"
)

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *countingRecorder) PaymentConfirmation(provider, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, provider+":"+outcome)
}

type env struct {
	invoices *billing.InvoiceService
	adapter  *payment.NotificationAdapter
	checkout *payment.CheckoutService
	recorder *countingRecorder
	invoice  *entity.Invoice
}

// newEnv crea una factura de 3×33.33 @ 5.5 % (total exacto 105.48945).
func newEnv(t *testing.T) *env {
	t.Helper()
	svc := billing.NewInvoiceService(memory.NewInvoiceRepository(), memory.NewSequence(), billing.Config{}, zerolog.Nop())
	inv, err := svc.Create(context.Background(), entity.InvoiceDraft{
		ClientName:    "Studio Beta",
		ClientAddress: "3 quai de Seine, Paris",
		Items: []entity.LineItem{
			{Description: "Master", Quantity: dec("3"), UnitPrice: dec("33.33"), VATRate: dec("5.5")},
		},
	})
	require.NoError(t, err)

	rec := &countingRecorder{}
	adapter := payment.NewNotificationAdapter(svc, rec, zerolog.Nop())
	checkout := payment.NewCheckoutService(svc, adapter, zerolog.Nop(),
		fake.NewStripe(time.Hour), fake.NewPayPal(time.Hour))
	return &env{invoices: svc, adapter: adapter, checkout: checkout, recorder: rec, invoice: inv}
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// NotificationAdapter
// ──────────────────────────────────────────────────────────────────────────────

func TestOnPaymentConfirmed_ImporteCoincide(t *testing.T) {
	e := newEnv(t)
	inv, err := e.adapter.OnPaymentConfirmed(context.Background(), payment.Confirmation{
		InvoiceID: e.invoice.ID,
		Reference: "pi_1",
		Provider:  "stripe",
		Amount:    amount("105.49"),
		Currency:  "eur",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.Equal(t, []string{"stripe:paid"}, e.recorder.outcomes)
}

func TestOnPaymentConfirmed_EntregaDuplicada(t *testing.T) {
	e := newEnv(t)
	c := payment.Confirmation{InvoiceID: e.invoice.ID, Reference: "pi_1", Provider: "stripe"}
	first, err := e.adapter.OnPaymentConfirmed(context.Background(), c)
	require.NoError(t, err)
	second, err := e.adapter.OnPaymentConfirmed(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, first.PaidAt, second.PaidAt)
}

func TestOnPaymentConfirmed_ImporteDistinto(t *testing.T) {
	e := newEnv(t)
	_, err := e.adapter.OnPaymentConfirmed(context.Background(), payment.Confirmation{
		InvoiceID: e.invoice.ID,
		Reference: "pi_1",
		Amount:    amount("105.48"),
		Currency:  "USD",
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"amount", "currency"}, ve.Fields())

	stored, err := e.invoices.Get(context.Background(), e.invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPending, stored.Status)
	assert.Equal(t, []string{"manual:rejected"}, e.recorder.outcomes)
}

func TestOnPaymentConfirmed_FaltanCampos(t *testing.T) {
	e := newEnv(t)
	_, err := e.adapter.OnPaymentConfirmed(context.Background(), payment.Confirmation{})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"invoiceId", "paymentReference"}, ve.Fields())
}

func TestOnPaymentConfirmed_Conflicto(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.adapter.OnPaymentConfirmed(ctx, payment.Confirmation{InvoiceID: e.invoice.ID, Reference: "pi_1"})
	require.NoError(t, err)
	_, err = e.adapter.OnPaymentConfirmed(ctx, payment.Confirmation{InvoiceID: e.invoice.ID, Reference: "pi_2"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "manual:conflict", e.recorder.outcomes[1])
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckoutService
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_StripeIntentYConfirmacion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	intent, err := e.checkout.CreateIntent(ctx, "stripe", e.invoice.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(intent.Reference, "pi_fake_"))
	assert.NotEmpty(t, intent.ClientSecret)
	assert.Equal(t, "105.49", intent.Amount.String())
	assert.Equal(t, "EUR", intent.Currency)

	_, err = e.checkout.Confirm(ctx, "stripe", "", intent.Reference)
	require.NoError(t, err)

	stored, err := e.invoices.Get(ctx, e.invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, intent.Reference, stored.PaymentReference)
	assert.Equal(t, "stripe", stored.PaymentProvider)

	_, err = e.checkout.CreateIntent(ctx, "stripe", e.invoice.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "no se emiten intenciones para facturas pagadas")
}

func TestCheckout_PayPalOrdenYCaptura(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	order, err := e.checkout.CreateIntent(ctx, "paypal", e.invoice.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.Reference, "paypal_fake_"))
	assert.Empty(t, order.ClientSecret)

	_, err = e.checkout.Confirm(ctx, "paypal", e.invoice.ID, order.Reference)
	require.NoError(t, err)
	// Captura repetida: idempotente.
	_, err = e.checkout.Confirm(ctx, "paypal", e.invoice.ID, order.Reference)
	require.NoError(t, err)
}

func TestCheckout_ReferenciaDesconocida(t *testing.T) {
	e := newEnv(t)
	_, err := e.checkout.Confirm(context.Background(), "stripe", e.invoice.ID, "pi_fake_nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckout_ReferenciaDeOtraFactura(t *testing.T) {
	e := newEnv(t)
	intent, err := e.checkout.CreateIntent(context.Background(), "stripe", e.invoice.ID)
	require.NoError(t, err)
	_, err = e.checkout.Confirm(context.Background(), "stripe", "other-invoice", intent.Reference)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckout_EditadaTrasIntentSeRechaza(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	intent, err := e.checkout.CreateIntent(ctx, "stripe", e.invoice.ID)
	require.NoError(t, err)

	_, err = e.invoices.EditItems(ctx, e.invoice.ID, []entity.LineItem{
		{Description: "Master", Quantity: dec("4"), UnitPrice: dec("33.33"), VATRate: dec("5.5")},
	})
	require.NoError(t, err)

	_, err = e.checkout.Confirm(ctx, "stripe", e.invoice.ID, intent.Reference)
	assert.ErrorIs(t, err, domain.ErrValidation, "el importe de la intención ya no coincide")
}

func TestCheckout_ProveedorDesconocido(t *testing.T) {
	e := newEnv(t)
	_, err := e.checkout.CreateIntent(context.Background(), "bitcoin", e.invoice.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
