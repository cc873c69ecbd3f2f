package invoicing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
)

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func validDraft() entity.InvoiceDraft {
	return entity.InvoiceDraft{
		ClientName:    "Studio Alpha",
		ClientAddress: "12 rue des Lilas, 75011 Paris",
		ClientVAT:     "FR12345678901",
		Items: []entity.LineItem{
			{Description: "Session d'enregistrement", Quantity: dec("2"), UnitPrice: dec("100"), VATRate: dec("20")},
		},
	}
}

func validationErr(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrValidation))
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	return ve
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_BorradorValido(t *testing.T) {
	assert.NoError(t, invoicing.Validate(validDraft(), invoicing.DefaultRules(), invoicing.ModeFinal))
}

func TestValidate_DireccionVacia(t *testing.T) {
	d := validDraft()
	d.ClientAddress = "   "
	ve := validationErr(t, invoicing.Validate(d, invoicing.DefaultRules(), invoicing.ModeFinal))
	assert.Equal(t, []string{"clientAddress"}, ve.Fields())
}

func TestValidate_ReportaTodosLosCampos(t *testing.T) {
	d := entity.InvoiceDraft{
		Items: []entity.LineItem{
			{Description: "", Quantity: dec("-1"), UnitPrice: decimal.NullDecimal{}, VATRate: dec("19")},
		},
	}
	ve := validationErr(t, invoicing.Validate(d, invoicing.DefaultRules(), invoicing.ModeFinal))
	assert.ElementsMatch(t, []string{
		"clientName", "clientAddress",
		"items[0].description", "items[0].quantity", "items[0].unitPrice", "items[0].vatRate",
	}, ve.Fields())
}

func TestValidate_SinLineas(t *testing.T) {
	d := validDraft()
	d.Items = nil
	ve := validationErr(t, invoicing.Validate(d, invoicing.DefaultRules(), invoicing.ModeFinal))
	assert.True(t, ve.HasField("items"))
}

func TestValidate_TasasPermitidas(t *testing.T) {
	rules := invoicing.DefaultRules()
	for _, rate := range []string{"0", "5.5", "10", "20", "20.00"} {
		d := validDraft()
		d.Items[0].VATRate = dec(rate)
		assert.NoError(t, invoicing.Validate(d, rules, invoicing.ModeFinal), "tasa %s", rate)
	}
	for _, rate := range []string{"19", "5", "7.7", "100"} {
		d := validDraft()
		d.Items[0].VATRate = dec(rate)
		ve := validationErr(t, invoicing.Validate(d, rules, invoicing.ModeFinal))
		assert.True(t, ve.HasField("items[0].vatRate"), "tasa %s", rate)
	}
}

func TestValidate_ModoBorradorToleraVacios(t *testing.T) {
	d := entity.InvoiceDraft{Items: []entity.LineItem{{Description: ""}}}
	assert.NoError(t, invoicing.Validate(d, invoicing.DefaultRules(), invoicing.ModeDraft))

	// Negativos y tasas fuera del conjunto se rechazan también en borrador.
	d.Items[0].UnitPrice = dec("-3")
	d.Items[0].VATRate = dec("8")
	ve := validationErr(t, invoicing.Validate(d, invoicing.DefaultRules(), invoicing.ModeDraft))
	assert.ElementsMatch(t, []string{"items[0].unitPrice", "items[0].vatRate"}, ve.Fields())
}

func TestValidate_ImportesFueraDeRango(t *testing.T) {
	d := entity.InvoiceDraft{Items: []entity.LineItem{
		{Quantity: dec("1e20000000"), UnitPrice: dec("0.0000001"), VATRate: dec("1e-20000000")},
		{Quantity: dec("999999999999.999999"), UnitPrice: dec("1000000000000"), VATRate: dec("20.000000")},
	}}
	for _, mode := range []invoicing.Mode{invoicing.ModeDraft, invoicing.ModeFinal} {
		ve := validationErr(t, invoicing.ValidateItems(d.Items, invoicing.DefaultRules(), mode))
		assert.ElementsMatch(t, []string{
			"items[0].quantity", "items[0].unitPrice", "items[0].vatRate", "items[1].unitPrice",
		}, ve.Fields())
	}
}

func TestWithinBounds(t *testing.T) {
	cases := map[string]bool{
		"0":             true,
		"33.333333":     true,
		"33.3333333":    false,
		"999999999999":  true,
		"1000000000000": false,
		"1e12":          false,
		"1e11":          true,
		"0e20000000":    false,
		"1e20000000":    false,
		"-1e20000000":   false,
		"0.000000":      true,
		"1e-7":          false,
	}
	for in, want := range cases {
		assert.Equal(t, want, invoicing.WithinBounds(decimal.RequireFromString(in)), in)
	}
}

func TestBoundedItems_VaciaLoQueExcede(t *testing.T) {
	items := []entity.LineItem{{Quantity: dec("1e20000000"), UnitPrice: dec("10"), VATRate: dec("20")}}
	out := invoicing.BoundedItems(items)
	assert.False(t, out[0].Quantity.Valid)
	assert.True(t, out[0].UnitPrice.Valid)
	assert.True(t, items[0].Quantity.Valid, "no modifica la entrada")
	assert.True(t, entity.SumTotals(out).Total.IsZero())
}

func TestParseVATRates(t *testing.T) {
	rates, err := invoicing.ParseVATRates(" 0, 5.5 ,10,20")
	require.NoError(t, err)
	require.Len(t, rates, 4)
	assert.True(t, rates[1].Equal(decimal.RequireFromString("5.5")))

	_, err = invoicing.ParseVATRates("abc")
	assert.Error(t, err)
	_, err = invoicing.ParseVATRates("-1")
	assert.Error(t, err)
	_, err = invoicing.ParseVATRates(" , ")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Numeración
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatNumber_SegundaFacturaDelDia(t *testing.T) {
	day := time.Date(2024, 6, 20, 15, 4, 0, 0, time.UTC)
	n, err := invoicing.FormatNumber(day, 2)
	require.NoError(t, err)
	assert.Equal(t, "FACT-20240620-002", n)
}

func TestFormatNumber_ConsecutivoGrande(t *testing.T) {
	n, err := invoicing.FormatNumber(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 1234)
	require.NoError(t, err)
	assert.Equal(t, "FACT-20240102-1234", n)

	_, err = invoicing.FormatNumber(time.Now(), 0)
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	day, seq, err := invoicing.ParseNumber("FACT-20240620-002")
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)
	assert.Equal(t, "20240620", invoicing.DayKey(day))

	for _, bad := range []string{"", "FACT-2024062-001", "INV-20240620-001", "FACT-20241340-001", "FACT-20240620-000"} {
		_, _, err := invoicing.ParseNumber(bad)
		assert.Error(t, err, bad)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func newInvoice(t *testing.T) *entity.Invoice {
	t.Helper()
	issued := time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC)
	inv, err := invoicing.NewInvoice("id-1", "FACT-20240620-001", validDraft(), invoicing.DefaultRules(), issued)
	require.NoError(t, err)
	return inv
}

func TestNewInvoice_FechasYEstado(t *testing.T) {
	inv := newInvoice(t)
	assert.Equal(t, entity.InvoiceStatusPending, inv.Status)
	assert.Equal(t, "EUR", inv.Currency)
	assert.Equal(t, time.Date(2024, 7, 20, 10, 0, 0, 0, time.UTC), inv.DueDate)
	assert.Nil(t, inv.PaidAt)
	assert.Equal(t, "240.00", inv.Totals().Total.StringFixed(2))
}

func TestNewInvoice_RechazaBorradorInvalido(t *testing.T) {
	d := validDraft()
	d.ClientName = ""
	_, err := invoicing.NewInvoice("id", "FACT-20240620-001", d, invoicing.DefaultRules(), time.Now())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEditItems_RecalculaTotales(t *testing.T) {
	inv := newInvoice(t)
	items := []entity.LineItem{
		{Description: "Mixage", Quantity: dec("3"), UnitPrice: dec("33.33"), VATRate: dec("5.5")},
		{Description: "Mastering", Quantity: dec("1"), UnitPrice: dec("150"), VATRate: dec("20")},
	}
	require.NoError(t, invoicing.EditItems(inv, items, invoicing.DefaultRules(), time.Now()))

	var sum decimal.Decimal
	for _, it := range inv.Items {
		sum = sum.Add(it.Totals().Total)
	}
	assert.True(t, inv.Totals().Total.Equal(sum))
	assert.True(t, inv.Totals().Total.Equal(decimal.RequireFromString("285.48945")))
}

func TestEditItems_FacturaPagada(t *testing.T) {
	inv := newInvoice(t)
	_, err := invoicing.MarkPaid(inv, "pi_123", entity.PaymentProviderStripe, time.Now())
	require.NoError(t, err)
	before := inv.Totals()

	err = invoicing.EditItems(inv, []entity.LineItem{{Description: "x", Quantity: dec("1"), UnitPrice: dec("1"), VATRate: dec("0")}}, invoicing.DefaultRules(), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Len(t, inv.Items, 1)
	assert.True(t, before.Total.Equal(inv.Totals().Total))
}

func TestMarkPaid_IdempotenteYConflicto(t *testing.T) {
	inv := newInvoice(t)
	now := time.Date(2024, 6, 21, 9, 0, 0, 0, time.UTC)

	changed, err := invoicing.MarkPaid(inv, "pi_123", entity.PaymentProviderStripe, now)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, inv.PaidAt)
	assert.Equal(t, now, *inv.PaidAt)

	// Misma referencia: no-op, paidAt no cambia.
	changed, err = invoicing.MarkPaid(inv, "pi_123", entity.PaymentProviderStripe, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, now, *inv.PaidAt)

	// Otra referencia: conflicto, la referencia original se conserva.
	_, err = invoicing.MarkPaid(inv, "paypal_fake_1", entity.PaymentProviderPayPal, now)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "pi_123", inv.PaymentReference)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
}

func TestMarkPaid_ReferenciaVacia(t *testing.T) {
	inv := newInvoice(t)
	_, err := invoicing.MarkPaid(inv, " ", entity.PaymentProviderManual, time.Now())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, entity.InvoiceStatusPending, inv.Status)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "105.49 €", invoicing.FormatMoney(decimal.RequireFromString("105.48945"), "EUR"))
	assert.Equal(t, "240.00 $", invoicing.FormatMoney(decimal.NewFromInt(240), "usd"))
	assert.Equal(t, "1.00 CHF", invoicing.FormatMoney(decimal.NewFromInt(1), "CHF"))
}
