package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/studio-billing/internal/domain/entity"
)

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func item(qty, price, rate string) entity.LineItem {
	return entity.LineItem{Description: "Mixage", Quantity: dec(qty), UnitPrice: dec(price), VATRate: dec(rate)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s", want, got.String())
}

func TestLineItemTotals_EjemploEntero(t *testing.T) {
	tot := item("2", "100", "20").Totals()
	assertDecimal(t, "200", tot.Subtotal)
	assertDecimal(t, "40", tot.VATAmount)
	assertDecimal(t, "240", tot.Total)
}

// Sin redondeo intermedio: 99.99 × 5.5 % = 5.49945 exacto.
func TestLineItemTotals_SinRedondeoIntermedio(t *testing.T) {
	tot := item("3", "33.33", "5.5").Totals()
	assertDecimal(t, "99.99", tot.Subtotal)
	assertDecimal(t, "5.49945", tot.VATAmount)
	assertDecimal(t, "105.48945", tot.Total)
	assert.Equal(t, "105.49", tot.Total.StringFixed(2))
}

func TestLineItemTotals_CamposVaciosCuentanComoCero(t *testing.T) {
	li := entity.LineItem{Description: "borrador", UnitPrice: dec("50")}
	tot := li.Totals()
	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.VATAmount.IsZero())
	assert.True(t, tot.Total.IsZero())

	sinTasa := entity.LineItem{Quantity: dec("2"), UnitPrice: dec("10")}
	assertDecimal(t, "20", sinTasa.Totals().Total)
}

func TestLineItemTotals_Propiedades(t *testing.T) {
	casos := []entity.LineItem{
		item("1", "0.01", "5.5"),
		item("7", "19.99", "20"),
		item("0.5", "1234.567", "10"),
		item("13", "3.333", "0"),
	}
	for _, li := range casos {
		tot := li.Totals()
		assert.True(t, tot.Total.Equal(tot.Subtotal.Add(tot.VATAmount)))
		assert.True(t, tot.VATAmount.Equal(tot.Subtotal.Mul(li.VATRate.Decimal).Div(decimal.NewFromInt(100))))
	}
}

// La suma de muchas líneas no acumula deriva de redondeo.
func TestSumTotals_SumaDeLineas(t *testing.T) {
	items := make([]entity.LineItem, 0, 300)
	for i := 0; i < 300; i++ {
		items = append(items, item("3", "33.33", "5.5"))
	}
	tot := entity.SumTotals(items)
	assertDecimal(t, "29997", tot.Subtotal)
	assertDecimal(t, "1649.835", tot.VATAmount)
	assertDecimal(t, "31646.835", tot.Total)

	vacio := entity.SumTotals(nil)
	assert.True(t, vacio.Total.IsZero())
}

func TestInvoiceClone_NoCompartePunteros(t *testing.T) {
	inv := &entity.Invoice{ID: "a", Items: []entity.LineItem{item("1", "10", "20")}}
	c := inv.Clone()
	c.Items[0].Description = "otro"
	assert.Equal(t, "Mixage", inv.Items[0].Description)
	assertDecimal(t, "12", inv.Totals().Total)
}
