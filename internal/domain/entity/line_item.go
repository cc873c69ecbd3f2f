package entity

import "github.com/shopspring/decimal"

// LineItem representa una línea facturable. Quantity, UnitPrice y VATRate admiten
// valor vacío (Valid=false) mientras el borrador se edita.
type LineItem struct {
	Description string
	Quantity    decimal.NullDecimal
	UnitPrice   decimal.NullDecimal
	VATRate     decimal.NullDecimal // porcentaje, p. ej. 5.5
}

// Totals agrega subtotal (HT), IVA y total (TTC). Nunca se redondea aquí:
// el redondeo a dos decimales ocurre solo al presentar.
type Totals struct {
	Subtotal  decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal
}

// Add suma dos agregados.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Subtotal:  t.Subtotal.Add(o.Subtotal),
		VATAmount: t.VATAmount.Add(o.VATAmount),
		Total:     t.Total.Add(o.Total),
	}
}

// Totals calcula subtotal = quantity × unitPrice, vat = subtotal × rate/100, total = subtotal + vat.
// Los campos vacíos cuentan como 0. No valida ni recorta negativos.
func (li LineItem) Totals() Totals {
	subtotal := orZero(li.Quantity).Mul(orZero(li.UnitPrice))
	vat := subtotal.Mul(orZero(li.VATRate)).Shift(-2) // /100 exacto
	return Totals{
		Subtotal:  subtotal,
		VATAmount: vat,
		Total:     subtotal.Add(vat),
	}
}

// SumTotals suma los valores sin redondear de cada línea.
func SumTotals(items []LineItem) Totals {
	t := Totals{Subtotal: decimal.Zero, VATAmount: decimal.Zero, Total: decimal.Zero}
	for _, it := range items {
		t = t.Add(it.Totals())
	}
	return t
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// CloneItems copia la lista para que nadie comparta el slice interno de una factura.
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
