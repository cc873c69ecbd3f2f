// Package invoicing contiene las reglas puras de facturación: validación de borradores,
// numeración FACT-YYYYMMDD-NNN, transiciones de estado y formato de importes.
// No accede a la base de datos ni a la red.
package invoicing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPaymentTermDays plazo de pago por defecto (vencimiento = emisión + 30 días).
const DefaultPaymentTermDays = 30

// DefaultCurrency moneda por defecto de las facturas.
const DefaultCurrency = "EUR"

// Rules parámetros configurables de facturación.
type Rules struct {
	VATRates        []decimal.Decimal // tasas de IVA permitidas (porcentaje)
	PaymentTermDays int
	Currency        string
}

// DefaultVATRates tasas francesas: 0, 5.5, 10 y 20 %.
func DefaultVATRates() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.Zero,
		decimal.RequireFromString("5.5"),
		decimal.NewFromInt(10),
		decimal.NewFromInt(20),
	}
}

// DefaultRules reglas por defecto.
func DefaultRules() Rules {
	return Rules{
		VATRates:        DefaultVATRates(),
		PaymentTermDays: DefaultPaymentTermDays,
		Currency:        DefaultCurrency,
	}
}

// AllowsRate indica si la tasa pertenece al conjunto configurado (comparación numérica: 20 == 20.0).
func (r Rules) AllowsRate(rate decimal.Decimal) bool {
	for _, allowed := range r.VATRates {
		if allowed.Equal(rate) {
			return true
		}
	}
	return false
}

// ParseVATRates interpreta una lista separada por comas ("0,5.5,10,20").
func ParseVATRates(s string) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := decimal.NewFromString(part)
		if err != nil {
			return nil, fmt.Errorf("tasa de IVA %q: %w", part, err)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("tasa de IVA %q negativa", part)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("lista de tasas de IVA vacía")
	}
	return out, nil
}
