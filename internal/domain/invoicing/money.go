package invoicing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// CurrencySymbol símbolo de la moneda; si no se conoce, el código ISO.
func CurrencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code
}

// FormatMoney formatea un importe para presentación: dos decimales + símbolo ("105.49 €").
// Es el único punto donde se redondea.
func FormatMoney(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + CurrencySymbol(currency)
}

// RoundCents redondea a céntimos (comparaciones con importes de pasarelas de pago).
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
