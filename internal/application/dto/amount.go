package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount importe de entrada. Acepta número, string o null; un string vacío o solo con
// espacios cuenta como campo vacío (así llega un input de formulario sin rellenar).
type Amount struct {
	decimal.NullDecimal
}

// UnmarshalJSON implementa json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			a.NullDecimal = decimal.NullDecimal{}
			return nil
		}
		b, _ = json.Marshal(strings.TrimSpace(s))
	}
	return a.NullDecimal.UnmarshalJSON(b)
}
