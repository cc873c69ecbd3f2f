package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/studio-billing/internal/application/dto"
)

func TestAmount_VaciosCuentanComoNulos(t *testing.T) {
	var in dto.LineItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quantity":"","unitPrice":"   ","vatRate":null}`), &in))
	assert.False(t, in.Quantity.Valid)
	assert.False(t, in.UnitPrice.Valid)
	assert.False(t, in.VATRate.Valid)
}

func TestAmount_NumeroYString(t *testing.T) {
	var in dto.LineItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quantity":2,"unitPrice":" 33.33 ","vatRate":"5.5"}`), &in))
	items := dto.ToLineItems([]dto.LineItemRequest{in})
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].Quantity.Decimal.String())
	assert.Equal(t, "33.33", items[0].UnitPrice.Decimal.String())
	assert.Equal(t, "5.5", items[0].VATRate.Decimal.String())
}

func TestAmount_TextoNoNumerico(t *testing.T) {
	var in dto.LineItemRequest
	assert.Error(t, json.Unmarshal([]byte(`{"quantity":"dos"}`), &in))
}
