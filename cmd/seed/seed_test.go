package main

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/studio-billing/internal/application/billing"
	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
	"github.com/jhoicas/studio-billing/internal/infrastructure/memory"
)

const export = `invoice_ref;client_name;client_address;description;quantity;unit_price;vat_rate;paid_reference
A1;Café Lumière;3 place d'Italie;Séance;2;100;20;
A1;Café Lumière;3 place d'Italie;Tirages;3;33,33;5,5;vir-7
B2;Studio Bêta;8 quai Est;Retouche;1;50;20;
`

func TestParseCSV_AgrupaFilasPorReferencia(t *testing.T) {
	got, err := parseCSV(strings.NewReader(export), parseOptions{Delimiter: ';'})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "A1", got[0].Ref)
	assert.Equal(t, "Café Lumière", got[0].Draft.ClientName)
	require.Len(t, got[0].Draft.Items, 2)
	assert.Equal(t, "33.33", got[0].Draft.Items[1].UnitPrice.Decimal.String())
	assert.Equal(t, "vir-7", got[0].PaidReference)
	assert.Empty(t, got[1].PaidReference)
}

func TestParseCSV_Latin1(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(export)
	require.NoError(t, err)

	got, err := parseCSV(strings.NewReader(latin1), parseOptions{Charset: "iso-8859-1", Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, "Studio Bêta", got[1].Draft.ClientName)
}

func TestParseCSV_Errores(t *testing.T) {
	_, err := parseCSV(strings.NewReader("invoice_ref;client_name\nA;B\n"), parseOptions{Delimiter: ';'})
	assert.ErrorContains(t, err, "client_address")

	bad := strings.Replace(export, "2;100", "dos;100", 1)
	_, err = parseCSV(strings.NewReader(bad), parseOptions{Delimiter: ';'})
	assert.ErrorContains(t, err, "quantity")

	_, err = parseCSV(strings.NewReader(export), parseOptions{Charset: "ebcdic"})
	assert.Error(t, err)
}

func TestSeed_PasaPorElMotor(t *testing.T) {
	invoices, err := parseCSV(strings.NewReader(export), parseOptions{Delimiter: ';'})
	require.NoError(t, err)
	svc := billing.NewInvoiceService(memory.NewInvoiceRepository(), memory.NewSequence(), billing.Config{
		Rules: invoicing.DefaultRules(),
	}, zerolog.Nop())

	created, err := seed(context.Background(), svc, invoices)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Regexp(t, `-001$`, created[0].Number)
	assert.Regexp(t, `-002$`, created[1].Number)
	assert.Equal(t, entity.InvoiceStatusPaid, created[0].Status)
	assert.Equal(t, "345.48945", created[0].Totals().Total.String())
	assert.Equal(t, entity.InvoiceStatusPending, created[1].Status)
}

func TestSeed_FilaInvalidaDetiene(t *testing.T) {
	invoices, err := parseCSV(strings.NewReader(strings.Replace(export, "8 quai Est", "", 1)), parseOptions{Delimiter: ';'})
	require.NoError(t, err)
	svc := billing.NewInvoiceService(memory.NewInvoiceRepository(), memory.NewSequence(), billing.Config{
		Rules: invoicing.DefaultRules(),
	}, zerolog.Nop())

	_, err = seed(context.Background(), svc, invoices)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "B2")
}
