package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/studio-billing/internal/domain/entity"
)

// Columnas esperadas en la cabecera (el orden es libre).
const (
	colRef           = "invoice_ref"
	colClientName    = "client_name"
	colClientAddress = "client_address"
	colClientVAT     = "client_vat"
	colBankDetails   = "bank_details"
	colDescription   = "description"
	colQuantity      = "quantity"
	colUnitPrice     = "unit_price"
	colVATRate       = "vat_rate"
	colPaidReference = "paid_reference"
)

var requiredColumns = []string{colRef, colClientName, colClientAddress, colDescription, colQuantity, colUnitPrice, colVATRate}

type parseOptions struct {
	Charset   string // utf-8 | iso-8859-1
	Delimiter rune
}

// seedInvoice una factura del export: las filas con el mismo invoice_ref son sus líneas.
type seedInvoice struct {
	Ref           string
	Draft         entity.InvoiceDraft
	PaidReference string
}

func decodeCharset(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset %q no soportado", charset)
	}
}

// parseCSV agrupa las filas por invoice_ref respetando el orden de aparición.
// Los importes admiten coma decimal ("33,33"); una celda vacía queda como campo vacío.
func parseCSV(r io.Reader, opts parseOptions) ([]seedInvoice, error) {
	in, err := decodeCharset(r, opts.Charset)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(in)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	var (
		out   []seedInvoice
		byRef = map[string]int{}
		line  = 1
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		ref := get(colRef)
		if ref == "" {
			return nil, fmt.Errorf("línea %d: %s vacío", line, colRef)
		}
		item := entity.LineItem{Description: get(colDescription)}
		for _, f := range []struct {
			col string
			dst *decimal.NullDecimal
		}{
			{colQuantity, &item.Quantity},
			{colUnitPrice, &item.UnitPrice},
			{colVATRate, &item.VATRate},
		} {
			if *f.dst, err = parseAmount(get(f.col)); err != nil {
				return nil, fmt.Errorf("línea %d: %s: %w", line, f.col, err)
			}
		}

		pos, seen := byRef[ref]
		if !seen {
			pos = len(out)
			byRef[ref] = pos
			out = append(out, seedInvoice{
				Ref: ref,
				Draft: entity.InvoiceDraft{
					ClientName:    get(colClientName),
					ClientAddress: get(colClientAddress),
					ClientVAT:     get(colClientVAT),
					BankDetails:   get(colBankDetails),
				},
			})
		}
		out[pos].Draft.Items = append(out[pos].Draft.Items, item)
		if paid := get(colPaidReference); paid != "" {
			out[pos].PaidReference = paid
		}
	}
	return out, nil
}

func parseAmount(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("importe %q inválido", s)
	}
	return decimal.NewNullDecimal(d), nil
}
