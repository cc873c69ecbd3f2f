// Package pdf genera la representación gráfica de una factura con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + NIF IVA     │  N° Factura + Fechas         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + dirección + NIF IVA                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | P.Unit | IVA% | Total HT        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total HT / IVA / TOTAL TTC                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: estado de pago + datos bancarios (RIB)              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/studio-billing/internal/application/billing"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorPaid    = &props.Color{Red: 0, Green: 128, Blue: 0}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, issuer billing.Issuer) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.Number, true).
		WithAuthor(issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, issuer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(inv)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(inv)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(inv *entity.Invoice, issuer billing.Issuer) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New(issuer.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(issuer.Address, props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New("N° TVA: "+nonEmpty(issuer.VATID, "—"), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Date: "+inv.IssueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Échéance: "+inv.DueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

func clientRow(inv *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s   |   N° TVA: %s",
				inv.ClientAddress,
				nonEmpty(inv.ClientVAT, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 5, align.Left),
		h("Qté", 1, align.Center),
		h("Prix unit. HT", 2, align.Right),
		h("TVA %", 1, align.Center),
		h("Total HT", 3, align.Right),
	)
}

// itemRows una fila por línea; los importes se redondean solo al imprimir.
func itemRows(inv *entity.Invoice) []core.Row {
	rows := make([]core.Row, 0, len(inv.Items))
	for _, it := range inv.Items {
		t := it.Totals()
		rows = append(rows, row.New(7).Add(
			col.New(5).Add(text.New(it.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(value(it.Quantity).String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(
				invoicing.FormatMoney(value(it.UnitPrice), inv.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(value(it.VATRate).String()+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(
				invoicing.FormatMoney(t.Subtotal, inv.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return rows
}

func totalsRow(inv *entity.Invoice) core.Row {
	totals := inv.Totals()
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	amount := func(d decimal.Decimal, top float64) core.Component {
		return text.New(invoicing.FormatMoney(d, inv.Currency), props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top,
		})
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total HT:", 0),
			label("TVA:", 6),
			grand("TOTAL TTC:", 12),
		),
		col.New(3).Add(
			amount(totals.Subtotal, 0),
			amount(totals.VATAmount, 6),
			grand(invoicing.FormatMoney(totals.Total, inv.Currency), 12),
		),
	)
}

func footerRows(inv *entity.Invoice) []core.Row {
	var rows []core.Row
	if inv.IsPaid() {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("PAYÉE le %s (réf. %s)", inv.PaidAt.Format(dateLayout), inv.PaymentReference), props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPaid, Top: 2,
			}),
		)))
	} else {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("À régler avant le "+inv.DueDate.Format(dateLayout), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		)))
	}
	if inv.BankDetails != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Coordonnées bancaires (RIB): "+inv.BankDetails, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func value(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
