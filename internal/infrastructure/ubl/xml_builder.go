// Package ubl exporta facturas como documentos UBL 2.1 (perfil EN 16931).
package ubl

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/studio-billing/internal/application/billing"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
)

// Namespaces UBL 2.1.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	customizationID  = "urn:cen.eu:en16931:2017"
	invoiceTypeCode  = "380" // factura comercial
	paymentMeansSEPA = "58"  // transferencia SEPA
	unitCode         = "C62" // unidad
	dateLayout       = "2006-01-02"
)

var _ billing.InvoiceXMLBuilder = (*XMLBuilder)(nil)

// XMLBuilder construye el XML con etree. Los importes se redondean a céntimos solo aquí.
type XMLBuilder struct{}

// NewXMLBuilder crea el servicio.
func NewXMLBuilder() *XMLBuilder { return &XMLBuilder{} }

// BuildInvoiceXML genera el documento Invoice.
func (b *XMLBuilder) BuildInvoiceXML(inv *entity.Invoice, issuer billing.Issuer) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("ubl: factura nula")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)

	cbc(root, "UBLVersionID", "2.1")
	cbc(root, "CustomizationID", customizationID)
	cbc(root, "ID", inv.Number)
	cbc(root, "IssueDate", inv.IssueDate.Format(dateLayout))
	cbc(root, "DueDate", inv.DueDate.Format(dateLayout))
	cbc(root, "InvoiceTypeCode", invoiceTypeCode)
	cbc(root, "DocumentCurrencyCode", inv.Currency)

	party(root.CreateElement("cac:AccountingSupplierParty"), issuer.Name, issuer.Address, issuer.VATID, issuer.Email)
	party(root.CreateElement("cac:AccountingCustomerParty"), inv.ClientName, inv.ClientAddress, inv.ClientVAT, "")

	if inv.BankDetails != "" {
		pm := root.CreateElement("cac:PaymentMeans")
		cbc(pm, "PaymentMeansCode", paymentMeansSEPA)
		cbc(pm, "PaymentID", inv.Number)
		cbc(pm.CreateElement("cac:PayeeFinancialAccount"), "ID", inv.BankDetails)
	}
	if inv.IsPaid() {
		pp := root.CreateElement("cac:PrepaidPayment")
		cbc(pp, "ID", inv.PaymentReference)
		amount(pp, "PaidAmount", inv.Totals().Total, inv.Currency)
		cbc(pp, "ReceivedDate", inv.PaidAt.Format(dateLayout))
	}

	totals := inv.Totals()
	taxTotal := root.CreateElement("cac:TaxTotal")
	amount(taxTotal, "TaxAmount", totals.VATAmount, inv.Currency)
	for _, g := range groupByRate(inv.Items) {
		sub := taxTotal.CreateElement("cac:TaxSubtotal")
		amount(sub, "TaxableAmount", g.totals.Subtotal, inv.Currency)
		amount(sub, "TaxAmount", g.totals.VATAmount, inv.Currency)
		taxCategory(sub, "TaxCategory", g.rate)
	}

	monetary := root.CreateElement("cac:LegalMonetaryTotal")
	amount(monetary, "LineExtensionAmount", totals.Subtotal, inv.Currency)
	amount(monetary, "TaxExclusiveAmount", totals.Subtotal, inv.Currency)
	amount(monetary, "TaxInclusiveAmount", totals.Total, inv.Currency)
	if inv.IsPaid() {
		amount(monetary, "PrepaidAmount", totals.Total, inv.Currency)
		amount(monetary, "PayableAmount", decimal.Zero, inv.Currency)
	} else {
		amount(monetary, "PayableAmount", totals.Total, inv.Currency)
	}

	for i, it := range inv.Items {
		line := root.CreateElement("cac:InvoiceLine")
		cbc(line, "ID", fmt.Sprintf("%d", i+1))
		qty := cbc(line, "InvoicedQuantity", value(it.Quantity).String())
		qty.CreateAttr("unitCode", unitCode)
		amount(line, "LineExtensionAmount", it.Totals().Subtotal, inv.Currency)
		item := line.CreateElement("cac:Item")
		cbc(item, "Name", it.Description)
		taxCategory(item, "ClassifiedTaxCategory", value(it.VATRate))
		amount(line.CreateElement("cac:Price"), "PriceAmount", value(it.UnitPrice), inv.Currency)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ubl: serializar: %w", err)
	}
	return out, nil
}

func cbc(parent *etree.Element, local, text string) *etree.Element {
	el := parent.CreateElement("cbc:" + local)
	el.SetText(text)
	return el
}

func amount(parent *etree.Element, local string, v decimal.Decimal, currency string) {
	cbc(parent, local, v.StringFixed(2)).CreateAttr("currencyID", currency)
}

// taxCategory añade cac:TaxCategory con la tasa; S estándar, Z tasa cero.
func taxCategory(parent *etree.Element, local string, rate decimal.Decimal) {
	cat := parent.CreateElement("cac:" + local)
	code := "S"
	if rate.IsZero() {
		code = "Z"
	}
	cbc(cat, "ID", code)
	cbc(cat, "Percent", rate.String())
	cbc(cat.CreateElement("cac:TaxScheme"), "ID", "VAT")
}

func party(el *etree.Element, name, address, vatID, email string) {
	p := el.CreateElement("cac:Party")
	cbc(p.CreateElement("cac:PartyName"), "Name", name)
	if address != "" {
		cbc(p.CreateElement("cac:PostalAddress"), "StreetName", address)
	}
	if vatID != "" {
		scheme := p.CreateElement("cac:PartyTaxScheme")
		cbc(scheme, "CompanyID", vatID)
		cbc(scheme.CreateElement("cac:TaxScheme"), "ID", "VAT")
	}
	if email != "" {
		cbc(p.CreateElement("cac:Contact"), "ElectronicMail", email)
	}
}

type rateGroup struct {
	rate   decimal.Decimal
	totals entity.Totals
}

// groupByRate agrupa las líneas por tasa de IVA (orden ascendente).
func groupByRate(items []entity.LineItem) []rateGroup {
	byRate := lo.GroupBy(items, func(it entity.LineItem) string { return value(it.VATRate).String() })
	groups := make([]rateGroup, 0, len(byRate))
	for _, lines := range byRate {
		groups = append(groups, rateGroup{rate: value(lines[0].VATRate), totals: entity.SumTotals(lines)})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].rate.LessThan(groups[j].rate) })
	return groups
}

func value(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
