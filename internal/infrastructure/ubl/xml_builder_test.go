package ubl_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/studio-billing/internal/application/billing"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/infrastructure/ubl"
)

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func sampleInvoice() *entity.Invoice {
	issued := time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC)
	return &entity.Invoice{
		ID:            "inv-1",
		Number:        "FACT-20240620-002",
		ClientName:    "Studio Alpha",
		ClientAddress: "12 rue des Lilas, Paris",
		ClientVAT:     "FR123",
		BankDetails:   "FR76 3000 6000 0112 3456 7890 189",
		Currency:      "EUR",
		IssueDate:     issued,
		DueDate:       issued.AddDate(0, 0, 30),
		Status:        entity.InvoiceStatusPending,
		Items: []entity.LineItem{
			{Description: "Session", Quantity: dec("2"), UnitPrice: dec("100"), VATRate: dec("20")},
			{Description: "Master", Quantity: dec("3"), UnitPrice: dec("33.33"), VATRate: dec("5.5")},
		},
	}
}

func parse(t *testing.T, raw []byte) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(raw))
	return doc.Root()
}

func TestBuildInvoiceXML(t *testing.T) {
	raw, err := ubl.NewXMLBuilder().BuildInvoiceXML(sampleInvoice(), billing.Issuer{Name: "Le Studio", VATID: "FR999"})
	require.NoError(t, err)
	root := parse(t, raw)

	assert.Equal(t, "Invoice", root.Tag)
	assert.Equal(t, "FACT-20240620-002", root.FindElement("./cbc:ID").Text())
	assert.Equal(t, "2024-07-20", root.FindElement("./cbc:DueDate").Text())
	assert.Equal(t, "Le Studio", root.FindElement("./cac:AccountingSupplierParty/cac:Party/cac:PartyName/cbc:Name").Text())
	assert.Equal(t, "Studio Alpha", root.FindElement("./cac:AccountingCustomerParty/cac:Party/cac:PartyName/cbc:Name").Text())

	// 240 + 105.48945 → 345.49 solo al presentar.
	payable := root.FindElement("./cac:LegalMonetaryTotal/cbc:PayableAmount")
	assert.Equal(t, "345.49", payable.Text())
	assert.Equal(t, "EUR", payable.SelectAttrValue("currencyID", ""))
	assert.Equal(t, "45.50", root.FindElement("./cac:TaxTotal/cbc:TaxAmount").Text())

	subs := root.FindElements("./cac:TaxTotal/cac:TaxSubtotal")
	require.Len(t, subs, 2)
	assert.Equal(t, "5.5", subs[0].FindElement("./cac:TaxCategory/cbc:Percent").Text())
	assert.Equal(t, "20", subs[1].FindElement("./cac:TaxCategory/cbc:Percent").Text())

	lines := root.FindElements("./cac:InvoiceLine")
	require.Len(t, lines, 2)
	assert.Equal(t, "99.99", lines[1].FindElement("./cbc:LineExtensionAmount").Text())
	assert.Equal(t, "Master", lines[1].FindElement("./cac:Item/cbc:Name").Text())

	assert.NotNil(t, root.FindElement("./cac:PaymentMeans/cac:PayeeFinancialAccount/cbc:ID"))
	assert.Nil(t, root.FindElement("./cac:PrepaidPayment"))
}

func TestBuildInvoiceXML_Pagada(t *testing.T) {
	inv := sampleInvoice()
	paidAt := inv.IssueDate.AddDate(0, 0, 2)
	inv.Status = entity.InvoiceStatusPaid
	inv.PaidAt = &paidAt
	inv.PaymentReference = "pi_123"

	raw, err := ubl.NewXMLBuilder().BuildInvoiceXML(inv, billing.Issuer{Name: "Le Studio"})
	require.NoError(t, err)
	root := parse(t, raw)

	assert.Equal(t, "pi_123", root.FindElement("./cac:PrepaidPayment/cbc:ID").Text())
	assert.Equal(t, "0.00", root.FindElement("./cac:LegalMonetaryTotal/cbc:PayableAmount").Text())
}
