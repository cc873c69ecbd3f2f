package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/studio-billing/internal/domain/entity"
)

// Issuer datos del emisor impresos en PDF y XML.
type Issuer struct {
	Name    string
	Address string
	VATID   string
	Email   string
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, issuer Issuer) ([]byte, error)
}

// InvoiceXMLBuilder genera el documento UBL 2.1 de una factura.
type InvoiceXMLBuilder interface {
	BuildInvoiceXML(invoice *entity.Invoice, issuer Issuer) ([]byte, error)
}

// DocumentService exporta facturas a PDF y XML.
type DocumentService struct {
	invoices *InvoiceService
	pdf      InvoicePDFGenerator
	xml      InvoiceXMLBuilder
	issuer   Issuer
}

// NewDocumentService construye el servicio inyectando sus generadores.
func NewDocumentService(invoices *InvoiceService, pdf InvoicePDFGenerator, xml InvoiceXMLBuilder, issuer Issuer) *DocumentService {
	return &DocumentService{invoices: invoices, pdf: pdf, xml: xml, issuer: issuer}
}

// DownloadInvoicePDF devuelve el PDF y el nombre de archivo sugerido.
func (s *DocumentService) DownloadInvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	doc, err := s.pdf.GenerateInvoicePDF(ctx, inv, s.issuer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return doc, inv.Number + ".pdf", nil
}

// DownloadInvoiceXML devuelve el UBL y el nombre de archivo sugerido.
func (s *DocumentService) DownloadInvoiceXML(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	doc, err := s.xml.BuildInvoiceXML(inv, s.issuer)
	if err != nil {
		return nil, "", fmt.Errorf("xml: generación fallida: %w", err)
	}
	return doc, inv.Number + ".xml", nil
}
