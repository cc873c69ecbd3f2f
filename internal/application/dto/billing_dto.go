package dto

import (
	"errors"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
	"github.com/jhoicas/studio-billing/internal/domain/repository"
)

// LineItemRequest línea de factura. Los importes aceptan número, string, "" o null (campo vacío).
type LineItemRequest struct {
	Description string `json:"description" validate:"max=500"`
	Quantity    Amount `json:"quantity" swaggertype:"string"`
	UnitPrice   Amount `json:"unitPrice" swaggertype:"string"`
	VATRate     Amount `json:"vatRate" swaggertype:"string"`
}

// CreateInvoiceRequest body para POST /api/invoices y POST /api/invoices/preview.
type CreateInvoiceRequest struct {
	ClientName    string            `json:"clientName" validate:"max=200"`
	ClientAddress string            `json:"clientAddress" validate:"max=500"`
	ClientVAT     string            `json:"clientVAT" validate:"max=50"`
	BankDetails   string            `json:"bankDetails" validate:"max=200"`
	Items         []LineItemRequest `json:"items" validate:"max=500,dive"`
}

// UpdateItemsRequest body para PUT /api/invoices/:id/items.
type UpdateItemsRequest struct {
	Items []LineItemRequest `json:"items" validate:"max=500,dive"`
}

// MarkPaidRequest body para POST /api/invoices/:id/pay (confirmación manual).
type MarkPaidRequest struct {
	PaymentReference string `json:"paymentReference" validate:"max=200"`
}

// ListInvoicesRequest query de GET /api/invoices.
type ListInvoicesRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=pending paid"`
}

// Draft convierte la petición al borrador de dominio.
func (r CreateInvoiceRequest) Draft() entity.InvoiceDraft {
	return entity.InvoiceDraft{
		ClientName:    r.ClientName,
		ClientAddress: r.ClientAddress,
		ClientVAT:     r.ClientVAT,
		BankDetails:   r.BankDetails,
		Items:         ToLineItems(r.Items),
	}
}

// ToLineItems convierte las líneas de la petición.
func ToLineItems(items []LineItemRequest) []entity.LineItem {
	return lo.Map(items, func(it LineItemRequest, _ int) entity.LineItem {
		return entity.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity.NullDecimal,
			UnitPrice:   it.UnitPrice.NullDecimal,
			VATRate:     it.VATRate.NullDecimal,
		}
	})
}

// LineItemResponse línea con sus totales calculados.
type LineItemResponse struct {
	Description     string              `json:"description"`
	Quantity        decimal.NullDecimal `json:"quantity" swaggertype:"string"`
	UnitPrice       decimal.NullDecimal `json:"unitPrice" swaggertype:"string"`
	VATRate         decimal.NullDecimal `json:"vatRate" swaggertype:"string"`
	Subtotal        decimal.Decimal     `json:"subtotal" swaggertype:"string"`
	VATAmount       decimal.Decimal     `json:"vatAmount" swaggertype:"string"`
	Total           decimal.Decimal     `json:"total" swaggertype:"string"`
	SubtotalDisplay string              `json:"subtotalDisplay"`
	TotalDisplay    string              `json:"totalDisplay"`
}

// TotalsResponse totales exactos y su presentación redondeada.
type TotalsResponse struct {
	Subtotal         decimal.Decimal `json:"subtotal" swaggertype:"string"`
	VATAmount        decimal.Decimal `json:"vatAmount" swaggertype:"string"`
	Total            decimal.Decimal `json:"total" swaggertype:"string"`
	SubtotalDisplay  string          `json:"subtotalDisplay"`
	VATAmountDisplay string          `json:"vatAmountDisplay"`
	TotalDisplay     string          `json:"totalDisplay"`
}

// InvoiceResponse factura completa para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	ClientName    string             `json:"clientName"`
	ClientAddress string             `json:"clientAddress"`
	ClientVAT     string             `json:"clientVAT,omitempty"`
	BankDetails   string             `json:"bankDetails,omitempty"`
	Currency      string             `json:"currency"`
	Items         []LineItemResponse `json:"items"`
	TotalsResponse
	IssueDate        string     `json:"issueDate"`
	DueDate          string     `json:"dueDate"`
	Status           string     `json:"status"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`
	PaymentReference string     `json:"paymentReference,omitempty"`
	PaymentProvider  string     `json:"paymentProvider,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// PreviewResponse totales en vivo de un borrador. Issues lista lo que impediría emitirlo.
type PreviewResponse struct {
	Items []LineItemResponse `json:"items"`
	TotalsResponse
	Currency string              `json:"currency"`
	Valid    bool                `json:"valid"`
	Issues   []domain.FieldIssue `json:"issues,omitempty"`
}

// InvoiceSummary fila del listado.
type InvoiceSummary struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	ClientName   string          `json:"clientName"`
	IssueDate    string          `json:"issueDate"`
	DueDate      string          `json:"dueDate"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total" swaggertype:"string"`
	TotalDisplay string          `json:"totalDisplay"`
}

// InvoiceListResponse respuesta de GET /api/invoices.
type InvoiceListResponse struct {
	Items []InvoiceSummary `json:"items"`
	Page  PageResponse     `json:"page"`
}

// BillingStatsResponse respuesta de GET /api/billing/stats.
type BillingStatsResponse struct {
	Currency            string          `json:"currency"`
	PaidThisMonth       int             `json:"paidThisMonth"`
	RevenueThisMonth    decimal.Decimal `json:"revenueThisMonth" swaggertype:"string"`
	RevenueDisplay      string          `json:"revenueDisplay"`
	PendingCount        int             `json:"pendingCount"`
	PendingTotal        decimal.Decimal `json:"pendingTotal" swaggertype:"string"`
	PendingTotalDisplay string          `json:"pendingTotalDisplay"`
}

const dateLayout = "2006-01-02"

// NewTotalsResponse redondea solo los campos *Display.
func NewTotalsResponse(t entity.Totals, currency string) TotalsResponse {
	return TotalsResponse{
		Subtotal:         t.Subtotal,
		VATAmount:        t.VATAmount,
		Total:            t.Total,
		SubtotalDisplay:  invoicing.FormatMoney(t.Subtotal, currency),
		VATAmountDisplay: invoicing.FormatMoney(t.VATAmount, currency),
		TotalDisplay:     invoicing.FormatMoney(t.Total, currency),
	}
}

// NewLineItemResponses mapea las líneas con sus totales.
func NewLineItemResponses(items []entity.LineItem, currency string) []LineItemResponse {
	return lo.Map(items, func(it entity.LineItem, _ int) LineItemResponse {
		t := it.Totals()
		return LineItemResponse{
			Description:     it.Description,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			VATRate:         it.VATRate,
			Subtotal:        t.Subtotal,
			VATAmount:       t.VATAmount,
			Total:           t.Total,
			SubtotalDisplay: invoicing.FormatMoney(t.Subtotal, currency),
			TotalDisplay:    invoicing.FormatMoney(t.Total, currency),
		}
	})
}

// NewPreviewResponse mapea el resultado de una vista previa. err distinto de
// *domain.ValidationError no se espera aquí.
func NewPreviewResponse(items []entity.LineItem, t entity.Totals, currency string, err error) PreviewResponse {
	resp := PreviewResponse{
		Items:          NewLineItemResponses(items, currency),
		TotalsResponse: NewTotalsResponse(t, currency),
		Currency:       currency,
		Valid:          err == nil,
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Issues = verr.Issues
	}
	return resp
}

// NewInvoiceResponse mapea la entidad a la respuesta.
func NewInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:               inv.ID,
		Number:           inv.Number,
		ClientName:       inv.ClientName,
		ClientAddress:    inv.ClientAddress,
		ClientVAT:        inv.ClientVAT,
		BankDetails:      inv.BankDetails,
		Currency:         inv.Currency,
		Items:            NewLineItemResponses(inv.Items, inv.Currency),
		TotalsResponse:   NewTotalsResponse(inv.Totals(), inv.Currency),
		IssueDate:        inv.IssueDate.Format(dateLayout),
		DueDate:          inv.DueDate.Format(dateLayout),
		Status:           string(inv.Status),
		PaidAt:           inv.PaidAt,
		PaymentReference: inv.PaymentReference,
		PaymentProvider:  inv.PaymentProvider,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}

// NewInvoiceListResponse mapea una página del listado.
func NewInvoiceListResponse(list []*entity.Invoice, page PageRequest, total int) InvoiceListResponse {
	return InvoiceListResponse{
		Items: lo.Map(list, func(inv *entity.Invoice, _ int) InvoiceSummary {
			t := inv.Totals().Total
			return InvoiceSummary{
				ID:           inv.ID,
				Number:       inv.Number,
				ClientName:   inv.ClientName,
				IssueDate:    inv.IssueDate.Format(dateLayout),
				DueDate:      inv.DueDate.Format(dateLayout),
				Status:       string(inv.Status),
				Total:        t,
				TotalDisplay: invoicing.FormatMoney(t, inv.Currency),
			}
		}),
		Page: PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
}

// NewBillingStatsResponse mapea los agregados del panel.
func NewBillingStatsResponse(s *repository.RevenueStats, currency string) BillingStatsResponse {
	return BillingStatsResponse{
		Currency:            currency,
		PaidThisMonth:       s.PaidCount,
		RevenueThisMonth:    s.PaidTotal,
		RevenueDisplay:      invoicing.FormatMoney(s.PaidTotal, currency),
		PendingCount:        s.PendingCount,
		PendingTotal:        s.PendingTotal,
		PendingTotalDisplay: invoicing.FormatMoney(s.PendingTotal, currency),
	}
}
