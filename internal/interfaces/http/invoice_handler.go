package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/studio-billing/internal/application/billing"
	"github.com/jhoicas/studio-billing/internal/application/dto"
	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/repository"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	invoices  *billing.InvoiceService
	documents *billing.DocumentService
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices *billing.InvoiceService, documents *billing.DocumentService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, documents: documents}
}

// Preview godoc
// @Summary      Vista previa de totales
// @Description  Calcula los totales de un borrador sin persistirlo. Los campos vacíos cuentan como 0;
//               issues lista lo que impediría emitir la factura.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateInvoiceRequest  true  "Borrador"
// @Success      200   {object}  dto.PreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if handled, err := parseBody(c, &in); handled {
		return err
	}
	draft := in.Draft()
	items, totals, err := h.invoices.Preview(draft)
	if err != nil && !errors.Is(err, domain.ErrValidation) {
		return writeError(c, err)
	}
	return c.JSON(dto.NewPreviewResponse(items, totals, h.invoices.Rules().Currency, err))
}

// Create godoc
// @Summary      Emitir factura
// @Description  Valida el borrador, asigna el número FACT-YYYYMMDD-NNN y persiste la factura en estado pending.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateInvoiceRequest  true  "Cliente y líneas"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if handled, err := parseBody(c, &in); handled {
		return err
	}
	inv, err := h.invoices.Create(c.UserContext(), in.Draft())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInvoiceResponse(inv))
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Param        status  query     string  false  "pending | paid"
// @Param        limit   query     int     false  "Máx. resultados (default 20, max 100)"
// @Param        offset  query     int     false  "Desplazamiento"
// @Success      200     {object}  dto.InvoiceListResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Failure      503     {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var q dto.ListInvoicesRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	if err := dto.Validate(&q); err != nil {
		return writeError(c, err)
	}
	q.DefaultPage()
	list, total, err := h.invoices.List(c.UserContext(), repository.InvoiceFilter{
		Status: entity.InvoiceStatus(q.Status),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInvoiceListResponse(list, q.PageRequest, total))
}

// GetByID godoc
// @Summary      Detalle de factura
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.invoices.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// EditItems godoc
// @Summary      Reemplazar líneas
// @Description  Solo en facturas pendientes; los totales se recalculan.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID de la factura"
// @Param        body  body      dto.UpdateItemsRequest  true  "Líneas"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/items [put]
func (h *InvoiceHandler) EditItems(c *fiber.Ctx) error {
	var in dto.UpdateItemsRequest
	if handled, err := parseBody(c, &in); handled {
		return err
	}
	inv, err := h.invoices.EditItems(c.UserContext(), c.Params("id"), dto.ToLineItems(in.Items))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// MarkPaid godoc
// @Summary      Confirmación manual de pago
// @Description  Idempotente para la misma referencia; otra referencia sobre una factura pagada es un conflicto.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "ID de la factura"
// @Param        body  body      dto.MarkPaidRequest  true  "Referencia del pago"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	var in dto.MarkPaidRequest
	if handled, err := parseBody(c, &in); handled {
		return err
	}
	inv, err := h.invoices.MarkPaid(c.UserContext(), c.Params("id"), in.PaymentReference, entity.PaymentProviderManual)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// DownloadPDF godoc
// @Summary      Descargar PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	doc, name, err := h.documents.DownloadInvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(doc)
}

// DownloadXML godoc
// @Summary      Descargar UBL 2.1
// @Tags         invoices
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/xml [get]
func (h *InvoiceHandler) DownloadXML(c *fiber.Ctx) error {
	doc, name, err := h.documents.DownloadInvoiceXML(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(doc)
}

// Stats godoc
// @Summary      Panel de facturación
// @Description  Cobrado en el mes en curso y total pendiente.
// @Tags         billing
// @Produce      json
// @Success      200  {object}  dto.BillingStatsResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/billing/stats [get]
func (h *InvoiceHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.invoices.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewBillingStatsResponse(stats, h.invoices.Rules().Currency))
}
