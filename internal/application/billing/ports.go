package billing

import (
	"context"

	"github.com/jhoicas/studio-billing/internal/domain/entity"
)

// EventNotifier recibe los hechos relevantes del ciclo de vida (envío de correos, etc.).
// Sus errores se registran pero nunca alteran el estado de la factura.
type EventNotifier interface {
	InvoiceCreated(ctx context.Context, invoice *entity.Invoice) error
	InvoicePaid(ctx context.Context, invoice *entity.Invoice) error
}

// Recorder métricas del motor de facturación.
type Recorder interface {
	InvoiceCreated(invoice *entity.Invoice)
	InvoicePaid(invoice *entity.Invoice)
}

type nopNotifier struct{}

func (nopNotifier) InvoiceCreated(context.Context, *entity.Invoice) error { return nil }
func (nopNotifier) InvoicePaid(context.Context, *entity.Invoice) error    { return nil }

type nopRecorder struct{}

func (nopRecorder) InvoiceCreated(*entity.Invoice) {}
func (nopRecorder) InvoicePaid(*entity.Invoice)    {}
