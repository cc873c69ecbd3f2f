package repository

import (
	"context"
	"time"

	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StatusFields campos que acompañan una transición de estado.
type StatusFields struct {
	PaidAt           time.Time
	PaymentReference string
	PaymentProvider  string
	UpdatedAt        time.Time
}

// InvoiceFilter filtro de listado. Status vacío = todos.
type InvoiceFilter struct {
	Status entity.InvoiceStatus
	Limit  int
	Offset int
}

// RevenueStats agregados para el panel de facturación.
type RevenueStats struct {
	PaidCount    int
	PaidTotal    decimal.Decimal // facturas cobradas desde la fecha indicada
	PendingCount int
	PendingTotal decimal.Decimal // todas las pendientes
}

// InvoiceRepository puerto de persistencia de facturas (gateway hacia el almacén de documentos).
// Todas las implementaciones envuelven los fallos de infraestructura en *domain.GatewayError.
type InvoiceRepository interface {
	// Insert persiste una factura nueva. domain.ErrDuplicate si el id o el número ya existen.
	Insert(ctx context.Context, invoice *entity.Invoice) error
	// FindByID devuelve domain.ErrNotFound si no existe.
	FindByID(ctx context.Context, id string) (*entity.Invoice, error)
	// UpdateStatus actualización condicional: solo aplica si el estado actual es expected.
	// matched=false indica una transición obsoleta o concurrente.
	UpdateStatus(ctx context.Context, id string, expected, next entity.InvoiceStatus, fields StatusFields) (matched bool, err error)
	// UpdateItems reemplaza las líneas (y los totales derivados) si el estado actual es expected.
	UpdateItems(ctx context.Context, id string, expected entity.InvoiceStatus, items []entity.LineItem, updatedAt time.Time) (matched bool, err error)
	// List devuelve la página pedida y el total de coincidencias, ordenadas por emisión descendente.
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, int, error)
	// Revenue agrega lo cobrado desde since y lo pendiente.
	Revenue(ctx context.Context, since time.Time) (*RevenueStats, error)
}

// SequenceSource entrega el consecutivo diario de numeración de forma atómica (1, 2, 3...).
type SequenceSource interface {
	Next(ctx context.Context, day time.Time) (int64, error)
}
