package entity

import "time"

// InvoiceStatus estado de cobro de una factura. Transición única: pending → paid.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid indica si el estado es conocido.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// Proveedores de pago que pueden confirmar una factura.
const (
	PaymentProviderStripe = "stripe"
	PaymentProviderPayPal = "paypal"
	PaymentProviderManual = "manual"
)

// InvoiceDraft datos aportados por quien crea la factura (cliente + líneas).
type InvoiceDraft struct {
	ClientName    string
	ClientAddress string
	ClientVAT     string
	BankDetails   string // RIB
	Items         []LineItem
}

// Invoice representa una factura emitida. Los totales no se almacenan en la entidad:
// se derivan siempre de Items (ver Totals).
type Invoice struct {
	ID               string
	Number           string // FACT-YYYYMMDD-NNN, inmutable
	ClientName       string
	ClientAddress    string
	ClientVAT        string
	BankDetails      string
	Currency         string // ISO 4217
	Items            []LineItem
	IssueDate        time.Time
	DueDate          time.Time
	Status           InvoiceStatus
	PaidAt           *time.Time
	PaymentReference string // id de PaymentIntent (Stripe) u orden (PayPal)
	PaymentProvider  string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Totals agrega las líneas de la factura.
func (inv *Invoice) Totals() Totals {
	return SumTotals(inv.Items)
}

// IsPaid indica si la factura está cobrada (y por tanto congelada).
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// Clone devuelve una copia profunda (items y PaidAt no se comparten).
func (inv *Invoice) Clone() *Invoice {
	if inv == nil {
		return nil
	}
	c := *inv
	c.Items = CloneItems(inv.Items)
	if inv.PaidAt != nil {
		t := *inv.PaidAt
		c.PaidAt = &t
	}
	return &c
}
