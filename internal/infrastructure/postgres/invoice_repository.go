package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Las líneas se guardan como documento jsonb; subtotal, vat_amount y total se
// desnormalizan para los agregados del panel.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// lineItemDoc forma persistida de una línea. Los importes vacíos se guardan como null.
type lineItemDoc struct {
	Description string              `json:"description"`
	Quantity    decimal.NullDecimal `json:"quantity"`
	UnitPrice   decimal.NullDecimal `json:"unitPrice"`
	VATRate     decimal.NullDecimal `json:"vatRate"`
}

func encodeItems(items []entity.LineItem) ([]byte, error) {
	docs := lo.Map(items, func(it entity.LineItem, _ int) lineItemDoc {
		return lineItemDoc{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice, VATRate: it.VATRate}
	})
	return json.Marshal(docs)
}

func decodeItems(raw []byte) ([]entity.LineItem, error) {
	var docs []lineItemDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	return lo.Map(docs, func(d lineItemDoc, _ int) entity.LineItem {
		return entity.LineItem{Description: d.Description, Quantity: d.Quantity, UnitPrice: d.UnitPrice, VATRate: d.VATRate}
	}), nil
}

const invoiceColumns = `
	id, number, client_name, client_address, client_vat, bank_details, currency, items,
	issue_date, due_date, status, paid_at, payment_reference, payment_provider,
	created_at, updated_at`

// Insert persiste la factura completa en una sola sentencia.
func (r *InvoiceRepo) Insert(ctx context.Context, inv *entity.Invoice) error {
	items, err := encodeItems(inv.Items)
	if err != nil {
		return fmt.Errorf("codificar líneas: %w", err)
	}
	totals := inv.Totals()
	query := `
		INSERT INTO invoices (id, number, client_name, client_address, client_vat, bank_details, currency, items,
		                      subtotal, vat_amount, total, issue_date, due_date, status,
		                      paid_at, payment_reference, payment_provider, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.ClientName, inv.ClientAddress,
		nullIfEmpty(inv.ClientVAT), nullIfEmpty(inv.BankDetails), inv.Currency, items,
		totals.Subtotal, totals.VATAmount, totals.Total,
		inv.IssueDate, inv.DueDate, string(inv.Status),
		inv.PaidAt, nullIfEmpty(inv.PaymentReference), nullIfEmpty(inv.PaymentProvider),
		inv.CreatedAt, inv.UpdatedAt,
	)
	return mapErr("insert invoice", err)
}

// FindByID obtiene una factura por ID.
func (r *InvoiceRepo) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	row := r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		return nil, mapErr("find invoice", err)
	}
	return inv, nil
}

// UpdateStatus transición condicional: WHERE status = expected.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, expected, next entity.InvoiceStatus, f repository.StatusFields) (bool, error) {
	query := `
		UPDATE invoices
		SET status            = $3,
		    paid_at           = $4,
		    payment_reference = $5,
		    payment_provider  = $6,
		    updated_at        = $7
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, string(expected), string(next),
		f.PaidAt, f.PaymentReference, nullIfEmpty(f.PaymentProvider), f.UpdatedAt)
	if err != nil {
		return false, mapErr("update invoice status", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, id)
}

// UpdateItems reemplaza líneas y totales desnormalizados si el estado sigue siendo expected.
func (r *InvoiceRepo) UpdateItems(ctx context.Context, id string, expected entity.InvoiceStatus, items []entity.LineItem, updatedAt time.Time) (bool, error) {
	raw, err := encodeItems(items)
	if err != nil {
		return false, fmt.Errorf("codificar líneas: %w", err)
	}
	totals := entity.SumTotals(items)
	query := `
		UPDATE invoices
		SET items = $3, subtotal = $4, vat_amount = $5, total = $6, updated_at = $7
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, string(expected), raw,
		totals.Subtotal, totals.VATAmount, totals.Total, updatedAt)
	if err != nil {
		return false, mapErr("update invoice items", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, id)
}

func (r *InvoiceRepo) ensureExists(ctx context.Context, id string) error {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)`, id).Scan(&exists); err != nil {
		return mapErr("check invoice", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

// List página ordenada por emisión descendente. Limit 0 = sin límite.
func (r *InvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	status := string(filter.Status)

	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE ($1 = '' OR status = $1)`, status,
	).Scan(&total); err != nil {
		return nil, 0, mapErr("count invoices", err)
	}

	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR status = $1)
		ORDER BY issue_date DESC, number DESC
		LIMIT NULLIF($2, 0) OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, mapErr("list invoices", err)
	}
	defer rows.Close()

	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, mapErr("scan invoice", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr("list invoices", err)
	}
	return list, total, nil
}

// Revenue: cobrado desde since (por paid_at) y pendiente total.
func (r *InvoiceRepo) Revenue(ctx context.Context, since time.Time) (*repository.RevenueStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'paid' AND paid_at >= $1),
			COALESCE(SUM(total) FILTER (WHERE status = 'paid' AND paid_at >= $1), 0),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COALESCE(SUM(total) FILTER (WHERE status = 'pending'), 0)
		FROM invoices`
	var s repository.RevenueStats
	if err := r.q.QueryRow(ctx, query, since).Scan(&s.PaidCount, &s.PaidTotal, &s.PendingCount, &s.PendingTotal); err != nil {
		return nil, mapErr("revenue", err)
	}
	return &s, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv                                     entity.Invoice
		status                                  string
		clientVAT, bankDetails, payRef, payProv *string
		items                                   []byte
	)
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.ClientName, &inv.ClientAddress, &clientVAT, &bankDetails,
		&inv.Currency, &items, &inv.IssueDate, &inv.DueDate, &status,
		&inv.PaidAt, &payRef, &payProv, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	inv.ClientVAT = deref(clientVAT)
	inv.BankDetails = deref(bankDetails)
	inv.PaymentReference = deref(payRef)
	inv.PaymentProvider = deref(payProv)
	if inv.Items, err = decodeItems(items); err != nil {
		return nil, fmt.Errorf("decodificar líneas de %s: %w", inv.Number, err)
	}
	return &inv, nil
}
