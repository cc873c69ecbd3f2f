// Package memory implementa el gateway de persistencia en memoria (tests, modo demo).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/repository"
)

// InvoiceRepository implementa repository.InvoiceRepository sobre un mapa protegido.
// Guarda y devuelve copias: ningún llamador comparte memoria con el almacén.
type InvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*entity.Invoice
	numbers  map[string]string
}

// NewInvoiceRepository crea un almacén vacío.
func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{
		invoices: make(map[string]*entity.Invoice),
		numbers:  make(map[string]string),
	}
}

func (r *InvoiceRepository) Insert(ctx context.Context, inv *entity.Invoice) error {
	if err := ctx.Err(); err != nil {
		return domain.NewGatewayError("insert invoice", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[inv.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.numbers[inv.Number]; ok {
		return domain.ErrDuplicate
	}
	r.invoices[inv.ID] = inv.Clone()
	r.numbers[inv.Number] = inv.ID
	return nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewGatewayError("find invoice", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return inv.Clone(), nil
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id string, expected, next entity.InvoiceStatus, f repository.StatusFields) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, domain.NewGatewayError("update invoice status", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if inv.Status != expected {
		return false, nil
	}
	paidAt := f.PaidAt
	inv.Status = next
	inv.PaidAt = &paidAt
	inv.PaymentReference = f.PaymentReference
	inv.PaymentProvider = f.PaymentProvider
	inv.UpdatedAt = f.UpdatedAt
	return true, nil
}

func (r *InvoiceRepository) UpdateItems(ctx context.Context, id string, expected entity.InvoiceStatus, items []entity.LineItem, updatedAt time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, domain.NewGatewayError("update invoice items", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if inv.Status != expected {
		return false, nil
	}
	inv.Items = entity.CloneItems(items)
	inv.UpdatedAt = updatedAt
	return true, nil
}

// List ordena por fecha de emisión descendente (y número, para empates).
func (r *InvoiceRepository) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, domain.NewGatewayError("list invoices", err)
	}
	r.mu.RLock()
	all := lo.Filter(lo.Values(r.invoices), func(inv *entity.Invoice, _ int) bool {
		return filter.Status == "" || inv.Status == filter.Status
	})
	all = lo.Map(all, func(inv *entity.Invoice, _ int) *entity.Invoice { return inv.Clone() })
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].IssueDate.Equal(all[j].IssueDate) {
			return all[i].IssueDate.After(all[j].IssueDate)
		}
		return all[i].Number > all[j].Number
	})
	total := len(all)
	if filter.Offset >= total {
		return []*entity.Invoice{}, total, nil
	}
	end := total
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return all[filter.Offset:end], total, nil
}

// Revenue: cobrado desde since (por fecha de pago) y todo lo pendiente.
func (r *InvoiceRepository) Revenue(ctx context.Context, since time.Time) (*repository.RevenueStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewGatewayError("revenue", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &repository.RevenueStats{PaidTotal: decimal.Zero, PendingTotal: decimal.Zero}
	for _, inv := range r.invoices {
		switch {
		case inv.IsPaid() && inv.PaidAt != nil && !inv.PaidAt.Before(since):
			stats.PaidCount++
			stats.PaidTotal = stats.PaidTotal.Add(inv.Totals().Total)
		case inv.Status == entity.InvoiceStatusPending:
			stats.PendingCount++
			stats.PendingTotal = stats.PendingTotal.Add(inv.Totals().Total)
		}
	}
	return stats, nil
}
