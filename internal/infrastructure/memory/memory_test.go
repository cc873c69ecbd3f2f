package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/repository"
	"github.com/jhoicas/studio-billing/internal/infrastructure/memory"
)

func invoice(id, number string, issued time.Time, qty string) *entity.Invoice {
	return &entity.Invoice{
		ID:        id,
		Number:    number,
		Status:    entity.InvoiceStatusPending,
		IssueDate: issued,
		Currency:  "EUR",
		Items: []entity.LineItem{{
			Description: "Mixage",
			Quantity:    decimal.NewNullDecimal(decimal.RequireFromString(qty)),
			UnitPrice:   decimal.NewNullDecimal(decimal.NewFromInt(100)),
			VATRate:     decimal.NewNullDecimal(decimal.NewFromInt(20)),
		}},
	}
}

func TestInvoiceRepository_InsertaYBusca(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInvoiceRepository()
	day := time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC)

	inv := invoice("a", "FACT-20240620-001", day, "2")
	require.NoError(t, repo.Insert(ctx, inv))

	// El almacén guarda una copia.
	inv.ClientName = "mutado"
	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, got.ClientName)

	assert.ErrorIs(t, repo.Insert(ctx, invoice("a", "FACT-20240620-009", day, "1")), domain.ErrDuplicate)
	assert.ErrorIs(t, repo.Insert(ctx, invoice("b", "FACT-20240620-001", day, "1")), domain.ErrDuplicate)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceRepository_ActualizacionesCondicionales(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInvoiceRepository()
	now := time.Date(2024, 6, 21, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, invoice("a", "FACT-20240620-001", now, "2")))

	fields := repository.StatusFields{PaidAt: now, PaymentReference: "pi_1", PaymentProvider: "stripe", UpdatedAt: now}
	matched, err := repo.UpdateStatus(ctx, "a", entity.InvoiceStatusPending, entity.InvoiceStatusPaid, fields)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = repo.UpdateStatus(ctx, "a", entity.InvoiceStatusPending, entity.InvoiceStatusPaid, fields)
	require.NoError(t, err)
	assert.False(t, matched, "una segunda transición no debe aplicar")

	matched, err = repo.UpdateItems(ctx, "a", entity.InvoiceStatusPending, nil, now)
	require.NoError(t, err)
	assert.False(t, matched)

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)
	assert.Equal(t, "pi_1", got.PaymentReference)
	assert.Len(t, got.Items, 1)
}

func TestInvoiceRepository_ListadoEIngresos(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInvoiceRepository()
	d1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	require.NoError(t, repo.Insert(ctx, invoice("a", "FACT-20240601-001", d1, "1")))
	require.NoError(t, repo.Insert(ctx, invoice("b", "FACT-20240602-001", d2, "2")))
	require.NoError(t, repo.Insert(ctx, invoice("c", "FACT-20240602-002", d2, "3")))

	list, total, err := repo.List(ctx, repository.InvoiceFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "FACT-20240602-002", list[0].Number)
	assert.Equal(t, "FACT-20240602-001", list[1].Number)

	list, _, err = repo.List(ctx, repository.InvoiceFilter{Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.UpdateStatus(ctx, "b", entity.InvoiceStatusPending, entity.InvoiceStatusPaid,
		repository.StatusFields{PaidAt: d2, PaymentReference: "pi_b", UpdatedAt: d2})
	require.NoError(t, err)

	paid, total, err := repo.List(ctx, repository.InvoiceFilter{Status: entity.InvoiceStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "b", paid[0].ID)

	stats, err := repo.Revenue(ctx, d1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PaidCount)
	assert.True(t, stats.PaidTotal.Equal(decimal.NewFromInt(240)))
	assert.Equal(t, 2, stats.PendingCount)
	assert.True(t, stats.PendingTotal.Equal(decimal.NewFromInt(480)))
}

func TestInvoiceRepository_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := memory.NewInvoiceRepository().FindByID(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSequence_PorDiaYConcurrente(t *testing.T) {
	ctx := context.Background()
	seq := memory.NewSequence()
	day := time.Date(2024, 6, 20, 8, 0, 0, 0, time.UTC)

	const n = 50
	var wg sync.WaitGroup
	seen := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := seq.Next(ctx, day)
			assert.NoError(t, err)
			seen <- v
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[int64]bool{}
	for v := range seen {
		unique[v] = true
	}
	assert.Len(t, unique, n, "los consecutivos no deben repetirse")

	next, err := seq.Next(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), next, "cada día reinicia el consecutivo")
}
