package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/studio-billing/internal/domain"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Lo usa la importación masiva: todas las facturas del lote o ninguna.
func (r *TxRunner) Run(ctx context.Context, fn func(invoices *InvoiceRepo, seq *SequenceRepo) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.NewGatewayError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceRepository(tx), NewSequenceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.NewGatewayError("commit transaction", fmt.Errorf("commit: %w", err))
	}
	return nil
}
