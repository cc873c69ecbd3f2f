package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
	"github.com/jhoicas/studio-billing/internal/domain/repository"
)

var _ repository.SequenceSource = (*SequenceRepo)(nil)

// SequenceRepo consecutivo diario atómico en la tabla invoice_sequences.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo del día (upsert atómico).
func (r *SequenceRepo) Next(ctx context.Context, day time.Time) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (day, value) VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET value = invoice_sequences.value + 1
		RETURNING value`
	var value int64
	if err := r.q.QueryRow(ctx, query, invoicing.DayKey(day)).Scan(&value); err != nil {
		return 0, mapErr("next sequence", err)
	}
	return value, nil
}
