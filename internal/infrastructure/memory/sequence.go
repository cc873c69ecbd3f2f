package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
)

// Sequence consecutivo diario en memoria. Next es atómico.
type Sequence struct {
	mu     sync.Mutex
	values map[string]int64
}

// NewSequence crea una fuente vacía.
func NewSequence() *Sequence {
	return &Sequence{values: make(map[string]int64)}
}

func (s *Sequence) Next(ctx context.Context, day time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, domain.NewGatewayError("next sequence", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := invoicing.DayKey(day)
	s.values[key]++
	return s.values[key], nil
}
