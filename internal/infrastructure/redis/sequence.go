// Package redis implementa el consecutivo diario de facturas sobre Redis (INCR atómico).
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
	"github.com/jhoicas/studio-billing/internal/domain/repository"
	"github.com/jhoicas/studio-billing/pkg/config"
)

var _ repository.SequenceSource = (*Sequence)(nil)

const keyInvoiceSequence = "invoice_seq:%s"

// keyTTL conserva el contador del día anterior mientras pueda haber relojes desfasados.
const keyTTL = 48 * time.Hour

// NewClient cliente Redis desde la configuración.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Sequence consecutivo por día: INCR invoice_seq:YYYYMMDD + EXPIRE en una transacción.
type Sequence struct {
	client goredis.UniversalClient
}

// NewSequence construye la fuente.
func NewSequence(client goredis.UniversalClient) *Sequence {
	return &Sequence{client: client}
}

// Key clave del contador del día.
func Key(day time.Time) string {
	return fmt.Sprintf(keyInvoiceSequence, invoicing.DayKey(day))
}

func (s *Sequence) Next(ctx context.Context, day time.Time) (int64, error) {
	key := Key(day)
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, keyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, domain.NewGatewayError("next sequence", err)
	}
	return incr.Val(), nil
}
