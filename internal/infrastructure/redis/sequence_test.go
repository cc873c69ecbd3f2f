package redis_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/infrastructure/redis"
)

func TestKey(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata no disponible")
	}
	// 23:30 UTC del 19 ya es el 20 en París.
	day := time.Date(2024, 6, 19, 23, 30, 0, 0, time.UTC).In(paris)
	assert.Equal(t, "invoice_seq:20240620", redis.Key(day))
}

func TestSequence_SinConexionEsErrorDeGateway(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	_, err := redis.NewSequence(client).Next(context.Background(), time.Now())
	assert.ErrorIs(t, err, domain.ErrGateway)
}
