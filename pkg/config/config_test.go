package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]string) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.Billing.Currency)
	assert.Equal(t, 30, cfg.Billing.PaymentTermDays)
	assert.Equal(t, 5*time.Second, cfg.Billing.GatewayTimeout)
	assert.Equal(t, "Europe/Paris", cfg.Billing.Location.String())
	require.Len(t, cfg.Billing.VATRates, 4)
	assert.Equal(t, "5.5", cfg.Billing.VATRates[1].String())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Payments.FakeIntentTTL)
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]string{
		"BILLING_VAT_RATES":       "0, 7.7 ,19",
		"BILLING_CURRENCY":        "chf",
		"BILLING_GATEWAY_TIMEOUT": "750ms",
		"BILLING_STORE":           "memory",
		"NOTIFY_RECIPIENTS":       "a@studio.test, b@studio.test",
		"HTTP_PORT":               "9000",
	}))
	require.NoError(t, err)

	assert.Equal(t, "CHF", cfg.Billing.Currency)
	assert.Equal(t, 750*time.Millisecond, cfg.Billing.GatewayTimeout)
	assert.Len(t, cfg.Billing.VATRates, 3)
	assert.Equal(t, BackendMemory, cfg.Billing.Sequence, "memoria implica consecutivo en memoria")
	assert.Equal(t, []string{"a@studio.test", "b@studio.test"}, cfg.Notify.Recipients)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.True(t, cfg.Billing.Rules().AllowsRate(cfg.Billing.VATRates[1]))
}

func TestFromViper_Invalido(t *testing.T) {
	cases := map[string]map[string]string{
		"currency":  {"BILLING_CURRENCY": "EURO"},
		"vat rates": {"BILLING_VAT_RATES": "20,abc"},
		"timeout":   {"BILLING_GATEWAY_TIMEOUT": "soon"},
		"timezone":  {"BILLING_TIMEZONE": "Mars/Olympus"},
		"sequence":  {"BILLING_SEQUENCE": "etcd"},
		"terms":     {"BILLING_PAYMENT_TERM_DAYS": "0"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fromViper(newViper(values))
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "billing", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/billing?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
