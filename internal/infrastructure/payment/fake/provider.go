// Package fake implementa pasarelas de pago simuladas (Stripe y PayPal) para entornos
// sin credenciales. Las referencias emitidas se recuerdan en una caché con expiración.
package fake

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/studio-billing/internal/application/payment"
	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
)

// DefaultTTL vigencia por defecto de una intención emitida.
const DefaultTTL = 24 * time.Hour

// Provider pasarela simulada. Implementa payment.IntentProvider.
type Provider struct {
	name       string
	prefix     string
	withSecret bool
	cache      *gocache.Cache
	now        func() time.Time
}

// NewStripe PaymentIntents simulados: pi_fake_<uuid> con client secret.
func NewStripe(ttl time.Duration) *Provider {
	return newProvider(entity.PaymentProviderStripe, "pi_fake_", true, ttl)
}

// NewPayPal órdenes simuladas: paypal_fake_<uuid>.
func NewPayPal(ttl time.Duration) *Provider {
	return newProvider(entity.PaymentProviderPayPal, "paypal_fake_", false, ttl)
}

func newProvider(name, prefix string, withSecret bool, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Provider{
		name:       name,
		prefix:     prefix,
		withSecret: withSecret,
		cache:      gocache.New(ttl, 2*ttl),
		now:        time.Now,
	}
}

func (p *Provider) Name() string { return p.name }

func (p *Provider) CreateIntent(_ context.Context, invoiceID string, amount decimal.Decimal, currency string) (*payment.Intent, error) {
	ref := p.prefix + uuid.New().String()
	intent := &payment.Intent{
		Reference: ref,
		InvoiceID: invoiceID,
		Provider:  p.name,
		Amount:    amount,
		Currency:  currency,
		CreatedAt: p.now(),
	}
	if p.withSecret {
		intent.ClientSecret = ref + "_secret_" + uuid.New().String()[:8]
	}
	p.cache.SetDefault(ref, *intent)
	return intent, nil
}

func (p *Provider) Lookup(_ context.Context, reference string) (*payment.Intent, error) {
	v, ok := p.cache.Get(reference)
	if !ok {
		return nil, fmt.Errorf("%w: referencia de pago %q desconocida o expirada", domain.ErrNotFound, reference)
	}
	intent := v.(payment.Intent)
	return &intent, nil
}
