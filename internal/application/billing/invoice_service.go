package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/studio-billing/internal/domain"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
	"github.com/jhoicas/studio-billing/internal/domain/repository"
)

// Config parámetros del motor de facturación.
type Config struct {
	Rules          invoicing.Rules
	Location       *time.Location // zona horaria del día de emisión (numeración)
	GatewayTimeout time.Duration  // timeout por llamada al gateway
	ReadRetries    uint64         // reintentos de lecturas ante fallos de gateway
	RetryInterval  time.Duration  // intervalo inicial del backoff exponencial
}

func (c Config) withDefaults() Config {
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.GatewayTimeout <= 0 {
		c.GatewayTimeout = 5 * time.Second
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = 100 * time.Millisecond
	}
	if len(c.Rules.VATRates) == 0 {
		c.Rules.VATRates = invoicing.DefaultVATRates()
	}
	if c.Rules.PaymentTermDays <= 0 {
		c.Rules.PaymentTermDays = invoicing.DefaultPaymentTermDays
	}
	if c.Rules.Currency == "" {
		c.Rules.Currency = invoicing.DefaultCurrency
	}
	return c
}

// InvoiceService motor de facturación: crea, edita y cobra facturas contra el gateway.
// No guarda estado mutable propio; el gateway es la única fuente de verdad.
type InvoiceService struct {
	repo     repository.InvoiceRepository
	seq      repository.SequenceSource
	notifier EventNotifier
	recorder Recorder
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// Option ajusta dependencias opcionales del servicio.
type Option func(*InvoiceService)

// WithNotifier registra el notificador de eventos (correo).
func WithNotifier(n EventNotifier) Option {
	return func(s *InvoiceService) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithRecorder registra las métricas.
func WithRecorder(r Recorder) Option {
	return func(s *InvoiceService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *InvoiceService) { s.now = now }
}

// WithIDGenerator reemplaza el generador de ids (tests).
func WithIDGenerator(gen func() string) Option {
	return func(s *InvoiceService) { s.newID = gen }
}

// NewInvoiceService construye el motor inyectando gateway y fuente de consecutivos.
func NewInvoiceService(repo repository.InvoiceRepository, seq repository.SequenceSource, cfg Config, log zerolog.Logger, opts ...Option) *InvoiceService {
	s := &InvoiceService{
		repo:     repo,
		seq:      seq,
		notifier: nopNotifier{},
		recorder: nopRecorder{},
		cfg:      cfg.withDefaults(),
		log:      log.With().Str("component", "billing").Logger(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules reglas vigentes (tasas de IVA, plazo, moneda).
func (s *InvoiceService) Rules() invoicing.Rules {
	return s.cfg.Rules
}

// Preview valida un borrador en modo edición y calcula sus totales, sin persistir.
// Devuelve las líneas usadas en el cálculo: los importes fuera de límites quedan vacíos
// (y reportados en el error de validación).
func (s *InvoiceService) Preview(draft entity.InvoiceDraft) ([]entity.LineItem, entity.Totals, error) {
	err := invoicing.Validate(draft, s.cfg.Rules, invoicing.ModeDraft)
	items := invoicing.BoundedItems(draft.Items)
	return items, entity.SumTotals(items), err
}

// Create finaliza el borrador: valida, numera con el consecutivo diario, fija fechas
// y persiste con una única inserción (todo o nada).
func (s *InvoiceService) Create(ctx context.Context, draft entity.InvoiceDraft) (*entity.Invoice, error) {
	if err := invoicing.Validate(draft, s.cfg.Rules, invoicing.ModeFinal); err != nil {
		return nil, err
	}
	issuedAt := s.now().In(s.cfg.Location)

	var seq int64
	err := s.call(ctx, func(ctx context.Context) error {
		var err error
		seq, err = s.seq.Next(ctx, issuedAt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("obtener consecutivo: %w", err)
	}
	number, err := invoicing.FormatNumber(issuedAt, seq)
	if err != nil {
		return nil, err
	}
	inv, err := invoicing.NewInvoice(s.newID(), number, draft, s.cfg.Rules, issuedAt)
	if err != nil {
		return nil, err
	}
	if err := s.call(ctx, func(ctx context.Context) error { return s.repo.Insert(ctx, inv) }); err != nil {
		return nil, fmt.Errorf("crear factura %s: %w", number, err)
	}

	s.log.Info().
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Str("total", inv.Totals().Total.StringFixed(2)).
		Msg("factura creada")
	s.recorder.InvoiceCreated(inv)
	if err := s.notifier.InvoiceCreated(ctx, inv); err != nil {
		s.log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("notificar factura creada")
	}
	return inv, nil
}

// Get obtiene una factura (lectura con reintentos).
func (s *InvoiceService) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.find(ctx, id)
}

// List lista facturas (lectura con reintentos).
func (s *InvoiceService) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, domain.NewValidationError([]domain.FieldIssue{{Field: "status", Message: "estado desconocido"}})
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	var (
		list  []*entity.Invoice
		total int
	)
	err := s.retryRead(ctx, func(ctx context.Context) error {
		var err error
		list, total, err = s.repo.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Stats agregados del mes en curso (cobrado) y de lo pendiente.
func (s *InvoiceService) Stats(ctx context.Context) (*repository.RevenueStats, error) {
	now := s.now().In(s.cfg.Location)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.cfg.Location)
	var stats *repository.RevenueStats
	err := s.retryRead(ctx, func(ctx context.Context) error {
		var err error
		stats, err = s.repo.Revenue(ctx, monthStart)
		return err
	})
	return stats, err
}

// EditItems reemplaza las líneas de una factura pendiente y recalcula sus totales.
// ErrInvalidState si ya está pagada (líneas y totales intactos).
func (s *InvoiceService) EditItems(ctx context.Context, id string, items []entity.LineItem) (*entity.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.cfg.Location)
	if err := invoicing.EditItems(inv, items, s.cfg.Rules, now); err != nil {
		return nil, err
	}
	var matched bool
	err = s.call(ctx, func(ctx context.Context) error {
		var err error
		matched, err = s.repo.UpdateItems(ctx, id, entity.InvoiceStatusPending, inv.Items, now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar líneas de %s: %w", inv.Number, err)
	}
	if !matched {
		// Se cobró entre la lectura y la escritura.
		return nil, fmt.Errorf("%w: la factura %s ya no está pendiente", domain.ErrInvalidState, inv.Number)
	}
	s.log.Info().Str("invoice_id", id).Int("items", len(inv.Items)).Msg("líneas de factura actualizadas")
	return inv, nil
}

// MarkPaid registra el cobro. Idempotente por referencia: repetir la misma referencia
// devuelve la factura pagada sin efectos; otra referencia devuelve ErrConflict.
// La escritura es condicional (status = pending); si otra entrega ganó la carrera se
// relee la factura y se decide con el estado real.
func (s *InvoiceService) MarkPaid(ctx context.Context, id, reference, provider string) (*entity.Invoice, error) {
	reference = strings.TrimSpace(reference)
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.cfg.Location)
	changed, err := invoicing.MarkPaid(inv, reference, provider, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		s.log.Debug().Str("invoice_id", id).Str("reference", reference).Msg("confirmación de pago duplicada")
		return inv, nil
	}

	var matched bool
	err = s.call(ctx, func(ctx context.Context) error {
		var err error
		matched, err = s.repo.UpdateStatus(ctx, id, entity.InvoiceStatusPending, entity.InvoiceStatusPaid, repository.StatusFields{
			PaidAt:           *inv.PaidAt,
			PaymentReference: inv.PaymentReference,
			PaymentProvider:  inv.PaymentProvider,
			UpdatedAt:        now,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("marcar pagada %s: %w", inv.Number, err)
	}
	if !matched {
		return s.resolvePaidRace(ctx, id, reference)
	}

	s.log.Info().
		Str("invoice_id", id).
		Str("number", inv.Number).
		Str("provider", provider).
		Str("reference", inv.PaymentReference).
		Msg("factura pagada")
	s.recorder.InvoicePaid(inv)
	if err := s.notifier.InvoicePaid(ctx, inv); err != nil {
		s.log.Warn().Err(err).Str("invoice_id", id).Msg("notificar factura pagada")
	}
	return inv, nil
}

// resolvePaidRace relee tras perder la actualización condicional.
func (s *InvoiceService) resolvePaidRace(ctx context.Context, id, reference string) (*entity.Invoice, error) {
	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsPaid() && current.PaymentReference == reference {
		return current, nil
	}
	return nil, fmt.Errorf("%w: la factura %s cambió de estado durante el cobro", domain.ErrConflict, current.Number)
}

func (s *InvoiceService) find(ctx context.Context, id string) (*entity.Invoice, error) {
	var inv *entity.Invoice
	err := s.retryRead(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// call ejecuta una llamada al gateway con timeout propio.
func (s *InvoiceService) call(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
	defer cancel()
	return fn(ctx)
}

// retryRead reintenta con backoff exponencial solo los fallos de gateway; cualquier otro
// error (NotFound, validación) se devuelve de inmediato.
func (s *InvoiceService) retryRead(ctx context.Context, fn func(ctx context.Context) error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.cfg.RetryInterval
	b := backoff.WithContext(backoff.WithMaxRetries(eb, s.cfg.ReadRetries), ctx)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := s.call(ctx, fn)
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrGateway) {
			s.log.Warn().Err(err).Int("attempt", attempt).Msg("lectura fallida en gateway")
			return err
		}
		return backoff.Permanent(err)
	}, b)
}
