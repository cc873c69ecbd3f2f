package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/studio-billing/docs"
	"github.com/jhoicas/studio-billing/internal/application/billing"
	"github.com/jhoicas/studio-billing/internal/application/payment"
	"github.com/jhoicas/studio-billing/internal/domain/repository"
	"github.com/jhoicas/studio-billing/internal/infrastructure/memory"
	"github.com/jhoicas/studio-billing/internal/infrastructure/metrics"
	"github.com/jhoicas/studio-billing/internal/infrastructure/notify"
	"github.com/jhoicas/studio-billing/internal/infrastructure/payment/fake"
	"github.com/jhoicas/studio-billing/internal/infrastructure/payment/stripe"
	infrapdf "github.com/jhoicas/studio-billing/internal/infrastructure/pdf"
	"github.com/jhoicas/studio-billing/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/studio-billing/internal/infrastructure/redis"
	"github.com/jhoicas/studio-billing/internal/infrastructure/ubl"
	httpRouter "github.com/jhoicas/studio-billing/internal/interfaces/http"
	"github.com/jhoicas/studio-billing/pkg/config"
	"github.com/jhoicas/studio-billing/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title        Studio Billing API
// @version      1.0
// @description  Motor de facturación: emisión, numeración FACT-YYYYMMDD-NNN, cobro y exportación PDF/UBL.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Billing.Store).
		Str("sequence", cfg.Billing.Sequence).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var pool *pgxpool.Pool
	if cfg.Billing.Store == config.BackendPostgres || cfg.Billing.Sequence == config.BackendPostgres {
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	var invoiceRepo repository.InvoiceRepository = memory.NewInvoiceRepository()
	if cfg.Billing.Store == config.BackendPostgres {
		invoiceRepo = postgres.NewInvoiceRepository(pool)
	}

	var sequence repository.SequenceSource
	switch cfg.Billing.Sequence {
	case config.BackendRedis:
		client := infraredis.NewClient(cfg.Redis)
		defer client.Close()
		sequence = infraredis.NewSequence(client)
	case config.BackendPostgres:
		sequence = postgres.NewSequenceRepository(pool)
	default:
		sequence = memory.NewSequence()
	}

	billingMetrics := metrics.New(prometheus.DefaultRegisterer)
	mailer := notify.NewLogMailer(log.Component("mailer"))

	invoiceSvc := billing.NewInvoiceService(invoiceRepo, sequence, billing.Config{
		Rules:          cfg.Billing.Rules(),
		Location:       cfg.Billing.Location,
		GatewayTimeout: cfg.Billing.GatewayTimeout,
		ReadRetries:    uint64(cfg.Billing.ReadRetries),
	}, log.Zerolog(),
		billing.WithNotifier(notify.NewInvoiceNotifier(mailer, cfg.Notify.Recipients)),
		billing.WithRecorder(billingMetrics),
	)

	// Documentos: representación gráfica (PDF) y UBL 2.1 (XML)
	documentSvc := billing.NewDocumentService(invoiceSvc, infrapdf.NewMarotoPDFGenerator(), ubl.NewXMLBuilder(), billing.Issuer{
		Name:    cfg.Billing.IssuerName,
		Address: cfg.Billing.IssuerAddress,
		VATID:   cfg.Billing.IssuerVATID,
		Email:   cfg.Billing.IssuerEmail,
	})

	adapter := payment.NewNotificationAdapter(invoiceSvc, billingMetrics, log.Zerolog())
	checkout := payment.NewCheckoutService(invoiceSvc, adapter, log.Zerolog(),
		fake.NewStripe(cfg.Payments.FakeIntentTTL),
		fake.NewPayPal(cfg.Payments.FakeIntentTTL),
	)
	webhooks := stripe.NewWebhookParser(cfg.Stripe.WebhookSecret)
	if !webhooks.Enabled() {
		log.Warn().Msg("STRIPE_WEBHOOK_SECRET vacío: el webhook de Stripe responderá 503")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Studio Billing API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Invoices:       invoiceSvc,
		Documents:      documentSvc,
		Checkout:       checkout,
		Payments:       adapter,
		Webhooks:       webhooks,
		Metrics:        billingMetrics,
		MetricsHandler: adaptor.HTTPHandler(promhttp.Handler()),
		ServiceName:    cfg.App.Name,
		Log:            log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
