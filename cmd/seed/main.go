// seed importa facturas de ejemplo desde un export CSV pasando por el motor de
// facturación, de modo que cada factura sembrada se valida y numera como las demás.
//
// Uso: go run ./cmd/seed [-charset iso-8859-1] [-delim ';'] [-dry-run] export.csv
//
// Con BILLING_STORE=postgres todo el lote va en una transacción: o entran todas o ninguna.
// Con BILLING_STORE=memory (o -dry-run) solo se validan y se muestran los totales.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/jhoicas/studio-billing/internal/application/billing"
	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
	"github.com/jhoicas/studio-billing/internal/infrastructure/memory"
	"github.com/jhoicas/studio-billing/internal/infrastructure/postgres"
	"github.com/jhoicas/studio-billing/pkg/config"
	"github.com/jhoicas/studio-billing/pkg/logger"
)

func main() {
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8 | iso-8859-1 | windows-1252")
	delim := flag.String("delim", ";", "separador de columnas")
	dryRun := flag.Bool("dry-run", false, "validar y mostrar totales sin persistir")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-charset iso-8859-1] [-delim ';'] [-dry-run] export.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	sep, _ := utf8.DecodeRuneInString(*delim)
	invoices, err := parseCSV(f, parseOptions{Charset: *charset, Delimiter: sep})
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	log.Info().Int("invoices", len(invoices)).Msg("export leído")

	billingCfg := billing.Config{
		Rules:          cfg.Billing.Rules(),
		Location:       cfg.Billing.Location,
		GatewayTimeout: cfg.Billing.GatewayTimeout,
		ReadRetries:    uint64(cfg.Billing.ReadRetries),
	}
	ctx := context.Background()

	if *dryRun || cfg.Billing.Store == config.BackendMemory {
		svc := billing.NewInvoiceService(memory.NewInvoiceRepository(), memory.NewSequence(), billingCfg, log.Component("seed"))
		created, err := seed(ctx, svc, invoices)
		if err != nil {
			log.Fatal().Err(err).Msg("validar lote")
		}
		for _, inv := range created {
			fmt.Printf("%s\t%s\t%s\t%s\n", inv.Number, inv.ClientName, invoicing.FormatMoney(inv.Totals().Total, inv.Currency), inv.Status)
		}
		return
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	var created []*entity.Invoice
	err = postgres.NewTxRunner(pool).Run(ctx, func(repo *postgres.InvoiceRepo, seq *postgres.SequenceRepo) error {
		svc := billing.NewInvoiceService(repo, seq, billingCfg, log.Component("seed"))
		var err error
		created, err = seed(ctx, svc, invoices)
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("importar lote")
	}
	log.Info().Int("invoices", len(created)).Msg("lote importado")
}

// seed crea cada factura del lote y cobra las que traen referencia de pago.
// Se detiene en el primer error indicando la factura del export.
func seed(ctx context.Context, svc *billing.InvoiceService, invoices []seedInvoice) ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(invoices))
	for _, si := range invoices {
		inv, err := svc.Create(ctx, si.Draft)
		if err != nil {
			return nil, fmt.Errorf("factura %s: %w", si.Ref, err)
		}
		if si.PaidReference != "" {
			if inv, err = svc.MarkPaid(ctx, inv.ID, si.PaidReference, entity.PaymentProviderManual); err != nil {
				return nil, fmt.Errorf("factura %s: cobrar: %w", si.Ref, err)
			}
		}
		out = append(out, inv)
	}
	return out, nil
}
