// Package notify envía los avisos de facturación por correo.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/studio-billing/internal/domain/entity"
	"github.com/jhoicas/studio-billing/internal/domain/invoicing"
)

// Message correo saliente.
type Message struct {
	To      []string
	Subject string
	Type    string // invoice_created | invoice_paid
	Body    string
}

// Mailer proveedor de correo.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer no envía: registra el correo en el log estructurado.
type LogMailer struct {
	log zerolog.Logger
}

// NewLogMailer construye el mailer.
func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log.With().Str("component", "mailer").Logger()}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("correo %q sin destinatarios", msg.Subject)
	}
	m.log.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Str("type", msg.Type).
		Msg("correo enviado")
	return nil
}

// Tipos de aviso.
const (
	TypeInvoiceCreated = "invoice_created"
	TypeInvoicePaid    = "invoice_paid"
)

// InvoiceNotifier implementa billing.EventNotifier sobre un Mailer.
type InvoiceNotifier struct {
	mailer     Mailer
	recipients []string
}

// NewInvoiceNotifier avisa a los destinatarios configurados (p. ej. administración del estudio).
func NewInvoiceNotifier(mailer Mailer, recipients []string) *InvoiceNotifier {
	return &InvoiceNotifier{mailer: mailer, recipients: recipients}
}

func (n *InvoiceNotifier) InvoiceCreated(ctx context.Context, inv *entity.Invoice) error {
	if len(n.recipients) == 0 {
		return nil
	}
	return n.mailer.Send(ctx, Message{
		To:      n.recipients,
		Subject: fmt.Sprintf("Factura %s emitida", inv.Number),
		Type:    TypeInvoiceCreated,
		Body:    body(inv),
	})
}

func (n *InvoiceNotifier) InvoicePaid(ctx context.Context, inv *entity.Invoice) error {
	if len(n.recipients) == 0 {
		return nil
	}
	return n.mailer.Send(ctx, Message{
		To:      n.recipients,
		Subject: fmt.Sprintf("Factura %s pagada", inv.Number),
		Type:    TypeInvoicePaid,
		Body:    body(inv),
	})
}

func body(inv *entity.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Factura: %s\n", inv.Number)
	fmt.Fprintf(&b, "Cliente: %s\n", inv.ClientName)
	fmt.Fprintf(&b, "Total: %s\n", invoicing.FormatMoney(inv.Totals().Total, inv.Currency))
	fmt.Fprintf(&b, "Vencimiento: %s\n", inv.DueDate.Format("02/01/2006"))
	if inv.IsPaid() {
		fmt.Fprintf(&b, "Referencia de pago: %s (%s)\n", inv.PaymentReference, inv.PaymentProvider)
	}
	return b.String()
}
