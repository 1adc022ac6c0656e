// internal/adapters/out/mail/invoice_mailer.go
package mail

import (
	"context"
	"errors"
	"fmt"

	usecase "tradespace/internal/application/usecase"
)

// InvoiceMailer emails the rendered invoice to the buyer after checkout.
// The checkout usecase treats failures here as best-effort (logged, not
// surfaced), so this adapter never needs retry logic.
type InvoiceMailer struct {
	client *SendGridClient
}

func NewInvoiceMailer(client *SendGridClient) *InvoiceMailer {
	return &InvoiceMailer{client: client}
}

// Compile-time check
var _ usecase.InvoiceMailer = (*InvoiceMailer)(nil)

func (m *InvoiceMailer) SendInvoice(ctx context.Context, toEmail, toName, invoiceNumber string, pdf []byte) error {
	if m == nil || m.client == nil {
		return errors.New("invoice_mailer: sendgrid client is nil")
	}

	subject := fmt.Sprintf("Your TradeSpace invoice %s", invoiceNumber)
	body := fmt.Sprintf(
		"Hi %s,\n\nThanks for your order. Your invoice %s is attached.\n\n— TradeSpace",
		toName, invoiceNumber,
	)
	fileName := fmt.Sprintf("TradeSpace-Invoice-%s.pdf", invoiceNumber)

	return m.client.SendWithAttachment(toEmail, toName, subject, body, fileName, "application/pdf", pdf)
}
