// internal/adapters/out/mail/sendgrid_client.go
package mail

import (
	"encoding/base64"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridClient wraps the SendGrid v3 API.
type SendGridClient struct {
	apiKey string
	from   string
}

func NewSendGridClient(apiKey, from string) *SendGridClient {
	return &SendGridClient{apiKey: apiKey, from: from}
}

// SendWithAttachment sends a plain-text email carrying one binary attachment.
func (c *SendGridClient) SendWithAttachment(to, toName, subject, body, fileName, fileType string, data []byte) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if c.from == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail("TradeSpace", c.from))
	m.Subject = subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(toName, to))
	m.AddPersonalizations(p)

	m.AddContent(mail.NewContent("text/plain", body))

	if len(data) > 0 {
		a := mail.NewAttachment()
		a.SetContent(base64.StdEncoding.EncodeToString(data))
		a.SetType(fileType)
		a.SetFilename(fileName)
		a.SetDisposition("attachment")
		m.AddAttachment(a)
	}

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.Send(m)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		log.Printf("[sendgrid] error status=%d, body=%s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid send failed: status=%d", response.StatusCode)
	}

	log.Printf("[sendgrid] mail sent: status=%d to=%s subject=%s", response.StatusCode, to, subject)
	return nil
}
