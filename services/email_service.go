// services/email_service.go
package services

import (
	"errors"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailMessage is one outbound mail. AttachmentContent is base64, the
// form SendGrid expects on the wire.
type EmailMessage struct {
	ToEmail  string
	ToName   string
	Subject  string
	HTMLBody string

	AttachmentName    string
	AttachmentContent string
}

// EmailSender abstracts the mail provider so the outbox worker can be
// tested without network calls.
type EmailSender interface {
	Send(msg EmailMessage) error
}

type SendGridSender struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewSendGridSender reads SENDGRID_API_KEY, MAIL_FROM and MAIL_FROM_NAME.
// A missing API key is fatal: nothing downstream can deliver without it.
func NewSendGridSender() (*SendGridSender, error) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil, errors.New("SENDGRID_API_KEY not set")
	}

	fromEmail := os.Getenv("MAIL_FROM")
	if fromEmail == "" {
		fromEmail = "noreply@example.com"
	}
	fromName := os.Getenv("MAIL_FROM_NAME")

	return &SendGridSender{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

func (s *SendGridSender) Send(msg EmailMessage) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)

	m := mail.NewSingleEmail(from, msg.Subject, to, "", msg.HTMLBody)

	if msg.AttachmentContent != "" {
		a := mail.NewAttachment()
		a.SetContent(msg.AttachmentContent)
		a.SetType("application/pdf")
		a.SetFilename(msg.AttachmentName)
		a.SetDisposition("attachment")
		m.AddAttachment(a)
	}

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(m)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
