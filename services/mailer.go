package services

import (
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers transactional mail. The lifecycle of messages is
// fire-and-forget; callers that care about failures read the logs.
type Mailer interface {
	SendEnrollmentConfirmation(toEmail, toName, courseTitle string) error
}

type sendgridMailer struct {
	client *sendgrid.Client
	sender string
}

// NewMailer builds a sendgrid-backed mailer from the loaded config
func NewMailer() Mailer {
	return &sendgridMailer{
		client: sendgrid.NewSendClient(config.AppConfig.SendGridKey),
		sender: config.AppConfig.EmailSender,
	}
}

func (m *sendgridMailer) SendEnrollmentConfirmation(toEmail, toName, courseTitle string) error {
	from := mail.NewEmail("Training Platform", m.sender)
	to := mail.NewEmail(toName, toEmail)
	subject := "Enrollment confirmed: " + courseTitle
	plain := "Hi " + toName + ",\n\nYour enrollment in \"" + courseTitle + "\" is confirmed."
	html := "<p>Hi " + toName + ",</p><p>Your enrollment in <strong>" + courseTitle + "</strong> is confirmed.</p>"

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	resp, err := m.client.Send(message)
	if err != nil {
		log.Printf("[MAILER] enrollment mail to %s failed: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[MAILER] enrollment mail to %s rejected: %d", toEmail, resp.StatusCode)
	}
	return nil
}
