// internal/app/system/mailer/mailer.go

// Package mailer sends transactional email over SMTP. Sends triggered by
// gateway writes are fire-and-forget: a delivery failure is logged and
// never fails the request that triggered it.
package mailer

import (
	"gopkg.in/gomail.v2"

	"go.uber.org/zap"
)

// Email is a single outbound message.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends email through a configured SMTP endpoint.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	log      *zap.Logger
}

// New builds a Mailer. Host may be a local relay (e.g. Mailpit) in dev.
func New(host string, port int, user, pass, from, fromName string, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(host, port, user, pass),
		from:     from,
		fromName: fromName,
		log:      logger,
	}
}

// Send delivers the email synchronously.
func (m *Mailer) Send(e Email) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", e.To)
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/plain", e.TextBody)
	if e.HTMLBody != "" {
		msg.AddAlternative("text/html", e.HTMLBody)
	}
	return m.dialer.DialAndSend(msg)
}

// SendAsync delivers the email on its own goroutine, logging failures.
func (m *Mailer) SendAsync(e Email) {
	go func() {
		if err := m.Send(e); err != nil {
			m.log.Error("mail send failed",
				zap.String("to", e.To),
				zap.String("subject", e.Subject),
				zap.Error(err))
		}
	}()
}
