package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/huellas-salud/vet-api/internal/config"
)

// Sender delivers notification mail. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.EmailConfig) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type noopSender struct{}

// NewNoopSender is used when email delivery is disabled.
func NewNoopSender() Sender {
	return noopSender{}
}

func (noopSender) Send(_, _, _ string) error { return nil }
