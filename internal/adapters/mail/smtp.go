package mail

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"rental_site/internal/adapters/observability"
	"rental_site/internal/domain"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	d dialer
}

func NewSMTP(host string, port int, username, password string) *SMTPSender {
	if port <= 0 {
		port = 587
	}
	return &SMTPSender{d: gomail.NewDialer(host, port, username, password)}
}

func buildMessage(e domain.Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", e.From)
	m.SetHeader("To", e.To...)
	m.SetHeader("Subject", e.Subject)
	if e.ReplyTo != "" {
		m.SetHeader("Reply-To", e.ReplyTo)
	}
	if e.ID != "" {
		m.SetHeader("X-Submission-ID", e.ID)
	}
	m.SetBody("text/plain", e.Text)
	if e.HTML != "" {
		m.AddAlternative("text/html", e.HTML)
	}
	return m
}

// Send dials once per message. gomail has no context support, so a
// cancelled request is only honored before dialing.
func (s *SMTPSender) Send(ctx context.Context, e domain.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	began := time.Now()
	err := s.d.DialAndSend(buildMessage(e))
	status := 250
	if err != nil {
		status = 0
	}
	observability.ObserveExternal("smtp", "send", status, time.Since(began))
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}
