package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog/log"

	"rental_site/internal/adapters/observability"
	"rental_site/internal/domain"
)

type MailgunSender struct {
	mg mailgun.Mailgun
}

// NewMailgun sends through the domain's messages API. apiBase overrides the
// default US endpoint, e.g. mailgun.APIBaseEU.
func NewMailgun(domainName, apiKey, apiBase string) *MailgunSender {
	mg := mailgun.NewMailgun(domainName, apiKey)
	if apiBase != "" {
		mg.SetAPIBase(apiBase)
	}
	return &MailgunSender{mg: mg}
}

func (s *MailgunSender) Send(ctx context.Context, e domain.Email) error {
	m := s.mg.NewMessage(e.From, e.Subject, e.Text, e.To...)
	m.SetHtml(e.HTML)
	if e.ReplyTo != "" {
		m.AddHeader("Reply-To", e.ReplyTo)
	}
	if e.ID != "" {
		m.AddHeader("X-Submission-ID", e.ID)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	began := time.Now()
	_, id, err := s.mg.Send(ctx, m)
	status := 200
	if err != nil {
		status = 0
		var ue *mailgun.UnexpectedResponseError
		if errors.As(err, &ue) {
			status = ue.Actual
		}
	}
	observability.ObserveExternal("mailgun", "messages", status, time.Since(began))
	if err != nil {
		return fmt.Errorf("mailgun: %w", err)
	}
	log.Debug().Str("submission", e.ID).Str("mailgun_id", id).Msg("contact email queued")
	return nil
}
