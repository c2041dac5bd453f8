package app

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"rental_site/internal/adapters/observability"
	"rental_site/internal/domain"
	"rental_site/internal/siteconfig"
)

// MailerFactory resolves a relay for a provider, reading credentials at
// call time.
type MailerFactory func(provider, webhookURL string) (domain.Mailer, error)

// Composer renders the notification for a submission.
type Composer func(id string, s domain.ContactSubmission) (domain.Email, error)

// ContactService relays contact-form submissions. Nothing is stored and
// nothing is retried.
type ContactService struct {
	form    siteconfig.ContactForm
	mailers MailerFactory
	compose Composer
	newID   func() string
}

func NewContactService(form siteconfig.ContactForm, mailers MailerFactory, compose Composer) *ContactService {
	return &ContactService{form: form, mailers: mailers, compose: compose, newID: uuid.NewString}
}

func (s *ContactService) Provider() string { return s.form.Provider }

// Relay checks the form is enabled, the provider is supported and its
// credentials are present, in that order.
func (s *ContactService) Relay() (domain.Mailer, error) {
	if !s.form.Enabled {
		return nil, domain.ErrFormDisabled
	}
	switch s.form.Provider {
	case siteconfig.ProviderMailgun, siteconfig.ProviderSMTP, siteconfig.ProviderEmail, siteconfig.ProviderWebhook:
	default:
		return nil, domain.ErrUnsupportedProvider
	}
	m, err := s.mailers(s.form.Provider, s.form.WebhookURL)
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredentials) {
			log.Error().Err(err).Str("provider", s.form.Provider).Msg("contact relay not configured")
		}
		return nil, err
	}
	return m, nil
}

// Submit composes and sends one notification through m, returning the
// submission id.
func (s *ContactService) Submit(ctx context.Context, m domain.Mailer, sub domain.ContactSubmission) (string, error) {
	id := s.newID()
	e, err := s.compose(id, sub)
	if err != nil {
		observability.ObserveContact(s.form.Provider, "error")
		return id, err
	}
	if err := m.Send(ctx, e); err != nil {
		observability.ObserveContact(s.form.Provider, "error")
		log.Error().Err(err).Str("submission", id).Str("provider", s.form.Provider).Msg("contact email failed")
		return id, err
	}
	observability.ObserveContact(s.form.Provider, "sent")
	log.Info().Str("submission", id).Str("provider", s.form.Provider).Msg("contact email sent")
	return id, nil
}
