package mail

import (
	"fmt"

	"github.com/spf13/cast"

	"rental_site/internal/domain"
)

// Getenv reads one variable; os.Getenv in production.
type Getenv func(string) string

// ForProvider resolves the relay for a contact-form provider, reading its
// credentials at call time. "email" is an alias of smtp.
func ForProvider(provider, webhookURL string, getenv Getenv) (domain.Mailer, error) {
	switch provider {
	case "mailgun":
		key, dom := getenv("MAILGUN_API_KEY"), getenv("MAILGUN_DOMAIN")
		if key == "" || dom == "" {
			return nil, fmt.Errorf("%w: MAILGUN_API_KEY and MAILGUN_DOMAIN are required", domain.ErrMissingCredentials)
		}
		return NewMailgun(dom, key, getenv("MAILGUN_API_BASE")), nil
	case "smtp", "email":
		host := getenv("SMTP_HOST")
		if host == "" {
			return nil, fmt.Errorf("%w: SMTP_HOST is required", domain.ErrMissingCredentials)
		}
		return NewSMTP(host, cast.ToInt(getenv("SMTP_PORT")), getenv("SMTP_USERNAME"), getenv("SMTP_PASSWORD")), nil
	case "webhook":
		if webhookURL == "" {
			return nil, fmt.Errorf("%w: webhook URL is required", domain.ErrMissingCredentials)
		}
		return NewWebhook(webhookURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, provider)
	}
}
