package siteconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"rental_site/internal/shared"
)

// Load parses, defaults and validates the site configuration at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Config, error) {
	c := Config{Features: Features{Testimonials: true}}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ValidationError lists every problem found in one pass.
type ValidationError struct{ Issues []string }

func (e *ValidationError) Error() string {
	return "site configuration validation failed:\n  - " + strings.Join(e.Issues, "\n  - ")
}

// Validate runs the struct rules plus the locale cross-check and returns a
// *ValidationError listing all of them.
func (c *Config) Validate() error {
	issues := shared.Issues(c, nil, nil)
	if !contains(c.Locales.Supported, c.Locales.Default) {
		issues = append(issues, fmt.Sprintf("locales.default %q is not in locales.supported", c.Locales.Default))
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// IsValidation reports whether err came from Validate.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func (c *Config) applyDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/"
	}
	c.URL = strings.TrimRight(c.URL, "/")

	if c.SEO.Language == "" {
		c.SEO.Language = "it"
	}
	if c.SEO.TextDirection == "" {
		c.SEO.TextDirection = "ltr"
	}
	if c.Integrations.Maps.Provider == "" {
		c.Integrations.Maps.Provider = "openstreetmap"
	}
	if c.Integrations.Maps.DefaultZoom == 0 {
		c.Integrations.Maps.DefaultZoom = 15
	}
	if c.Integrations.ContactForm.Provider == "" {
		c.Integrations.ContactForm.Provider = ProviderNone
	}

	p := &c.Properties
	if p.Mode == "" {
		p.Mode = "multi"
	}
	if p.BasePath == "" {
		p.BasePath = "appartamenti"
	}
	p.BasePath = strings.Trim(p.BasePath, "/")
	if p.Labels.Singular == "" {
		p.Labels.Singular = "Appartamento"
	}
	if p.Labels.Plural == "" {
		p.Labels.Plural = "Appartamenti"
	}

	bk := &c.Booking
	if bk.CheckoutBaseURL == "" {
		bk.CheckoutBaseURL = "https://checkout.lodgify.com"
	}
	if bk.Language == "" {
		bk.Language = "it"
	}
	if bk.Currency == "" {
		bk.Currency = "EUR"
	}
	if bk.Ref == "" {
		bk.Ref = "bnbox"
	}
	if bk.MaxGuests <= 0 {
		bk.MaxGuests = 4
	}

	if c.Locales.Default == "" {
		c.Locales.Default = "it"
	}
	if len(c.Locales.Supported) == 0 {
		c.Locales.Supported = []string{"it", "en", "de"}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
