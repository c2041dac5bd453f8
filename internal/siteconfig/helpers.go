package siteconfig

import (
	"fmt"
	"strings"
	"time"
)

// PageTitle applies the title template; an empty title yields the default title.
func (c *Config) PageTitle(title string) string {
	if title == "" {
		return c.SEO.DefaultTitle
	}
	if c.SEO.TitleTemplate == "" || !strings.Contains(c.SEO.TitleTemplate, "%s") {
		return title
	}
	return strings.Replace(c.SEO.TitleTemplate, "%s", title, 1)
}

func (c *Config) RobotsMeta() string {
	if c.SEO.NoIndex {
		return "noindex, nofollow"
	}
	return "index, follow"
}

// FormattedAddress renders "street, postalCode city, region, country", skipping blanks.
func (c *Config) FormattedAddress() string {
	a := c.Contact.Address
	if a == nil {
		return ""
	}
	cityLine := strings.TrimSpace(a.PostalCode + " " + a.City)
	var parts []string
	for _, p := range []string{a.Street, cityLine, a.Region, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Copyright uses legal.copyrightYear when set, else the year of now.
func (c *Config) Copyright(now time.Time) string {
	year := c.Legal.CopyrightYear
	if year == 0 {
		year = now.Year()
	}
	name := c.Legal.CompanyName
	if name == "" {
		name = c.Identity.Name
	}
	return fmt.Sprintf("© %d %s", year, name)
}

// FullURL joins the site URL, base path and path, honoring trailingSlash.
func (c *Config) FullURL(path string) string {
	p := "/" + strings.TrimLeft(path, "/")
	if base := strings.Trim(c.BasePath, "/"); base != "" {
		p = "/" + base + p
	}
	if c.TrailingSlash && !strings.HasSuffix(p, "/") && !strings.Contains(lastSegment(p), ".") {
		p += "/"
	}
	return c.URL + p
}

func lastSegment(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// FeatureEnabled reports a named feature flag: blog, testimonials, pricing, darkMode.
func (c *Config) FeatureEnabled(name string) bool {
	f := c.Features
	switch name {
	case "blog":
		return f.Blog
	case "testimonials":
		return f.Testimonials
	case "pricing":
		return f.Pricing
	case "darkMode":
		return f.DarkMode
	}
	return false
}

func (c *Config) HasSocialLinks() bool {
	s := c.Social
	return s.Facebook != "" || s.Instagram != "" || s.TripAdvisor != "" || s.Airbnb != "" || s.Booking != ""
}

// RegistrationCodes renders the license codes as "CIN: a, b".
func (c *Config) RegistrationCodes() string {
	if len(c.Legal.RegistrationCodes) == 0 {
		return ""
	}
	return "CIN: " + strings.Join(c.Legal.RegistrationCodes, ", ")
}

// MapConfig is the map embed settings with the site coordinates.
type MapConfig struct {
	Provider string
	APIKey   string
	Zoom     int
	Lat, Lng float64
	Enabled  bool
}

func (c *Config) MapConfig() MapConfig {
	m := MapConfig{
		Provider: c.Integrations.Maps.Provider,
		APIKey:   c.Integrations.Maps.APIKey,
		Zoom:     c.Integrations.Maps.DefaultZoom,
	}
	if co := c.Contact.Coordinates; co != nil {
		m.Lat, m.Lng = co.Lat, co.Lng
	}
	m.Enabled = m.Provider != "none" && c.Contact.Coordinates != nil
	return m
}

// ContactForm returns the form settings with "email" normalized to smtp.
func (c *Config) ContactForm() ContactForm {
	f := c.Integrations.ContactForm
	if f.Provider == ProviderEmail {
		f.Provider = ProviderSMTP
	}
	if f.EmailTo == "" {
		f.EmailTo = c.Contact.Email
	}
	return f
}

// IsSingleProperty reports the single-property site mode.
func (c *Config) IsSingleProperty() bool { return c.Properties.Mode == "single" }
