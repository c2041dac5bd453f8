package render_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_site/internal/booking"
	"rental_site/internal/content"
	"rental_site/internal/domain"
	"rental_site/internal/render"
	"rental_site/internal/siteconfig"
)

func site() *siteconfig.Config {
	return &siteconfig.Config{
		Identity:   siteconfig.Identity{Name: "Casa Negrano", Tagline: "Appartamenti in Valsugana"},
		Contact:    siteconfig.Contact{Email: "casa@example.com", Address: &siteconfig.Address{City: "Telve", Country: "Italia"}},
		Legal:      siteconfig.Legal{RegistrationCodes: []string{"IT022205C2A7J22SB7"}, PrivacyPolicyURL: "/privacy", CopyrightYear: 2025},
		SEO:        siteconfig.SEO{DefaultTitle: "Casa Negrano", TitleTemplate: "%s | Casa Negrano"},
		Features:   siteconfig.Features{Testimonials: true},
		URL:        "https://casanegrano.example",
		Properties: siteconfig.Properties{Mode: "multi", BasePath: "appartamenti", Labels: siteconfig.Labels{Singular: "Appartamento", Plural: "Appartamenti"}},
		Integrations: siteconfig.Integrations{
			ContactForm: siteconfig.ContactForm{Enabled: true, Provider: "mailgun"},
		},
		Booking: siteconfig.Booking{MaxGuests: 4},
		Locales: siteconfig.Locales{Default: "it", Supported: []string{"it", "en", "de"}},
	}
}

func props() []domain.Property {
	return []domain.Property{
		{ID: "mansarda", Slug: "mansarda", Name: "La Mansarda", Description: "Sotto **il tetto**.",
			Capacity: domain.Capacity{Guests: 4, Bedrooms: "2", Bathrooms: "1"}, Size: domain.Size{Value: 85, Unit: "sqm"},
			Images: domain.ImageSet{Hero: "hero.webp"}, Rooms: []domain.Room{{Name: "Camera", Image: "camera.webp"}},
			Booking: &domain.Booking{LodgifyID: 417123}},
		{ID: "giardino", Slug: "giardino", Name: "Il Giardino", Description: "Con prato.",
			Capacity: domain.Capacity{Guests: 2}, Size: domain.Size{Value: 40, Unit: "sqm"},
			Images: domain.ImageSet{Hero: "hero.webp"}, Rooms: []domain.Room{{Name: "Soggiorno"}}},
	}
}

func TestLocalizedPath(t *testing.T) {
	s := site()
	assert.Equal(t, "/", render.LocalizedPath(s, "it", "/"))
	assert.Equal(t, "/en/", render.LocalizedPath(s, "en", "/"))
	assert.Equal(t, "/en/appartamenti/mansarda/", render.LocalizedPath(s, "en", "/appartamenti/mansarda/"))
	assert.Equal(t, "/de/#chi-siamo", render.LocalizedPath(s, "de", "/#chi-siamo"))
	assert.Equal(t, "mailto:a@b.c", render.LocalizedPath(s, "de", "mailto:a@b.c"))

	s.BasePath = "/site/"
	assert.Equal(t, "/site/en/contatti/", render.LocalizedPath(s, "en", render.ContactPath))
	assert.Equal(t, "/site/theme.css", render.AssetPath(s, "theme.css"))

	assert.Equal(t, "/en/appartamenti/mansarda/index.html", render.OutputFile(s, "en", "/appartamenti/mansarda/"))
	assert.Equal(t, "/index.html", render.OutputFile(s, "it", "/"))
}

func TestBuildNav(t *testing.T) {
	s := site()
	tr := func(key, fallback string) string {
		if key == "nav.home" {
			return "Start"
		}
		return fallback
	}

	nav := render.BuildNav(s, props(), tr)
	require.Len(t, nav.Header, 5)
	assert.Equal(t, "Start", nav.Header[0].Text)
	assert.Equal(t, "Appartamenti", nav.Header[2].Text)
	require.Len(t, nav.Header[2].Links, 3)
	assert.Equal(t, "/appartamenti/mansarda/", nav.Header[2].Links[0].Href)
	assert.Equal(t, "/appartamenti/", nav.Header[2].Links[2].Href)
	assert.Len(t, nav.Footer, 2)
	assert.Equal(t, "CIN: IT022205C2A7J22SB7", nav.FootNote)
	assert.Equal(t, "mailto:casa@example.com", nav.Secondary[len(nav.Secondary)-1].Href)

	// a single property links straight to its page, no dropdown
	s.Features.Testimonials = false
	nav = render.BuildNav(s, props()[:1], tr)
	require.Len(t, nav.Header, 4)
	assert.Equal(t, "Appartamento", nav.Header[2].Text)
	assert.Equal(t, "/appartamenti/mansarda/", nav.Header[2].Href)
	assert.Empty(t, nav.Header[2].Links)
	assert.Len(t, nav.Footer, 1)
}

func TestRender_PropertyPage(t *testing.T) {
	s := site()
	r, err := render.New(s)
	require.NoError(t, err)

	ps := props()
	p := ps[0]
	page := render.Page{
		Kind:      render.KindProperty,
		Locale:    "en",
		Path:      render.PropertyPath(s, p),
		Title:     p.Name,
		Site:      s,
		Nav:       render.BuildNav(s, ps, func(_, f string) string { return f }),
		Alternate: render.Alternates(s, "en", render.PropertyPath(s, p)),
		Property:  &p,
		Booking: &render.Widget{PropertyID: 417123, Availability: "/api/availability/417123", MaxGuests: 4,
			Checkout: booking.CheckoutOptions{BaseURL: "https://checkout.lodgify.com", Language: "en"}},
		Dicts: map[string]content.Dict{"apartments": {"guests": "guests", "rooms": "The rooms"}},
		Now:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page))
	html := buf.String()

	assert.Contains(t, html, `<html lang="en"`)
	assert.Contains(t, html, "<title>La Mansarda | Casa Negrano</title>")
	assert.Contains(t, html, `<link rel="canonical" href="https://casanegrano.example/en/appartamenti/mansarda/">`)
	assert.Contains(t, html, `hreflang="de" href="https://casanegrano.example/de/appartamenti/mansarda/"`)
	assert.Contains(t, html, "<strong>il tetto</strong>")
	assert.Contains(t, html, "4 guests")
	assert.Contains(t, html, "The rooms")
	assert.Contains(t, html, `src="/images/mansarda/camera.webp"`)
	assert.Contains(t, html, `href="/en/appartamenti/giardino/"`)
	assert.Contains(t, html, "&#34;propertyId&#34;:417123")
	assert.Contains(t, html, "© 2025 Casa Negrano")

	// booking form works without the script and posts to checkout
	assert.Contains(t, html, `<form class="booking-widget" method="post" action="/api/booking/checkout"`)
	assert.Contains(t, html, `<input type="hidden" name="propertyId" value="417123">`)
	assert.Contains(t, html, `<input type="hidden" name="locale" value="en">`)
	for _, name := range []string{"arrival", "departure", "adults"} {
		assert.Contains(t, html, `name="`+name+`"`)
	}
	assert.Contains(t, html, `max="4"`)
	assert.Contains(t, html, "cfg.availabilityUrl")

	// no channel id, no booking form
	buf.Reset()
	page.Booking = nil
	require.NoError(t, r.Render(&buf, page))
	assert.NotContains(t, buf.String(), "booking-widget")
}

func TestRender_HomeAndContact(t *testing.T) {
	s := site()
	r, err := render.New(s)
	require.NoError(t, err)
	ps := props()

	var buf bytes.Buffer
	err = r.Render(&buf, render.Page{
		Kind: render.KindHome, Locale: "it", Path: "/", Site: s, Properties: ps,
		Reviews:      []domain.Review{{Username: "Anna", Text: "Bellissimo <3", Score: 9.5}},
		AverageScore: 9.5,
		Dicts: map[string]content.Dict{
			"services": {"title": "Comfort", "items": []any{map[string]any{"title": "Grande prato", "description": "2000mq"}}},
		},
		Now: time.Now(),
	})
	require.NoError(t, err)
	home := buf.String()
	assert.Contains(t, home, "<strong>Grande prato</strong> 2000mq")
	assert.Contains(t, home, "Bellissimo &lt;3")
	assert.Contains(t, home, `href="/appartamenti/mansarda/"`)
	assert.Equal(t, 1, strings.Count(home, `id="testimonianze"`))

	buf.Reset()
	require.NoError(t, r.Render(&buf, render.Page{Kind: render.KindContact, Locale: "it", Path: render.ContactPath, Site: s, Now: time.Now()}))
	contact := buf.String()
	assert.Contains(t, contact, `action="/api/contact"`)
	assert.Contains(t, contact, `document.querySelectorAll("form.contact-form")`)
	assert.Contains(t, contact, `"Content-Type": "application/json"`)

	assert.Error(t, r.Render(&buf, render.Page{Kind: "blog", Site: s}))
}
