package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	httpserver "rental_site/internal/adapters/http_server"
	"rental_site/internal/adapters/lodgify"
	"rental_site/internal/adapters/mail"
	"rental_site/internal/app"
	"rental_site/internal/booking"
	"rental_site/internal/content"
	"rental_site/internal/domain"
	"rental_site/internal/properties"
	"rental_site/internal/render"
	"rental_site/internal/siteconfig"
)

// ---- fakes ----

type staticCatalog struct {
	cat *properties.Catalog
	err error
}

func (s staticCatalog) Load() (*properties.Catalog, error) { return s.cat, s.err }

type fakeCalendars struct {
	cal      domain.AvailabilityCalendar
	err      error
	quote    app.StayQuote
	quoteErr error
	gotMax   int
	gotOpts  booking.CheckoutOptions
}

func (f *fakeCalendars) Calendar(ctx context.Context, id int64) (domain.AvailabilityCalendar, error) {
	return f.cal, f.err
}

func (f *fakeCalendars) Checkout(ctx context.Context, req app.StayRequest, opts booking.CheckoutOptions, maxGuests int) (app.StayQuote, error) {
	f.gotMax, f.gotOpts = maxGuests, opts
	return f.quote, f.quoteErr
}

// ---- helpers ----

func testSite() *siteconfig.Config {
	return &siteconfig.Config{
		Identity: siteconfig.Identity{Name: "Casa Negrano"},
		URL:      "https://casanegrano.example",
		Booking: siteconfig.Booking{CheckoutBaseURL: "https://checkout.lodgify.com", AccountSlug: "casa-negrano",
			Language: "it", Currency: "EUR", Ref: "bnbox", MaxGuests: 6},
		Integrations: siteconfig.Integrations{ContactForm: siteconfig.ContactForm{
			Enabled: true, Provider: "webhook", EmailTo: "host@example.com"}},
		Locales: siteconfig.Locales{Default: "it", Supported: []string{"it", "en"}},
	}
}

type fixture struct {
	site *siteconfig.Config
	cals *fakeCalendars
	h    *httpserver.Handlers
	env  map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "it"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "it", "common.yaml"), []byte("nav:\n  home: Home\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := &fixture{site: testSite(), cals: &fakeCalendars{}, env: map[string]string{}}
	f.h = &httpserver.Handlers{
		Site:     f.site,
		Catalog:  staticCatalog{cat: properties.NewCatalog(properties.Legacy(), language.Italian)},
		Content:  content.NewStore(root, "it", f.site.Locales.Supported),
		Calendar: f.cals,
	}
	f.setContact()
	return f
}

// setContact rebuilds the contact service from the current site form settings.
func (f *fixture) setContact() {
	form := f.site.Integrations.ContactForm
	f.h.Contact = app.NewContactService(form,
		func(provider, webhookURL string) (domain.Mailer, error) {
			return mail.ForProvider(provider, webhookURL, func(k string) string { return f.env[k] })
		},
		func(id string, s domain.ContactSubmission) (domain.Email, error) {
			return mail.Compose(id, s, mail.Settings{SiteName: f.site.Identity.Name, To: form.EmailTo})
		})
}

func (f *fixture) do(t *testing.T, method, target, body string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	s := httpserver.New()
	s.MountHandlers(f.h)
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return m
}

const formContentType = "application/x-www-form-urlencoded"

var fieldName = regexp.MustCompile(`<(?:input|textarea)[^>]* name="([A-Za-z]+)"`)

// renderedFields renders one page and returns the sorted field names of the
// form with the given class.
func renderedFields(t *testing.T, page render.Page, class string) []string {
	t.Helper()
	r, err := render.New(page.Site)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, page); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	start := strings.Index(html, `<form class="`+class+`"`)
	if start < 0 {
		t.Fatalf("form %q not rendered", class)
	}
	end := strings.Index(html[start:], "</form>")
	var names []string
	for _, m := range fieldName.FindAllStringSubmatch(html[start:start+end], -1) {
		names = append(names, m[1])
	}
	sort.Strings(names)
	return names
}

// ---- tests ----

func TestHealthz(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestProperties_ETag(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/v1/properties", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if !strings.HasPrefix(etag, `W/"`) {
		t.Fatalf("etag = %q", etag)
	}
	var list []domain.Property
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) == 0 {
		t.Fatalf("list: %v %d", err, len(list))
	}

	again := f.do(t, http.MethodGet, "/v1/properties", "", "If-None-Match", etag)
	if again.Code != http.StatusNotModified || again.Body.Len() != 0 {
		t.Fatalf("conditional GET = %d", again.Code)
	}

	one := f.do(t, http.MethodGet, "/v1/properties/"+list[0].Slug, "")
	if one.Code != http.StatusOK {
		t.Fatalf("get by slug = %d", one.Code)
	}

	missing := f.do(t, http.MethodGet, "/v1/properties/nope", "")
	if missing.Code != http.StatusNotFound || missing.Header().Get("Content-Type") != "application/problem+json" {
		t.Fatalf("missing = %d %s", missing.Code, missing.Header().Get("Content-Type"))
	}
}

func TestProperties_LoadFailure(t *testing.T) {
	f := newFixture(t)
	f.h.Catalog = staticCatalog{err: errors.New("disk gone")}
	rec := f.do(t, http.MethodGet, "/v1/properties", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestTranslations(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/translations/en/common.json", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"home":"Home"`) {
		t.Fatalf("fallback = %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/translations/it/services.json", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "{}" {
		t.Fatalf("missing section = %d %q", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/translations/xx/common.json", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Language") != "it" {
		t.Fatalf("unsupported locale = %d %s", rec.Code, rec.Header().Get("Content-Language"))
	}

	if rec := f.do(t, http.MethodGet, "/translations/it/secrets.json", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown section = %d", rec.Code)
	}
}

func TestAvailability(t *testing.T) {
	f := newFixture(t)
	start := booking.Day(time.Now())
	f.cals.cal = domain.AvailabilityCalendar{
		PropertyID: 417123,
		Periods: []domain.Period{
			{Start: start, End: start.AddDate(0, 0, 9), Available: true},
			{Start: start.AddDate(0, 0, 10), End: start.AddDate(0, 0, 11), Available: false},
		},
		MinStay: []domain.MinStayRule{{IsDefault: true, Nights: 3}},
	}

	rec := f.do(t, http.MethodGet, "/api/availability/417123", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	m := decode(t, rec)
	if m["defaultMinStay"].(float64) != 3 {
		t.Fatalf("defaultMinStay = %v", m["defaultMinStay"])
	}
	if got := len(m["unavailable"].([]any)); got != 2 {
		t.Fatalf("unavailable days = %d", got)
	}

	if rec := f.do(t, http.MethodGet, "/api/availability/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id = %d", rec.Code)
	}

	f.cals.err = errors.New("upstream down")
	if rec := f.do(t, http.MethodGet, "/api/availability/417123", ""); rec.Code != http.StatusBadGateway {
		t.Fatalf("upstream failure = %d", rec.Code)
	}
	f.cals.err = lodgify.ErrNotFound
	if rec := f.do(t, http.MethodGet, "/api/availability/417123", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown property = %d", rec.Code)
	}

	f.h.Calendar = nil
	if rec := f.do(t, http.MethodGet, "/api/availability/417123", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("not configured = %d", rec.Code)
	}
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	f.cals.quote = app.StayQuote{URL: "https://checkout.lodgify.com/it/casa-negrano/417123/contact", Nights: 3, Adults: 2}

	body := `{"propertyId":417123,"arrival":"2026-06-10","departure":"2026-06-13","adults":2,"locale":"en"}`
	rec := f.do(t, http.MethodPost, "/api/booking/checkout", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	if decode(t, rec)["nights"].(float64) != 3 {
		t.Fatal("quote not returned")
	}
	if f.cals.gotOpts.Language != "it" || f.cals.gotOpts.Account != "casa-negrano" {
		t.Fatalf("options = %+v", f.cals.gotOpts)
	}
	if f.cals.gotMax != 6 {
		t.Fatalf("max guests = %d", f.cals.gotMax)
	}

	// without a configured checkout language the request locale is used
	f.site.Booking.Language = ""
	noLocale := `{"propertyId":417123,"arrival":"2026-06-10","departure":"2026-06-13","adults":2}`
	if rec := f.do(t, http.MethodPost, "/api/booking/checkout", noLocale, "Accept-Language", "en-GB,en;q=0.9"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if f.cals.gotOpts.Language != "en" {
		t.Fatalf("language from Accept-Language = %q", f.cals.gotOpts.Language)
	}
	if f.do(t, http.MethodPost, "/api/booking/checkout", noLocale); f.cals.gotOpts.Language != "it" {
		t.Fatalf("default language = %q", f.cals.gotOpts.Language)
	}
	f.site.Booking.Language = "it"

	f.cals.quoteErr = &booking.MinStayError{Required: 7, Nights: 3}
	rec = f.do(t, http.MethodPost, "/api/booking/checkout", body)
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "minimum stay for this date is 7 nights") {
		t.Fatalf("min stay = %d %s", rec.Code, rec.Body.String())
	}

	if rec := f.do(t, http.MethodPost, "/api/booking/checkout", `{"arrival":`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json = %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/api/booking/checkout", `{"propertyId":1,"arrival":"soon","departure":"later"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad dates = %d", rec.Code)
	}
}

func TestCheckout_RenderedFormRedirects(t *testing.T) {
	f := newFixture(t)
	f.cals.quote = app.StayQuote{URL: "https://checkout.lodgify.com/en/casa-negrano/417123/contact?adults=2", Nights: 3, Adults: 2}

	p := properties.Legacy()[0]
	page := render.Page{Kind: render.KindProperty, Locale: "en", Path: render.PropertyPath(f.site, p), Site: f.site,
		Property: &p, Now: time.Now(),
		Booking: &render.Widget{PropertyID: 417123, Availability: "/api/availability/417123", MaxGuests: 4}}
	names := renderedFields(t, page, "booking-widget")
	want := []string{"adults", "arrival", "departure", "locale", "propertyId"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("rendered fields = %v", names)
	}

	form := url.Values{"propertyId": {"417123"}, "locale": {"en"}, "arrival": {"2026-06-10"}, "departure": {"2026-06-13"}, "adults": {"2"}}
	rec := f.do(t, http.MethodPost, "/api/booking/checkout", form.Encode(), "Content-Type", formContentType)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != f.cals.quote.URL {
		t.Fatalf("location = %q", loc)
	}

	f.cals.quoteErr = booking.ErrRangeUnavailable
	rec = f.do(t, http.MethodPost, "/api/booking/checkout", form.Encode(), "Content-Type", formContentType)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unavailable = %d", rec.Code)
	}
}

func TestContact_RequiresEmail(t *testing.T) {
	f := newFixture(t)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("relay must not be called")
	}))
	defer hook.Close()
	f.site.Integrations.ContactForm.WebhookURL = hook.URL
	f.setContact()

	rec := f.do(t, http.MethodPost, "/api/contact", `{"name":"Anna","guests":2}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	m := decode(t, rec)
	if m["success"] != false || m["error"] != "Name and email are required" {
		t.Fatalf("body = %v", m)
	}
}

func TestContact_SendsThroughWebhook(t *testing.T) {
	f := newFixture(t)
	var got map[string]any
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer hook.Close()
	f.site.Integrations.ContactForm.WebhookURL = hook.URL
	f.setContact()

	rec := f.do(t, http.MethodPost, "/api/contact",
		`{"name":"Anna","email":"anna@example.com","guests":"2","checkIn":"2026-06-15","message":"Ciao"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	m := decode(t, rec)
	if m["success"] != true || m["message"] != "Email sent successfully" {
		t.Fatalf("body = %v", m)
	}
	if got["replyTo"] != "anna@example.com" || !strings.Contains(got["text"].(string), "lunedì 15 giugno 2026") {
		t.Fatalf("relayed payload = %v", got)
	}
}

func TestContact_AcceptsRenderedForm(t *testing.T) {
	f := newFixture(t)
	var got map[string]any
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer hook.Close()
	f.site.Integrations.ContactForm.WebhookURL = hook.URL
	f.setContact()

	names := renderedFields(t, render.Page{Kind: render.KindContact, Locale: "it", Path: render.ContactPath, Site: f.site, Now: time.Now()}, "contact-form")
	want := []string{"checkIn", "checkOut", "email", "guests", "message", "name", "submitDate"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("rendered fields = %v", names)
	}
	sample := map[string]string{"name": "Anna", "email": "anna@example.com", "guests": "2",
		"checkIn": "2026-06-15", "checkOut": "2026-06-18", "message": "Ciao", "submitDate": ""}
	form := url.Values{}
	for _, n := range names {
		form.Set(n, sample[n])
	}

	rec := f.do(t, http.MethodPost, "/api/contact", form.Encode(), "Content-Type", formContentType)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	if m := decode(t, rec); m["success"] != true {
		t.Fatalf("body = %v", m)
	}
	if got["replyTo"] != "anna@example.com" || !strings.Contains(got["text"].(string), "Numero Ospiti: 2") {
		t.Fatalf("relayed payload = %v", got)
	}

	rec = f.do(t, http.MethodPost, "/api/contact", "name=Anna&guests=2", "Content-Type", formContentType)
	if m := decode(t, rec); rec.Code != http.StatusBadRequest || m["error"] != "Name and email are required" {
		t.Fatalf("missing email = %d %v", rec.Code, m)
	}
}

func TestContact_ConfigurationChecks(t *testing.T) {
	cases := []struct {
		name    string
		form    siteconfig.ContactForm
		env     map[string]string
		body    string
		status  int
		wantErr string
	}{
		{"disabled", siteconfig.ContactForm{Enabled: false, Provider: "mailgun"}, nil, `{`, 400, "Contact form is disabled"},
		{"unsupported", siteconfig.ContactForm{Enabled: true, Provider: "pigeon"}, nil, `{`, 400, "Provider not supported"},
		{"no credentials", siteconfig.ContactForm{Enabled: true, Provider: "mailgun"}, nil, `{}`, 500, "Email service not configured"},
		{"bad json", siteconfig.ContactForm{Enabled: true, Provider: "mailgun"},
			map[string]string{"MAILGUN_API_KEY": "k", "MAILGUN_DOMAIN": "mg.example.com"}, `{`, 400, "Invalid JSON body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.site.Integrations.ContactForm = tc.form
			for k, v := range tc.env {
				f.env[k] = v
			}
			f.setContact()
			rec := f.do(t, http.MethodPost, "/api/contact", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if m := decode(t, rec); m["error"] != tc.wantErr {
				t.Fatalf("error = %v, want %q", m["error"], tc.wantErr)
			}
		})
	}
}

func TestContact_UpstreamErrorIsReported(t *testing.T) {
	f := newFixture(t)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer hook.Close()
	f.site.Integrations.ContactForm.WebhookURL = hook.URL
	f.setContact()

	rec := f.do(t, http.MethodPost, "/api/contact", `{"name":"Anna","email":"anna@example.com"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if m := decode(t, rec); m["success"] != false || !strings.Contains(m["error"].(string), "quota exceeded") {
		t.Fatalf("body = %v", m)
	}
}

func TestContactInfo(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/api/contact", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Use POST") {
		t.Fatalf("info = %d %s", rec.Code, rec.Body.String())
	}
}

func TestReloadOnlyWhenConfigured(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(t, http.MethodPost, "/api/dev/reload", ""); rec.Code != http.StatusNotFound && rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("reload without hook = %d", rec.Code)
	}
	called := false
	f.h.Reload = func() { called = true }
	if rec := f.do(t, http.MethodPost, "/api/dev/reload", ""); rec.Code != http.StatusNoContent || !called {
		t.Fatalf("reload = %d called=%v", rec.Code, called)
	}
}
