// Package render turns site config, content dictionaries and property
// records into HTML pages.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"
	"time"

	"rental_site/internal/booking"
	"rental_site/internal/content"
	"rental_site/internal/domain"
	"rental_site/internal/properties"
	"rental_site/internal/siteconfig"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page kinds.
const (
	KindHome       = "home"
	KindProperties = "properties"
	KindProperty   = "property"
	KindContact    = "contact"
)

var kinds = []string{KindHome, KindProperties, KindProperty, KindContact}

// Page is everything a template sees.
type Page struct {
	Kind        string
	Locale      string
	Path        string // unlocalized, e.g. /appartamenti/mansarda/
	Title       string
	Description string
	Image       string

	Site      *siteconfig.Config
	Nav       Nav
	Alternate []LocaleLink

	Properties   []domain.Property
	Property     *domain.Property
	Reviews      []domain.Review
	AverageScore float64
	Booking      *Widget

	Dicts map[string]content.Dict
	Now   time.Time
}

// LocaleLink points at the same page in another locale. Href is
// site-relative and includes the base path.
type LocaleLink struct {
	content.Locale
	Href    string
	Current bool
}

// Alternates links the page in every supported locale.
func Alternates(site *siteconfig.Config, current, p string) []LocaleLink {
	out := make([]LocaleLink, 0, len(site.Locales.Supported))
	for _, code := range site.Locales.Supported {
		out = append(out, LocaleLink{
			Locale:  content.LocaleInfo(code),
			Href:    LocalizedPath(site, code, p),
			Current: code == current,
		})
	}
	return out
}

// Widget is the booking widget bootstrap for one property.
type Widget struct {
	PropertyID   int64                   `json:"propertyId"`
	Availability string                  `json:"availabilityUrl"`
	Checkout     booking.CheckoutOptions `json:"checkout"`
	MaxGuests    int                     `json:"maxGuests"`
}

// BookingJSON is embedded in a data attribute for the client widget.
func (p Page) BookingJSON() string {
	if p.Booking == nil {
		return "{}"
	}
	b, _ := json.Marshal(p.Booking)
	return string(b)
}

func (p Page) Copyright() string { return p.Site.Copyright(p.Now) }

func (p Page) PageTitle() string { return p.Site.PageTitle(p.Title) }

func (p Page) Canonical() string {
	return strings.TrimRight(p.Site.URL, "/") + LocalizedPath(p.Site, p.Locale, p.Path)
}

type Renderer struct {
	site  *siteconfig.Config
	pages map[string]*template.Template
}

// New parses the layout once per page kind.
func New(site *siteconfig.Config) (*Renderer, error) {
	r := &Renderer{site: site, pages: make(map[string]*template.Template, len(kinds))}
	for _, k := range kinds {
		t, err := template.New("layout.html").
			Funcs(r.funcs("", nil)).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+k+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", k, err)
		}
		r.pages[k] = t
	}
	return r, nil
}

// Render executes the page's template with helpers bound to its locale.
func (r *Renderer) Render(w io.Writer, p Page) error {
	base, ok := r.pages[p.Kind]
	if !ok {
		return fmt.Errorf("unknown page kind %q", p.Kind)
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(r.funcs(p.Locale, p.Dicts))
	return t.ExecuteTemplate(w, "layout.html", p)
}

func (r *Renderer) funcs(locale string, dicts map[string]content.Dict) template.FuncMap {
	return template.FuncMap{
		"t": func(section, key string, fallback ...string) string {
			def := key
			if len(fallback) > 0 {
				def = fallback[0]
			}
			return content.String(dicts[section], key, def)
		},
		"items": func(section, key string) []any {
			v, _ := content.Value(dicts[section], key, nil).([]any)
			return v
		},
		"markdown": properties.Markdown,
		"asset":    func(p string) string { return AssetPath(r.site, p) },
		"url":      func(p string) string { return LocalizedPath(r.site, locale, p) },
		"image":    properties.ImagePath,
		"hero":     properties.HeroPath,
		"thumb":    properties.ThumbnailPath,
		"gallery":  properties.GalleryFiles,
		"hasFeature": func(name string) bool {
			return r.site.FeatureEnabled(name)
		},
	}
}

// AssetPath prefixes the site base path.
func AssetPath(site *siteconfig.Config, p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return path.Join("/", strings.Trim(site.BasePath, "/"), p)
}

// LocalizedPath puts non-default locales under /{locale}/. Fragments and
// external links pass through.
func LocalizedPath(site *siteconfig.Config, locale, p string) string {
	if strings.Contains(p, "://") || strings.HasPrefix(p, "mailto:") || strings.HasPrefix(p, "tel:") {
		return p
	}
	frag := ""
	if i := strings.IndexByte(p, '#'); i >= 0 {
		p, frag = p[:i], p[i:]
	}
	segs := []string{"/", strings.Trim(site.BasePath, "/")}
	if locale != "" && locale != site.Locales.Default {
		segs = append(segs, locale)
	}
	segs = append(segs, p)
	out := path.Join(segs...)
	if out != "/" && (strings.HasSuffix(p, "/") || site.TrailingSlash) && !strings.Contains(path.Base(out), ".") {
		out += "/"
	}
	return out + frag
}

// OutputFile maps a localized path to a file under the build directory.
func OutputFile(site *siteconfig.Config, locale, p string) string {
	lp := LocalizedPath(&siteconfig.Config{Locales: site.Locales}, locale, p)
	if strings.HasSuffix(lp, "/") || path.Ext(lp) == "" {
		return path.Join(lp, "index.html")
	}
	return lp
}

// PropertyPath is /{properties.basePath}/{slug}/.
func PropertyPath(site *siteconfig.Config, p domain.Property) string {
	return "/" + path.Join(strings.Trim(site.Properties.BasePath, "/"), p.Slug) + "/"
}

func PropertiesPath(site *siteconfig.Config) string {
	return "/" + strings.Trim(site.Properties.BasePath, "/") + "/"
}

const ContactPath = "/contatti/"
