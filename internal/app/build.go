package app

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"rental_site/internal/adapters/observability"
	"rental_site/internal/content"
	"rental_site/internal/domain"
	"rental_site/internal/properties"
	"rental_site/internal/render"
	"rental_site/internal/siteconfig"
	"rental_site/internal/theme"
)

// BuildInputs are the loaded, validated sources of one build.
type BuildInputs struct {
	Site     *siteconfig.Config
	Theme    theme.Config
	Catalog  *properties.Catalog
	Reviews  []domain.Review
	Content  *content.Store
	Renderer *render.Renderer
}

type BuildReport struct {
	Pages        int
	Translations int
	Locales      []string
	Duration     time.Duration
}

type Builder struct {
	in      BuildInputs
	outDir  string
	workers int
	now     func() time.Time
}

func NewBuilder(in BuildInputs, outDir string, workers int) *Builder {
	if workers <= 0 {
		workers = 8
	}
	return &Builder{in: in, outDir: outDir, workers: workers, now: time.Now}
}

// WithClock replaces time.Now, for tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

type pageJob struct {
	page render.Page
	file string
}

// Build writes the whole site under outDir. The first failure cancels the
// remaining pages.
func (b *Builder) Build(ctx context.Context) (rep BuildReport, err error) {
	began := time.Now()
	defer func() { observability.ObserveBuild(err, time.Since(began)) }()
	site := b.in.Site
	rep.Locales = site.Locales.Supported

	if err := os.MkdirAll(b.outDir, 0o755); err != nil {
		return rep, err
	}
	if err := b.write("theme.css", []byte(theme.GenerateFullCSS(b.in.Theme))); err != nil {
		return rep, err
	}

	var jobs []pageJob
	for _, locale := range site.Locales.Supported {
		dicts, err := b.dicts(ctx, locale)
		if err != nil {
			return rep, err
		}
		n, err := b.writeTranslations(locale, dicts)
		if err != nil {
			return rep, err
		}
		rep.Translations += n
		jobs = append(jobs, b.pagesFor(locale, dicts)...)
	}

	sem := semaphore.NewWeighted(int64(b.workers))
	g, gctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		j := j
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			var buf bytes.Buffer
			if err := b.in.Renderer.Render(&buf, j.page); err != nil {
				return fmt.Errorf("render %s: %w", j.file, err)
			}
			if err := b.write(j.file, buf.Bytes()); err != nil {
				return err
			}
			observability.ObservePage(j.page.Kind, j.page.Locale)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rep, err
	}
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	rep.Pages = len(jobs)

	if err := b.writeSitemap(jobs); err != nil {
		return rep, err
	}
	if err := b.write("robots.txt", []byte(robots(site))); err != nil {
		return rep, err
	}

	rep.Duration = time.Since(began)
	log.Info().Int("pages", rep.Pages).Int("translations", rep.Translations).
		Strs("locales", rep.Locales).Dur("took", rep.Duration).Str("out", b.outDir).Msg("site built")
	return rep, nil
}

// dicts loads every section; a section missing in every locale is empty.
func (b *Builder) dicts(ctx context.Context, locale string) (map[string]content.Dict, error) {
	m, err := b.in.Content.Multiple(ctx, content.Sections, locale)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, domain.ErrContentNotFound) {
		return nil, err
	}
	m = make(map[string]content.Dict, len(content.Sections))
	for _, sec := range content.Sections {
		d, err := b.in.Content.Get(sec, locale)
		switch {
		case err == nil:
			m[sec] = d
		case errors.Is(err, domain.ErrContentNotFound):
			log.Warn().Str("section", sec).Str("locale", locale).Msg("no content for section, rendering fallbacks")
			m[sec] = content.Dict{}
		default:
			return nil, err
		}
	}
	return m, nil
}

func (b *Builder) writeTranslations(locale string, dicts map[string]content.Dict) (int, error) {
	for _, sec := range content.Sections {
		raw, err := json.Marshal(dicts[sec])
		if err != nil {
			return 0, fmt.Errorf("translations %s/%s: %w", locale, sec, err)
		}
		if err := b.write(filepath.Join("translations", locale, sec+".json"), raw); err != nil {
			return 0, err
		}
	}
	return len(content.Sections), nil
}

func (b *Builder) pagesFor(locale string, dicts map[string]content.Dict) []pageJob {
	site := b.in.Site
	published := b.in.Catalog.Published()
	common := dicts["common"]
	nav := render.BuildNav(site, published, func(key, fallback string) string {
		return content.String(common, key, fallback)
	})
	now := b.now()

	base := func(kind, p, title string) render.Page {
		return render.Page{
			Kind:      kind,
			Locale:    locale,
			Path:      p,
			Title:     title,
			Site:      site,
			Nav:       nav,
			Alternate: render.Alternates(site, locale, p),
			Dicts:     dicts,
			Now:       now,
		}
	}
	job := func(pg render.Page) pageJob {
		return pageJob{page: pg, file: render.OutputFile(site, locale, pg.Path)}
	}

	home := base(render.KindHome, "/", "")
	home.Properties = published
	home.Reviews = properties.Featured(b.in.Reviews, locale, 6)
	home.AverageScore = properties.AverageScore(b.in.Reviews)

	index := base(render.KindProperties, render.PropertiesPath(site), content.String(dicts["apartments"], "title", site.Properties.Labels.Plural))
	index.Properties = published

	contact := base(render.KindContact, render.ContactPath, content.String(dicts["contact"], "title", "Contatti"))

	jobs := []pageJob{job(home), job(index), job(contact)}
	for _, p := range published {
		p := p
		pg := base(render.KindProperty, render.PropertyPath(site, p), p.DisplayName())
		pg.Property = &p
		pg.Image = properties.HeroPath(p)
		if p.SEO != nil {
			if p.SEO.Title != "" {
				pg.Title = p.SEO.Title
			}
			pg.Description = p.SEO.Description
		}
		if pg.Description == "" {
			pg.Description = p.ShortDescription
		}
		if id := p.ChannelID(); id != 0 {
			pg.Booking = &render.Widget{
				PropertyID:   id,
				Availability: render.AssetPath(site, fmt.Sprintf("/api/availability/%d", id)),
				Checkout:     CheckoutOptions(site, locale),
				MaxGuests:    MaxGuests(site, p),
			}
		}
		jobs = append(jobs, job(pg))
	}
	return jobs
}

// MaxGuests is the property capacity capped by the site-wide limit.
func MaxGuests(site *siteconfig.Config, p domain.Property) int {
	n := site.Booking.MaxGuests
	if p.Capacity.Guests > 0 && (n <= 0 || p.Capacity.Guests < n) {
		n = p.Capacity.Guests
	}
	return n
}

func (b *Builder) write(rel string, data []byte) error {
	full := filepath.Join(b.outDir, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (b *Builder) writeSitemap(jobs []pageJob) error {
	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	lastmod := b.now().UTC().Format("2006-01-02")
	for _, j := range jobs {
		set.URLs = append(set.URLs, sitemapURL{Loc: j.page.Canonical(), LastMod: lastmod})
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	return b.write("sitemap.xml", append([]byte(xml.Header), out...))
}

func robots(site *siteconfig.Config) string {
	if site.SEO.NoIndex {
		return "User-agent: *\nDisallow: /\n"
	}
	return fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", site.FullURL("sitemap.xml"))
}
