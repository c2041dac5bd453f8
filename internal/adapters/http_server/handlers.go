package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"rental_site/internal/app"
	"rental_site/internal/content"
	"rental_site/internal/domain"
	"rental_site/internal/properties"
	"rental_site/internal/siteconfig"
)

// Catalogs yields the current property catalog; *properties.Loader fits.
type Catalogs interface {
	Load() (*properties.Catalog, error)
}

type Handlers struct {
	Site     *siteconfig.Config
	Catalog  Catalogs
	Content  *content.Store
	Calendar Calendars // nil disables availability and checkout
	Contact  *app.ContactService
	// Reload drops cached content and properties; nil outside dev.
	Reload func()
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

// writeETagged answers 304 when the client already holds this version.
func writeETagged(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not encode response")
		return
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) catalog(w http.ResponseWriter) (*properties.Catalog, bool) {
	cat, err := h.Catalog.Load()
	if err != nil {
		log.Error().Err(err).Msg("property catalog unavailable")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "properties could not be loaded")
		return nil, false
	}
	return cat, true
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w)
	if !ok {
		return
	}
	writeETagged(w, r, cat.Published())
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w)
	if !ok {
		return
	}
	p, found := cat.BySlug(chi.URLParam(r, "slug"))
	if !found || !p.IsPublished() {
		writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
		return
	}
	writeETagged(w, r, p)
}

// translations serves one dictionary section. Unsupported locales get the
// default; content missing everywhere is an empty object.
func (h *Handlers) translations(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	if !slices.Contains(content.Sections, section) {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown section")
		return
	}
	locale := chi.URLParam(r, "locale")
	if !h.Content.IsSupported(locale) {
		locale = h.Content.DefaultLocale()
	}
	d, err := h.Content.Get(section, locale)
	switch {
	case errors.Is(err, domain.ErrContentNotFound):
		d = content.Dict{}
	case err != nil:
		log.Error().Err(err).Str("section", section).Str("locale", locale).Msg("translation load failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "translations could not be loaded")
		return
	}
	w.Header().Set("Content-Language", locale)
	writeETagged(w, r, d)
}

func (h *Handlers) reload(w http.ResponseWriter, r *http.Request) {
	h.Reload()
	log.Info().Msg("content and property caches cleared")
	w.WriteHeader(http.StatusNoContent)
}
