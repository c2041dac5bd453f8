package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct{ mux *chi.Mux }

// New builds the router with the shared middleware stack. Routes are added
// by MountHandlers.
func New() *Server {
	m := chi.NewRouter()

	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(15 * time.Second))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches an extra handler, e.g. /metrics or the built site.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", h.healthz)

	s.mux.Get("/v1/properties", h.listProperties)
	s.mux.Get("/v1/properties/{slug}", h.getProperty)

	s.mux.Get("/translations/{locale}/{section}.json", h.translations)

	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/availability/{propertyID}", h.availability)
		r.Post("/booking/checkout", h.checkout)
		r.Get("/contact", h.contactInfo)
		r.Post("/contact", h.contact)
		if h.Reload != nil {
			r.Post("/dev/reload", h.reload)
		}
	})
}
