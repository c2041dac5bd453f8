package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "rental_site/internal/adapters/http_server"
	"rental_site/internal/adapters/localcache"
	"rental_site/internal/adapters/lodgify"
	"rental_site/internal/adapters/mail"
	"rental_site/internal/adapters/observability"
	redisad "rental_site/internal/adapters/redis"
	"rental_site/internal/app"
	"rental_site/internal/content"
	"rental_site/internal/domain"
	"rental_site/internal/properties"
	"rental_site/internal/shared"
	"rental_site/internal/siteconfig"
)

func main() {
	cfg := shared.Load()

	// console in dev, JSON otherwise
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogFile)

	site, err := siteconfig.Load(cfg.SiteConfig)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SiteConfig).Msg("site config invalid")
	}

	store := content.NewStore(cfg.ContentDir, site.Locales.Default, site.Locales.Supported)
	loader := properties.NewLoader(cfg.PropertiesDir, site.Locales.Default)
	if _, err := loader.Load(); err != nil {
		log.Fatal().Err(err).Msg("properties invalid")
	}

	// availability: ccache L1 in front of redis L2
	var calendars server.Calendars
	l1 := localcache.New(2000)
	defer l1.Stop()
	var l2 domain.Cache
	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer rc.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := rc.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, using in-process cache only")
	} else {
		l2 = rc
	}
	cancelPing()
	if cfg.LodgifyKey != "" {
		client, err := lodgify.New(cfg.LodgifyBase, cfg.LodgifyKey, cfg.LodgifyRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Lodgify client")
		}
		cache := localcache.NewTiered(l1, l2, 60)
		calendars = app.NewAvailabilityService(client, cache, cfg.CacheTTL, cfg.AvailabilityDays)
	}

	form := site.ContactForm()
	contact := app.NewContactService(form,
		func(provider, webhookURL string) (domain.Mailer, error) {
			return mail.ForProvider(provider, webhookURL, os.Getenv)
		},
		func(id string, s domain.ContactSubmission) (domain.Email, error) {
			return mail.Compose(id, s, mail.Settings{
				SiteName: site.Identity.Name,
				From:     form.EmailFrom,
				To:       form.EmailTo,
				Subject:  form.EmailSubject,
			})
		})

	h := &server.Handlers{
		Site:     site,
		Catalog:  loader,
		Content:  store,
		Calendar: calendars,
		Contact:  contact,
	}
	if cfg.IsDev() {
		h.Reload = func() {
			store.Clear()
			loader.Clear()
		}
	}

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)
	if fi, err := os.Stat(cfg.OutDir); err == nil && fi.IsDir() {
		srv.Mount("/*", http.FileServer(http.Dir(cfg.OutDir)))
		log.Info().Str("dir", cfg.OutDir).Msg("serving built site")
	}

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Strs("locales", site.Locales.Supported).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("API stopped")
}
