package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"rental_site/internal/adapters/observability"
	"rental_site/internal/adapters/publish"
	"rental_site/internal/app"
	"rental_site/internal/content"
	"rental_site/internal/properties"
	"rental_site/internal/render"
	"rental_site/internal/shared"
	"rental_site/internal/siteconfig"
	"rental_site/internal/theme"
)

func main() {
	cfg := shared.Load()
	out := flag.String("out", cfg.OutDir, "output directory")
	workers := flag.Int("workers", cfg.Workers, "concurrent page renders")
	doPublish := flag.Bool("publish", false, "upload the output to PUBLISH_BUCKET")
	flag.Parse()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("site", cfg.SiteConfig).Str("out", *out).Int("workers", *workers).Msg("build starting")

	site, err := siteconfig.Load(cfg.SiteConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("site config invalid")
	}
	th, err := theme.Load(cfg.ThemeConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("theme config invalid")
	}
	catalog, err := properties.NewLoader(cfg.PropertiesDir, site.Locales.Default).Load()
	if err != nil {
		log.Fatal().Err(err).Msg("properties invalid")
	}
	reviews, err := properties.LoadReviews(cfg.ReviewsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("reviews invalid")
	}
	renderer, err := render.New(site)
	if err != nil {
		log.Fatal().Err(err).Msg("templates invalid")
	}

	b := app.NewBuilder(app.BuildInputs{
		Site:     site,
		Theme:    theme.Resolve(th),
		Catalog:  catalog,
		Reviews:  reviews,
		Content:  content.NewStore(cfg.ContentDir, site.Locales.Default, site.Locales.Supported),
		Renderer: renderer,
	}, *out, *workers)
	if _, err := b.Build(ctx); err != nil {
		log.Fatal().Err(err).Msg("build failed")
	}

	if !*doPublish {
		return
	}
	if cfg.PublishBucket == "" {
		log.Fatal().Msg("-publish needs PUBLISH_BUCKET")
	}
	pub, err := publish.NewS3FromEnv(ctx, cfg.AWSRegion, cfg.PublishBucket, cfg.PublishPrefix, *workers)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize S3 publisher")
	}
	n, err := pub.Publish(ctx, *out)
	if err != nil {
		log.Fatal().Err(err).Int("uploaded", n).Msg("publish failed")
	}
	log.Info().Int("files", n).Str("bucket", cfg.PublishBucket).Msg("site published")
}
