// Package shared holds the process configuration read from the environment.
package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	LogFile     string

	SiteConfig    string
	ThemeConfig   string
	ContentDir    string
	PropertiesDir string
	ReviewsFile   string

	OutDir  string
	Workers int

	RedisAddr string
	RedisDB   int
	RedisPass string

	LodgifyBase string
	LodgifyKey  string
	LodgifyRPS  int

	CacheTTL         time.Duration
	AvailabilityDays int

	PublishBucket string
	PublishPrefix string
	AWSRegion     string
}

// Load reads .env when present, then the environment. Mail credentials are
// not part of Config; the contact relay reads them per request.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", os.Getenv(k)).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		LogFile:     env("LOG_FILE", ""),

		SiteConfig:    env("SITE_CONFIG", "config/site.yaml"),
		ThemeConfig:   env("THEME_CONFIG", "config/theme.yaml"),
		ContentDir:    env("CONTENT_DIR", "content/dictionary"),
		PropertiesDir: env("PROPERTIES_DIR", "content/properties"),
		ReviewsFile:   env("REVIEWS_FILE", "content/reviews.yaml"),

		OutDir:  env("OUT_DIR", "dist"),
		Workers: atoi("BUILD_WORKERS", 8),

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisDB:   atoi("REDIS_DB", 0),
		RedisPass: env("REDIS_PASSWORD", ""),

		LodgifyBase: env("LODGIFY_BASE_URL", "https://api.lodgify.com"),
		LodgifyKey:  env("LODGIFY_API_KEY", ""),
		LodgifyRPS:  atoi("LODGIFY_RPS", 5),

		CacheTTL:         time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		AvailabilityDays: atoi("AVAILABILITY_DAYS", 365),

		PublishBucket: env("PUBLISH_BUCKET", ""),
		PublishPrefix: env("PUBLISH_PREFIX", ""),
		AWSRegion:     env("AWS_REGION", "eu-south-1"),
	}
	if c.LodgifyKey == "" {
		log.Warn().Msg("LODGIFY_API_KEY is empty, availability API disabled")
	}
	return c
}

func (c Config) IsDev() bool { return c.AppEnv == "dev" }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
