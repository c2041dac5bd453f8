package shared

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("BUILD_WORKERS", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	c := Load()
	if c.AppEnv != "prod" || c.HTTPAddr != ":8080" || c.Workers != 8 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.CacheTTL != 5*time.Minute || c.AvailabilityDays != 365 {
		t.Fatalf("cache defaults: %v %d", c.CacheTTL, c.AvailabilityDays)
	}
	if c.SiteConfig != "config/site.yaml" || c.OutDir != "dist" {
		t.Fatalf("path defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("BUILD_WORKERS", "3")
	t.Setenv("LODGIFY_RPS", "not-a-number")
	t.Setenv("REDIS_DB", "2")
	c := Load()
	if !c.IsDev() || c.Workers != 3 || c.RedisDB != 2 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.LodgifyRPS != 5 {
		t.Fatalf("bad integer should fall back, got %v", c.LodgifyRPS)
	}
}
