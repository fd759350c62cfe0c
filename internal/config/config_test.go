package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("S3_BUCKET", "")

	cfg := Load()
	if cfg.Addr() != ":8080" {
		t.Fatalf("unexpected addr %s", cfg.Addr())
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("unexpected driver %s", cfg.DBDriver)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("unexpected ttl %s", cfg.JWTTTL)
	}
	if cfg.UploadsEnabled() {
		t.Fatalf("uploads should be disabled without a bucket")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DEBUG", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()
	if cfg.Addr() != ":9000" || !cfg.DBDebug || cfg.RedisDB != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.RateLimitPerMinute)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}
