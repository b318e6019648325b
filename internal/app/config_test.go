package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"HEALTHSCRIPT_ENV", "HEALTHSCRIPT_HTTP_ADDR", "HEALTHSCRIPT_DATABASE_DRIVER", "HEALTHSCRIPT_CORS_ORIGINS", "HEALTHSCRIPT_TRUST_PROXY"} {
		t.Setenv(key, "")
	}
	cfg := LoadConfigFromEnv()

	if cfg.HTTPAddr != ":3000" || cfg.DatabaseDriver != "memory" || cfg.IsProduction() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.RateLimitRequests != 100 || cfg.RateLimitWindow != 15*time.Minute {
		t.Fatalf("unexpected auth or rate limit defaults: %+v", cfg)
	}
	if !cfg.SeedDemoData {
		t.Fatalf("demo data should be seeded outside production")
	}
	if cfg.TrustProxy {
		t.Fatalf("forwarded headers must not be trusted by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HEALTHSCRIPT_ENV", "production")
	t.Setenv("HEALTHSCRIPT_DATABASE_DRIVER", "Postgres")
	t.Setenv("HEALTHSCRIPT_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("HEALTHSCRIPT_LOG_LEVEL", "debug")
	t.Setenv("HEALTHSCRIPT_RATE_LIMIT_REQUESTS", "not-a-number")
	t.Setenv("HEALTHSCRIPT_JWT_SECRET", "")
	t.Setenv("HEALTHSCRIPT_DATABASE_URL", "")
	t.Setenv("HEALTHSCRIPT_SEED_DEMO_DATA", "")
	t.Setenv("HEALTHSCRIPT_TRUST_PROXY", "true")

	cfg := LoadConfigFromEnv()
	if !cfg.IsProduction() || cfg.DatabaseDriver != "postgres" || cfg.SeedDemoData {
		t.Fatalf("unexpected production config: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.RateLimitRequests != 100 {
		t.Fatalf("invalid numbers should fall back, got %d", cfg.RateLimitRequests)
	}
	if !cfg.TrustProxy {
		t.Fatalf("expected proxy headers to be trusted")
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("production config with dev secret must not validate")
	}

	cfg.JWTSecret = "real-secret"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("postgres without a database url must not validate")
	}
	cfg.DatabaseURL = "postgres://localhost/healthscript"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("HEALTHSCRIPT_HTTP_ADDR=:4000\nHEALTHSCRIPT_TEST_ONLY=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("HEALTHSCRIPT_HTTP_ADDR", ":5000")
	t.Setenv("HEALTHSCRIPT_TEST_ONLY", "")
	os.Unsetenv("HEALTHSCRIPT_TEST_ONLY")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("HEALTHSCRIPT_HTTP_ADDR"); got != ":5000" {
		t.Fatalf("existing variable was overridden: %q", got)
	}
	if got := os.Getenv("HEALTHSCRIPT_TEST_ONLY"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}
