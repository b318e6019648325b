package app

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSecret = "dev-insecure-secret-change-me"

type Config struct {
	HTTPAddr    string
	Environment string

	JWTSecret string
	TokenTTL  time.Duration

	// DatabaseDriver is one of memory, sqlite or postgres.
	DatabaseDriver string
	DatabaseURL    string
	SeedDemoData   bool

	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	OCRMaxBytes       int
	// TrustProxy takes the client address from X-Forwarded-For/X-Real-IP.
	// Only enable it behind a reverse proxy that sets those headers.
	TrustProxy        bool

	LogLevel  slog.Level
	LogFormat string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == devSecret) {
		return errors.New("HEALTHSCRIPT_JWT_SECRET must be set in production")
	}
	switch c.DatabaseDriver {
	case "memory":
	case "sqlite", "postgres":
		if c.DatabaseURL == "" {
			return errors.New("HEALTHSCRIPT_DATABASE_URL is required for " + c.DatabaseDriver)
		}
	default:
		return errors.New("unsupported HEALTHSCRIPT_DATABASE_DRIVER " + strconv.Quote(c.DatabaseDriver))
	}
	return nil
}

// LoadDotEnv reads .env style files into the process environment. Missing
// files are skipped and variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
	}
	return nil
}

func LoadConfigFromEnv() Config {
	environment := envOrDefault("HEALTHSCRIPT_ENV", "development")
	return Config{
		HTTPAddr:          envOrDefault("HEALTHSCRIPT_HTTP_ADDR", ":3000"),
		Environment:       environment,
		JWTSecret:         envOrDefault("HEALTHSCRIPT_JWT_SECRET", devSecret),
		TokenTTL:          time.Duration(envOrDefaultInt("HEALTHSCRIPT_TOKEN_TTL_HOURS", 24)) * time.Hour,
		DatabaseDriver:    strings.ToLower(envOrDefault("HEALTHSCRIPT_DATABASE_DRIVER", "memory")),
		DatabaseURL:       envOrDefault("HEALTHSCRIPT_DATABASE_URL", ""),
		SeedDemoData:      envOrDefaultBool("HEALTHSCRIPT_SEED_DEMO_DATA", !strings.EqualFold(environment, "production")),
		CORSOrigins:       envList("HEALTHSCRIPT_CORS_ORIGINS", []string{"*"}),
		RateLimitRequests: envOrDefaultInt("HEALTHSCRIPT_RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envOrDefaultInt("HEALTHSCRIPT_RATE_LIMIT_WINDOW_SECONDS", 900)) * time.Second,
		OCRMaxBytes:       envOrDefaultInt("HEALTHSCRIPT_OCR_MAX_BYTES", 10<<20),
		TrustProxy:        envOrDefaultBool("HEALTHSCRIPT_TRUST_PROXY", false),
		LogLevel:          parseLevel(envOrDefault("HEALTHSCRIPT_LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(envOrDefault("HEALTHSCRIPT_LOG_FORMAT", "text")),
	}
}

// NewLogger builds the process logger from LogLevel and LogFormat.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envList(key string, fallback []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
