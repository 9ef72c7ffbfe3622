// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for OTEL_EXPORTER.
const (
	ExporterNone     = "none"
	ExporterStdout   = "stdout"
	ExporterOTLPGRPC = "otlp-grpc"
	ExporterOTLPHTTP = "otlp-http"
)

// MinJWTSecretLength is the shortest accepted JWT signing secret.
const MinJWTSecretLength = 16

const (
	defaultHTTPAddr    = ":8000"
	defaultTokenTTL    = 30 * 24 * time.Hour
	defaultServiceName = "expense-api"
	defaultSuggestTTL  = time.Hour
)

// Config holds all configuration for the application.
type Config struct {
	DatabaseURL  string
	JWTSecret    string
	TokenTTL     time.Duration
	HTTPAddr     string
	LogLevel     string
	LogFormat    string
	CORSOrigins  []string
	GeminiAPIKey string
	SuggestTTL   time.Duration
	OTelExporter string
	ServiceName  string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		HTTPAddr:     os.Getenv("HTTP_ADDR"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogFormat:    os.Getenv("LOG_FORMAT"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		OTelExporter: strings.ToLower(strings.TrimSpace(os.Getenv("OTEL_EXPORTER"))),
		ServiceName:  os.Getenv("SERVICE_NAME"),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	if cfg.OTelExporter == "" {
		cfg.OTelExporter = ExporterNone
	}

	cfg.TokenTTL = defaultTokenTTL
	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil && ttl > 0 {
			cfg.TokenTTL = ttl
		}
	}

	cfg.SuggestTTL = defaultSuggestTTL
	if ttlStr := os.Getenv("SUGGESTION_CACHE_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil && ttl > 0 {
			cfg.SuggestTTL = ttl
		}
	}

	for origin := range strings.SplitSeq(os.Getenv("CORS_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	// Validate required configuration.
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	} else if len(c.JWTSecret) < MinJWTSecretLength {
		errs = append(errs, fmt.Sprintf("JWT_SECRET must be at least %d characters", MinJWTSecretLength))
	}

	exporters := []string{ExporterNone, ExporterStdout, ExporterOTLPGRPC, ExporterOTLPHTTP}
	if !slices.Contains(exporters, c.OTelExporter) {
		errs = append(errs, fmt.Sprintf("OTEL_EXPORTER must be one of %s", strings.Join(exporters, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// GeminiEnabled reports whether category suggestions can be served.
func (c *Config) GeminiEnabled() bool {
	return c.GeminiAPIKey != ""
}

// AllowsOrigin reports whether a browser origin may call the API.
func (c *Config) AllowsOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range c.CORSOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
