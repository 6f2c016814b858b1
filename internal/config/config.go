package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

const (
	defaultReferenceDate = "2025-07"
	defaultRatePerKg     = "10"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv   string
	Currency string

	// ReferenceDate is the "current" month used for expiry checks.
	ReferenceDate catalog.YearMonth
	RatePerKg     pricing.Money

	LogFormat        string
	LogLevel         string
	MetricsNamespace string

	TracingEnabled       bool
	TracingExporter      string
	TracingEndpoint      string
	TracingSamplingRatio float64
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	ref, err := catalog.ParseYearMonth(valueOrDefault(k.String("CHECKOUT_REFERENCE_DATE"), defaultReferenceDate))
	if err != nil {
		return nil, fmt.Errorf("CHECKOUT_REFERENCE_DATE: %w", err)
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(valueOrDefault(k.String("SHIPPING_RATE_PER_KG"), defaultRatePerKg)))
	if err != nil {
		return nil, fmt.Errorf("SHIPPING_RATE_PER_KG: %w", err)
	}
	if !rate.IsPositive() {
		return nil, errors.New("SHIPPING_RATE_PER_KG must be positive")
	}

	cfg := &Config{
		AppEnv:               valueOrDefault(k.String("APP_ENV"), "development"),
		Currency:             valueOrDefault(k.String("CURRENCY"), "EGP"),
		ReferenceDate:        ref,
		RatePerKg:            rate,
		LogFormat:            valueOrDefault(k.String("OBS_LOG_FORMAT"), "console"),
		LogLevel:             valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
		MetricsNamespace:     valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "toko"),
		TracingEnabled:       parseBool(k.String("OBS_ENABLE_TRACING")),
		TracingExporter:      valueOrDefault(k.String("OBS_TRACING_EXPORTER"), "otlp"),
		TracingEndpoint:      strings.TrimSpace(k.String("OBS_OTLP_ENDPOINT")),
		TracingSamplingRatio: parseFloat(k.String("OBS_TRACING_SAMPLING_RATIO"), 1.0),
	}
	return cfg, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseFloat(value string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return v
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
