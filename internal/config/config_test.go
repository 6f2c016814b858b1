package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/config"
)

func clearedEnv(overrides map[string]string) map[string]string {
	env := map[string]string{
		"APP_ENV":                    "",
		"CURRENCY":                   "",
		"CHECKOUT_REFERENCE_DATE":    "",
		"SHIPPING_RATE_PER_KG":       "",
		"OBS_LOG_FORMAT":             "",
		"OBS_LOG_LEVEL":              "",
		"OBS_METRICS_NAMESPACE":      "",
		"OBS_ENABLE_TRACING":         "",
		"OBS_TRACING_EXPORTER":       "",
		"OBS_OTLP_ENDPOINT":          "",
		"OBS_TRACING_SAMPLING_RATIO": "",
	}
	for k, v := range overrides {
		env[k] = v
	}
	return env
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(clearedEnv(nil))
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, "EGP", cfg.Currency)
	require.Equal(t, catalog.YearMonth{Year: 2025, Month: time.July}, cfg.ReferenceDate)
	require.True(t, cfg.RatePerKg.Equal(decimal.NewFromInt(10)))
	require.Equal(t, "console", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "toko", cfg.MetricsNamespace)
	require.False(t, cfg.TracingEnabled)
	require.Equal(t, "otlp", cfg.TracingExporter)
	require.Equal(t, 1.0, cfg.TracingSamplingRatio)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(clearedEnv(map[string]string{
		"CHECKOUT_REFERENCE_DATE":    "2026-01",
		"SHIPPING_RATE_PER_KG":       "12.5",
		"OBS_LOG_FORMAT":             "json",
		"OBS_ENABLE_TRACING":         "yes",
		"OBS_TRACING_EXPORTER":       "none",
		"OBS_TRACING_SAMPLING_RATIO": "0.25",
	}))
	require.NoError(t, err)

	require.Equal(t, catalog.YearMonth{Year: 2026, Month: time.January}, cfg.ReferenceDate)
	require.Equal(t, "12.5", cfg.RatePerKg.String())
	require.Equal(t, "json", cfg.LogFormat)
	require.True(t, cfg.TracingEnabled)
	require.Equal(t, "none", cfg.TracingExporter)
	require.Equal(t, 0.25, cfg.TracingSamplingRatio)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := config.LoadForTests(clearedEnv(map[string]string{"CHECKOUT_REFERENCE_DATE": "July"}))
	require.ErrorContains(t, err, "CHECKOUT_REFERENCE_DATE")

	_, err = config.LoadForTests(clearedEnv(map[string]string{"SHIPPING_RATE_PER_KG": "abc"}))
	require.ErrorContains(t, err, "SHIPPING_RATE_PER_KG")

	_, err = config.LoadForTests(clearedEnv(map[string]string{"SHIPPING_RATE_PER_KG": "0"}))
	require.ErrorContains(t, err, "must be positive")
}
