package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "roi-engine", cfg.OTelServiceName)
	assert.Empty(t, cfg.OTelEndpoint)
	assert.Empty(t, cfg.ScenarioCatalogURL)
	assert.False(t, cfg.StrictScenarios)
	assert.Equal(t, "USD", cfg.DisplayCurrency)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.TracingEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("SCENARIO_CATALOG_URL", "http://catalog.local/")
	t.Setenv("STRICT_SCENARIOS", "true")
	t.Setenv("DISPLAY_CURRENCY", "eur")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.TracingEnabled())
	assert.Equal(t, "http://catalog.local", cfg.ScenarioCatalogURL)
	assert.True(t, cfg.StrictScenarios)
	assert.Equal(t, "EUR", cfg.DisplayCurrency)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"PORT", "http", "invalid PORT"},
		{"PORT", "70000", "invalid PORT"},
		{"LOG_LEVEL", "chatty", "invalid LOG_LEVEL"},
		{"STRICT_SCENARIOS", "sometimes", "invalid STRICT_SCENARIOS"},
		{"DISPLAY_CURRENCY", "JPY", "unsupported DISPLAY_CURRENCY"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			os.Clearenv()
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
