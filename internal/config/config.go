package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"roi-engine/internal/report"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	OTelServiceName string
	OTelEndpoint    string

	ScenarioCatalogURL string
	StrictScenarios    bool

	DisplayCurrency string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		OTelServiceName:    getEnv("OTEL_SERVICE_NAME", "roi-engine"),
		OTelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ScenarioCatalogURL: strings.TrimRight(getEnv("SCENARIO_CATALOG_URL", ""), "/"),
		DisplayCurrency:    strings.ToUpper(getEnv("DISPLAY_CURRENCY", "USD")),
	}

	strict, err := strconv.ParseBool(getEnv("STRICT_SCENARIOS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid STRICT_SCENARIOS: %w", err)
	}
	cfg.StrictScenarios = strict

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if !slices.Contains(report.Currencies, c.DisplayCurrency) {
		return fmt.Errorf("unsupported DISPLAY_CURRENCY %q", c.DisplayCurrency)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// TracingEnabled reports whether spans should be exported.
func (c *Config) TracingEnabled() bool {
	return c.OTelEndpoint != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
