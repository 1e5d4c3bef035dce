package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"

	"roi-engine/internal/calculators"
	"roi-engine/internal/config"
	"roi-engine/internal/engine"
	"roi-engine/internal/handler"
	"roi-engine/internal/logging"
	"roi-engine/internal/metrics"
	"roi-engine/internal/scenariocatalog"
	"roi-engine/internal/shell"
	"roi-engine/internal/telemetry"
)

func main() {
	mode := flag.String("mode", "server", "run mode: server or shell")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		logging.Logger().Fatal().Err(err).Str("path", *envFile).Msg("failed to read env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Init(cfg.IsDevelopment(), cfg.LogLevel)
	log := logging.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.OTelServiceName, cfg.Environment, cfg.OTelEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	if cfg.TracingEnabled() {
		log.Info().Str("endpoint", cfg.OTelEndpoint).Msg("exporting traces")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("tracing shutdown failed")
		}
	}()

	registry := buildRegistry(ctx, cfg)

	switch *mode {
	case "shell":
		if err := shell.New(registry, cfg.DisplayCurrency, os.Stdin, os.Stdout).Run(); err != nil {
			log.Error().Err(err).Msg("shell stopped")
		}
	case "server":
		serve(ctx, cfg, registry)
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode, expected server or shell")
	}
}

// buildRegistry applies remote scenario overrides to the built-in use cases and
// checks every scenario set.
func buildRegistry(ctx context.Context, cfg *config.Config) *calculators.Registry {
	log := logging.Logger()
	registry := calculators.Builtin()

	catalog := scenariocatalog.New(cfg.ScenarioCatalogURL)
	if catalog.Enabled() {
		ids := make([]string, 0, registry.Len())
		for _, def := range registry.Definitions() {
			ids = append(ids, def.ID)
		}
		overrides := catalog.Overrides(ctx, ids)
		log.Info().Int("overridden", len(overrides)).Str("url", cfg.ScenarioCatalogURL).Msg("scenario catalog loaded")
		registry = registry.WithScenarioOverrides(overrides)
	}

	if err := registry.Validate(); err != nil {
		if cfg.StrictScenarios {
			log.Fatal().Err(err).Msg("scenario configuration is invalid")
		}
		log.Warn().Err(err).Msg("scenario configuration has problems, falling back at calculation time")
	}
	return registry
}

func serve(ctx context.Context, cfg *config.Config, registry *calculators.Registry) {
	log := logging.Logger()

	prom := metrics.NewPrometheus()
	h := handler.New(engine.New(registry, prom), handler.Options{
		ServiceName: cfg.OTelServiceName,
		Currency:    cfg.DisplayCurrency,
		Observer:    prom,
		Metrics:     prom.Handler(),
	})

	server := &fasthttp.Server{
		Handler:      h.Handle,
		Name:         cfg.OTelServiceName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Int("use_cases", registry.Len()).Msg("ROI engine starting")
		errCh <- server.ListenAndServe(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
