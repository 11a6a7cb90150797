package main

import (
	"context"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/ffl-tools/trophyline/external/espn"
	"github.com/ffl-tools/trophyline/internal/config"
	"github.com/ffl-tools/trophyline/internal/interfaces/render"
	"github.com/ffl-tools/trophyline/internal/observability"
	"github.com/ffl-tools/trophyline/internal/platform/logging"
	"github.com/ffl-tools/trophyline/internal/platform/resilience"
	"github.com/ffl-tools/trophyline/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewJSON(logging.LevelError).Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownUptrace(shutdownCtx)
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}
	defer func() { _ = stopPyroscope() }()

	if err := run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "report failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	client := espn.NewClient(espn.ClientConfig{
		BaseURL: cfg.ESPNBaseURL,
		SWID:    cfg.ESPNSWID,
		ESPNS2:  cfg.ESPNS2,
		Timeout: cfg.ESPNTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMax,
		},
	})

	fetchSvc := usecase.NewFetchService(espn.NewProvider(client), cfg.CacheTTL, logger)
	reportSvc := usecase.NewReportService(
		fetchSvc,
		usecase.NewPhaseService(),
		usecase.NewSeasonChallengeService(),
		usecase.NewWeeklyChallengeService(),
		usecase.NewBracketService(),
		usecase.NewChampionshipService(),
		logger,
	)

	report, err := reportSvc.Build(ctx, cfg.SeasonYear, divisionRefs(cfg))
	if err != nil {
		return err
	}

	renderer, err := render.New(cfg.OutputFormat)
	if err != nil {
		return err
	}
	out, err := renderer.Render(report)
	if err != nil {
		return err
	}

	if cfg.OutputPath != "" {
		return os.WriteFile(cfg.OutputPath, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// divisionRefs orders configured divisions by name so every run iterates
// them the same way; tie-breaks downstream depend on stable input order.
func divisionRefs(cfg config.Config) []usecase.DivisionRef {
	names := make([]string, 0, len(cfg.Divisions))
	for name := range cfg.Divisions {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]usecase.DivisionRef, 0, len(names))
	for _, name := range names {
		out = append(out, usecase.DivisionRef{Name: name, LeagueID: cfg.Divisions[name]})
	}
	return out
}
