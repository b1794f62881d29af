package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/survey-data-viz/internal/adapter/chart"
	"github.com/couchcryptid/survey-data-viz/internal/adapter/nhts"
	"github.com/couchcryptid/survey-data-viz/internal/adapter/xlsx"
	"github.com/couchcryptid/survey-data-viz/internal/config"
	"github.com/couchcryptid/survey-data-viz/internal/observability"
	"github.com/couchcryptid/survey-data-viz/internal/pipeline"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg).With("run_id", uuid.NewString())
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := run(ctx, cfg, logger, metrics)

	// Push run metrics even when the run failed, so dashboards see the failure.
	if cfg.PushgatewayURL != "" {
		if err := metrics.Push(cfg.PushgatewayURL, runErr == nil); err != nil {
			logger.Warn("metrics push failed", "error", err, "url", cfg.PushgatewayURL)
		}
	}

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		os.Exit(1)
	}
	logger.Info("run complete", "chart", cfg.OutputPath)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	fetcher := nhts.NewClient(cfg.SourceURL, cfg.HTTPTimeout, logger)
	renderer := chart.NewRenderer(chart.DefaultStyle(), logger)
	exporter := xlsx.NewExporter(logger)

	p := pipeline.New(fetcher, renderer, exporter, logger, metrics, cfg.OutputPath, cfg.WorkbookPath)
	return p.Run(ctx)
}
