package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/survey-data-viz/internal/domain"
	"github.com/couchcryptid/survey-data-viz/internal/observability"
)

// Fetcher downloads the survey archive and decodes its tables.
type Fetcher interface {
	FetchTables(ctx context.Context) (domain.SurveyTables, error)
}

// Renderer writes the summary chart to a file.
type Renderer interface {
	Render(summary domain.Summary, path string) error
}

// Exporter writes the summary workbook to a file.
type Exporter interface {
	Export(summary domain.Summary, path string) error
}

// Pipeline orchestrates one fetch-summarize-render pass.
type Pipeline struct {
	fetcher  Fetcher
	renderer Renderer
	exporter Exporter
	logger   *slog.Logger
	metrics  *observability.Metrics

	chartPath    string
	workbookPath string
}

// New creates a Pipeline with the given stages and observability. The
// workbook export runs only when workbookPath is non-empty.
func New(f Fetcher, r Renderer, e Exporter, logger *slog.Logger, metrics *observability.Metrics, chartPath, workbookPath string) *Pipeline {
	return &Pipeline{
		fetcher:      f,
		renderer:     r,
		exporter:     e,
		logger:       logger,
		metrics:      metrics,
		chartPath:    chartPath,
		workbookPath: workbookPath,
	}
}

// Run executes the pipeline once and returns the first error. Stages run
// strictly in order; any failure leaves the outputs of later stages
// unwritten.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "chart_path", p.chartPath)

	var tables domain.SurveyTables
	err := p.observeStage("fetch", func() error {
		var err error
		tables, err = p.fetcher.FetchTables(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("fetch tables: %w", err)
	}
	p.metrics.RowsRead.WithLabelValues("households").Add(float64(len(tables.Households)))
	p.metrics.RowsRead.WithLabelValues("trips").Add(float64(len(tables.Trips)))
	p.metrics.RowsRead.WithLabelValues("persons").Add(float64(len(tables.Persons)))

	var summary domain.Summary
	err = p.observeStage("summarize", func() error {
		var err error
		summary, err = p.summarize(tables)
		return err
	})
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		p.logger.Info("pipeline stopping before render", "reason", err)
		return err
	}

	err = p.observeStage("render", func() error {
		return p.renderer.Render(summary, p.chartPath)
	})
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	if p.workbookPath != "" {
		err = p.observeStage("export", func() error {
			return p.exporter.Export(summary, p.workbookPath)
		})
		if err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
	}

	p.logger.Info("pipeline finished", "cells", len(summary.Cells))
	return nil
}

// summarize runs the in-memory stages: trip aggregation, the household
// join, tier classification, and the weighted summary.
func (p *Pipeline) summarize(tables domain.SurveyTables) (domain.Summary, error) {
	distances := domain.AggregateTripMiles(tables.Trips)
	p.metrics.TripsAggregated.Add(float64(len(tables.Trips)))

	joined := domain.JoinModeDistances(tables.Households, distances)

	classified, excluded := domain.ClassifyHouseholds(joined)
	p.metrics.HouseholdsExcluded.WithLabelValues("density").Add(float64(excluded.Density))
	p.metrics.HouseholdsExcluded.WithLabelValues("income").Add(float64(excluded.Income))
	if excluded.Density > 0 || excluded.Income > 0 {
		p.logger.Info("households excluded from summary",
			"density", excluded.Density,
			"income", excluded.Income,
		)
	}

	summary, err := domain.Summarize(classified)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("summarize households: %w", err)
	}
	p.metrics.SummaryCells.Set(float64(len(summary.Cells)))

	p.logger.Info("summary built",
		"households", len(tables.Households),
		"trips", len(tables.Trips),
		"mode_distances", len(distances),
		"cells", len(summary.Cells),
	)
	return summary, nil
}

// observeStage times fn and records the duration under the stage label.
func (p *Pipeline) observeStage(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	p.metrics.StageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
	p.logger.Debug("stage finished", "stage", stage, "duration", elapsed)
	return err
}
