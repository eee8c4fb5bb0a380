package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"trendcli/internal/config"
	"trendcli/internal/dataprocessing"
	"trendcli/internal/exporter"
	"trendcli/internal/indicator"
)

// loadStage reads and normalizes the daily input.
type loadStage struct {
	loader *dataprocessing.Loader
}

func (s *loadStage) Name() string { return "load" }

func (s *loadStage) Execute(ctx context.Context, state *State) error {
	daily, err := s.loader.Load(ctx, state.InputPath)
	if err != nil {
		return err
	}
	state.Daily = daily
	return nil
}

// aggregateStage collapses daily records to monthly resolution.
type aggregateStage struct {
	aggregator *dataprocessing.Aggregator
}

func (s *aggregateStage) Name() string { return "aggregate" }

func (s *aggregateStage) Execute(ctx context.Context, state *State) error {
	monthly, err := s.aggregator.Aggregate(ctx, state.Daily)
	if err != nil {
		return err
	}
	state.Monthly = monthly
	return nil
}

// enrichStage attaches the moving-average columns.
type enrichStage struct {
	engine *indicator.Engine
}

func (s *enrichStage) Name() string { return "enrich" }

func (s *enrichStage) Execute(ctx context.Context, state *State) error {
	monthly, err := s.engine.Enrich(ctx, state.Monthly)
	if err != nil {
		return err
	}
	state.Monthly = monthly
	return nil
}

// exportStage writes all output artifacts. It runs last so that no
// file is written unless every compute stage succeeded.
type exportStage struct {
	tickers *exporter.TickerExporter
	summary *exporter.SummaryExporter
}

func (s *exportStage) Name() string { return "export" }

func (s *exportStage) Execute(ctx context.Context, state *State) error {
	if err := s.tickers.ExportTickerFiles(ctx, state.Monthly, state.OutputDir); err != nil {
		return err
	}

	if err := s.tickers.ExportCombined(ctx, state.Monthly,
		filepath.Join(state.OutputDir, "combined.csv")); err != nil {
		return err
	}

	summaries := exporter.GenerateSummaries(state.Monthly)
	if err := s.summary.ExportSummaryCSV(ctx, summaries,
		filepath.Join(state.OutputDir, "summary.csv")); err != nil {
		return err
	}
	if err := s.summary.ExportSummaryJSON(ctx, summaries,
		filepath.Join(state.OutputDir, "summary.json")); err != nil {
		return err
	}

	return nil
}

// Runner wires the stages together for one run.
type Runner struct {
	stages []Stage
	logger *slog.Logger
}

// NewRunner builds the standard four-stage pipeline from configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger: logger,
		stages: []Stage{
			&loadStage{loader: dataprocessing.NewLoader(cfg.Pipeline.InputFormat, logger)},
			&aggregateStage{aggregator: dataprocessing.NewAggregator(logger)},
			&enrichStage{engine: indicator.NewEngine(cfg.Pipeline.Workers, logger)},
			&exportStage{
				tickers: exporter.NewTickerExporter(cfg.Pipeline.OutputPrefix, logger),
				summary: exporter.NewSummaryExporter(logger),
			},
		},
	}
}

// Run executes the pipeline against inputPath, writing artifacts to
// outputDir. The run fails on the first stage error with nothing
// written when the failure happened before the export stage.
func (r *Runner) Run(ctx context.Context, inputPath, outputDir string) (*State, error) {
	state := &State{InputPath: inputPath, OutputDir: outputDir}

	for _, stage := range r.stages {
		if err := runStage(ctx, r.logger, stage, state); err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}

	return state, nil
}
