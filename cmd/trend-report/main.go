// trend-report aggregates daily stock prices to monthly resolution,
// attaches SMA/EMA trend columns, and writes one CSV per ticker.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"trendcli/internal/config"
	"trendcli/internal/infrastructure"
	"trendcli/internal/pipeline"
)

func main() {
	inputPath := flag.String("in", "", "input file or directory of daily price data (defaults to configured input dir)")
	outputDir := flag.String("out", "", "output directory for per-ticker reports (defaults to configured output dir)")
	configFile := flag.String("config", "", "optional YAML config file")
	format := flag.String("format", "", "input format override: csv or xlsx")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *format != "" {
		cfg.Pipeline.InputFormat = *format
		if err := cfg.Validate(); err != nil {
			slog.Error("Invalid input format", "format", *format, "error", err)
			os.Exit(1)
		}
	}
	if *inputPath == "" {
		*inputPath = cfg.Paths.InputDir
	}
	if *outputDir == "" {
		*outputDir = cfg.Paths.OutputDir
	}
	cfg.Paths.OutputDir = *outputDir

	if err := cfg.EnsureDirectories(); err != nil {
		slog.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	cfg.Logging.FilePath = cfg.LogPath()
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	// Every run gets a unique ID carried through all log records.
	runID := uuid.New().String()
	ctx := infrastructure.WithRunID(context.Background(), runID)

	logger.InfoContext(ctx, "starting monthly trend report",
		slog.String("input", *inputPath),
		slog.String("output", *outputDir),
		slog.String("format", cfg.Pipeline.InputFormat))

	start := time.Now()
	runner := pipeline.NewRunner(cfg, logger)
	state, err := runner.Run(ctx, *inputPath, *outputDir)
	if err != nil {
		logger.ErrorContext(ctx, "run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "run complete",
		slog.Int("tickers", len(state.Monthly.Tickers())),
		slog.Int("monthly_records", state.Monthly.Len()),
		slog.Duration("elapsed", time.Since(start)))
}
