// Package pipeline orchestrates the monthly trend run: load daily
// records, aggregate to monthly resolution, enrich with indicators,
// then export. Export only happens after every compute stage has
// succeeded, so a failed run leaves no partial artifacts behind.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"trendcli/pkg/contracts/domain"
)

// State carries intermediate results between pipeline stages.
type State struct {
	// InputPath is the file or directory the run reads from.
	InputPath string
	// OutputDir is where artifacts are written.
	OutputDir string

	Daily   *domain.DailyTable
	Monthly *domain.MonthlyTable
}

// Stage is one step of the pipeline.
type Stage interface {
	// Name returns the stage name used in logs.
	Name() string

	// Execute runs the stage, reading and updating the shared state.
	Execute(ctx context.Context, state *State) error
}

// runStage executes one stage with timing and structured logging.
func runStage(ctx context.Context, logger *slog.Logger, stage Stage, state *State) error {
	start := time.Now()
	logger.InfoContext(ctx, "stage started", slog.String("stage", stage.Name()))

	if err := stage.Execute(ctx, state); err != nil {
		logger.ErrorContext(ctx, "stage failed",
			slog.String("stage", stage.Name()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return err
	}

	logger.InfoContext(ctx, "stage completed",
		slog.String("stage", stage.Name()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
