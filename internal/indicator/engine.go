package indicator

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	apperrors "trendcli/internal/errors"
	"trendcli/pkg/contracts/domain"
)

// Standard trailing windows attached to every monthly series.
const (
	ShortWindow = 10
	LongWindow  = 20
)

// Engine enriches monthly series with SMA and EMA columns. Tickers are
// independent, so enrichment fans out across a bounded worker group.
type Engine struct {
	workers int
	logger  *slog.Logger
}

// NewEngine creates an indicator engine. workers bounds how many
// tickers are enriched concurrently; values below 1 are treated as 1.
func NewEngine(workers int, logger *slog.Logger) *Engine {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{workers: workers, logger: logger}
}

// Enrich computes SMA-10/20 and EMA-10/20 over each ticker's monthly
// closes and writes them back into a new table. The input table is not
// modified. Enrichment is deterministic: same input, same output.
func (e *Engine) Enrich(ctx context.Context, monthly *domain.MonthlyTable) (*domain.MonthlyTable, error) {
	tickers := monthly.Tickers()
	enriched := make([][]domain.MonthlyRecord, len(tickers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			series, err := EnrichSeries(ticker, monthly.Series(ticker))
			if err != nil {
				return err
			}
			enriched[i] = series
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := domain.NewMonthlyTable()
	for i, ticker := range tickers {
		result.SetSeries(ticker, enriched[i])
	}

	e.logger.InfoContext(ctx, "indicator enrichment complete",
		slog.Int("ticker_count", len(tickers)),
		slog.Int("workers", e.workers))

	return result, nil
}

// EnrichSeries computes the indicator columns for one ticker's monthly
// series. SMA values are nil until a full window of closes exists; EMA
// values are present at every index.
func EnrichSeries(ticker string, series []domain.MonthlyRecord) ([]domain.MonthlyRecord, error) {
	if len(series) == 0 {
		return nil, apperrors.NewEmptySeriesError(ticker)
	}

	sma10 := NewSMA(ShortWindow)
	sma20 := NewSMA(LongWindow)
	ema10 := NewEMA(ShortWindow)
	ema20 := NewEMA(LongWindow)

	out := make([]domain.MonthlyRecord, len(series))
	for i, record := range series {
		sma10.Update(record.Close)
		sma20.Update(record.Close)
		ema10.Update(record.Close)
		ema20.Update(record.Close)

		record.SMA10 = sma10.ValueOrNil()
		record.SMA20 = sma20.ValueOrNil()
		record.EMA10 = ema10.ValueOrNil()
		record.EMA20 = ema20.ValueOrNil()
		out[i] = record
	}

	return out, nil
}
