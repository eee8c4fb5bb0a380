package dataprocessing

import (
	"context"
	"log/slog"

	apperrors "trendcli/internal/errors"
	"trendcli/pkg/contracts/domain"
)

// Aggregator collapses a daily table to monthly resolution. For each
// (ticker, calendar month) group it emits one record with:
//
//	open   = open of the first trading day in the month
//	close  = close of the last trading day in the month
//	high   = max daily high
//	low    = min daily low
//	volume = sum of daily volumes
//
// Months with no trading days simply do not appear in the output; no
// gap filling is performed.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates a monthly aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Aggregate reduces every ticker in the daily table to its monthly
// series. Each ticker's months come out in ascending calendar order.
func (a *Aggregator) Aggregate(ctx context.Context, daily *domain.DailyTable) (*domain.MonthlyTable, error) {
	monthly := domain.NewMonthlyTable()

	for _, ticker := range daily.Tickers() {
		series, err := aggregateTicker(ticker, daily.Records(ticker))
		if err != nil {
			return nil, err
		}
		monthly.SetSeries(ticker, series)
	}

	a.logger.InfoContext(ctx, "monthly aggregation complete",
		slog.Int("ticker_count", len(monthly.Tickers())),
		slog.Int("monthly_record_count", monthly.Len()))

	return monthly, nil
}

// aggregateTicker reduces one ticker's date-sorted daily records to its
// monthly series. The input ordering is what makes first=open and
// last=close correct, so callers must pass normalized records.
func aggregateTicker(ticker string, records []domain.DailyRecord) ([]domain.MonthlyRecord, error) {
	if len(records) == 0 {
		return nil, apperrors.NewEmptyGroupError(ticker)
	}

	var series []domain.MonthlyRecord
	var current *domain.MonthlyRecord

	for _, day := range records {
		month := day.MonthOf()
		if current == nil || current.Month != month {
			if current != nil {
				series = append(series, *current)
			}
			current = &domain.MonthlyRecord{
				Ticker: ticker,
				Month:  month,
				Open:   day.Open,
				High:   day.High,
				Low:    day.Low,
				Close:  day.Close,
				Volume: day.Volume,
			}
			continue
		}

		if day.High > current.High {
			current.High = day.High
		}
		if day.Low < current.Low {
			current.Low = day.Low
		}
		current.Close = day.Close
		current.Volume += day.Volume
	}
	series = append(series, *current)

	return series, nil
}
