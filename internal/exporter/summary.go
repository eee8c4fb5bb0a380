package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"trendcli/pkg/contracts/domain"
)

// TickerSummary represents summary statistics for one ticker's monthly
// series, written alongside the per-ticker files for quick inspection.
type TickerSummary struct {
	Ticker       string   `json:"ticker"`
	Months       int      `json:"months"`
	FirstMonth   string   `json:"first_month"`
	LastMonth    string   `json:"last_month"`
	LastClose    float64  `json:"last_close"`
	HighestClose float64  `json:"highest_close"`
	LowestClose  float64  `json:"lowest_close"`
	TotalVolume  int64    `json:"total_volume"`
	LastSMA10    *float64 `json:"last_sma10"`
	LastSMA20    *float64 `json:"last_sma20"`
	LastEMA10    *float64 `json:"last_ema10"`
	LastEMA20    *float64 `json:"last_ema20"`
}

// SummaryExporter writes run-level summary artifacts.
type SummaryExporter struct {
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewSummaryExporter creates a summary exporter.
func NewSummaryExporter(logger *slog.Logger) *SummaryExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryExporter{
		csvWriter: NewCSVWriter(logger),
		logger:    logger,
	}
}

// GenerateSummaries builds per-ticker summary statistics from an
// enriched monthly table, sorted by ticker symbol.
func GenerateSummaries(monthly *domain.MonthlyTable) []TickerSummary {
	var summaries []TickerSummary
	for _, ticker := range monthly.Tickers() {
		series := monthly.Series(ticker)
		if len(series) == 0 {
			continue
		}

		last := series[len(series)-1]
		summary := TickerSummary{
			Ticker:       ticker,
			Months:       len(series),
			FirstMonth:   series[0].Month.String(),
			LastMonth:    last.Month.String(),
			LastClose:    last.Close,
			HighestClose: series[0].Close,
			LowestClose:  series[0].Close,
			LastSMA10:    last.SMA10,
			LastSMA20:    last.SMA20,
			LastEMA10:    last.EMA10,
			LastEMA20:    last.EMA20,
		}

		for _, record := range series {
			if record.Close > summary.HighestClose {
				summary.HighestClose = record.Close
			}
			if record.Close < summary.LowestClose {
				summary.LowestClose = record.Close
			}
			summary.TotalVolume += record.Volume
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Ticker < summaries[j].Ticker
	})
	return summaries
}

// ExportSummaryCSV writes the summaries to a CSV file.
func (s *SummaryExporter) ExportSummaryCSV(ctx context.Context, summaries []TickerSummary, outputPath string) error {
	headers := []string{
		"Ticker", "Months", "FirstMonth", "LastMonth", "LastClose",
		"HighestClose", "LowestClose", "TotalVolume",
		"LastSMA10", "LastSMA20", "LastEMA10", "LastEMA20",
	}

	var records [][]string
	for _, summary := range summaries {
		records = append(records, []string{
			summary.Ticker,
			fmt.Sprintf("%d", summary.Months),
			summary.FirstMonth,
			summary.LastMonth,
			formatFloat(summary.LastClose),
			formatFloat(summary.HighestClose),
			formatFloat(summary.LowestClose),
			formatInt(summary.TotalVolume),
			formatOptFloat(summary.LastSMA10),
			formatOptFloat(summary.LastSMA20),
			formatOptFloat(summary.LastEMA10),
			formatOptFloat(summary.LastEMA20),
		})
	}

	if err := s.csvWriter.WriteSimpleCSV(outputPath, headers, records); err != nil {
		return fmt.Errorf("failed to write summary CSV: %w", err)
	}

	s.logger.InfoContext(ctx, "summary CSV exported",
		slog.String("path", outputPath),
		slog.Int("ticker_count", len(summaries)))

	return nil
}

// ExportSummaryJSON writes the summaries as indented JSON. Undefined
// indicator values serialize as null.
func (s *SummaryExporter) ExportSummaryJSON(ctx context.Context, summaries []TickerSummary, outputPath string) error {
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summaries: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary JSON: %w", err)
	}

	s.logger.InfoContext(ctx, "summary JSON exported",
		slog.String("path", outputPath),
		slog.Int("ticker_count", len(summaries)))

	return nil
}
