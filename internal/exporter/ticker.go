package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"trendcli/pkg/contracts/domain"
)

// monthlyHeaders is the column order of every per-ticker output file.
var monthlyHeaders = []string{
	"Month", "Open", "High", "Low", "Close", "Volume",
	"SMA10", "SMA20", "EMA10", "EMA20",
}

// TickerExporter writes one monthly report file per ticker.
type TickerExporter struct {
	csvWriter *CSVWriter
	prefix    string
	logger    *slog.Logger
}

// NewTickerExporter creates a per-ticker report exporter. prefix is
// prepended to the ticker symbol in the output filename, so a prefix
// of "result_" produces result_AAPL.csv.
func NewTickerExporter(prefix string, logger *slog.Logger) *TickerExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TickerExporter{
		csvWriter: NewCSVWriter(logger),
		prefix:    prefix,
		logger:    logger,
	}
}

// FileName returns the output filename for a ticker symbol.
func (t *TickerExporter) FileName(ticker string) string {
	return fmt.Sprintf("%s%s.csv", t.prefix, ticker)
}

// ExportTickerFiles writes one CSV per ticker into outputDir, months in
// ascending order. Every ticker present in the table gets exactly one
// file; the export fails on the first write error.
func (t *TickerExporter) ExportTickerFiles(ctx context.Context, monthly *domain.MonthlyTable, outputDir string) error {
	for _, series := range monthly.Partition() {
		filePath := filepath.Join(outputDir, t.FileName(series.Ticker))

		records := make([][]string, 0, len(series.Records))
		for _, record := range series.Records {
			records = append(records, monthlyToCSVRow(record))
		}

		if err := t.csvWriter.WriteSimpleCSV(filePath, monthlyHeaders, records); err != nil {
			return fmt.Errorf("failed to write ticker file for %s: %w", series.Ticker, err)
		}
	}

	t.logger.InfoContext(ctx, "ticker files exported",
		slog.String("output_dir", outputDir),
		slog.Int("ticker_count", len(monthly.Tickers())))

	return nil
}

// ExportCombined writes all tickers into a single CSV, ordered by
// ticker symbol then month. Useful for loading the whole run into a
// spreadsheet or downstream job in one read.
func (t *TickerExporter) ExportCombined(ctx context.Context, monthly *domain.MonthlyTable, outputPath string) error {
	var records [][]string
	for _, ticker := range monthly.Tickers() {
		for _, record := range monthly.Series(ticker) {
			row := append([]string{ticker}, monthlyToCSVRow(record)...)
			records = append(records, row)
		}
	}

	headers := append([]string{"Ticker"}, monthlyHeaders...)
	if err := t.csvWriter.WriteSimpleCSV(outputPath, headers, records); err != nil {
		return fmt.Errorf("failed to write combined file: %w", err)
	}

	t.logger.InfoContext(ctx, "combined file exported",
		slog.String("path", outputPath),
		slog.Int("row_count", len(records)))

	return nil
}

// monthlyToCSVRow converts a monthly record to its CSV representation.
// Undefined indicator values render as empty fields.
func monthlyToCSVRow(record domain.MonthlyRecord) []string {
	return []string{
		record.Month.String(),
		formatFloat(record.Open),
		formatFloat(record.High),
		formatFloat(record.Low),
		formatFloat(record.Close),
		formatInt(record.Volume),
		formatOptFloat(record.SMA10),
		formatOptFloat(record.SMA20),
		formatOptFloat(record.EMA10),
		formatOptFloat(record.EMA20),
	}
}
