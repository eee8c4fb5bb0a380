package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "trendcli/internal/errors"
	"trendcli/pkg/contracts/domain"
)

// Input formats accepted by the Loader.
const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
)

// dateFormats are the date layouts accepted in input files, tried in order.
var dateFormats = []string{
	"2006-01-02", // ISO format
	"01/02/2006", // US format
	"2006/01/02", // Alternative ISO
	"2006-01-02 15:04:05",
}

// Loader reads raw daily records from the input collaborator (CSV files
// or Excel workbooks) and normalizes them into a typed DailyTable.
// Loading is all-or-nothing: the first malformed row fails the load.
type Loader struct {
	format string
	logger *slog.Logger
}

// NewLoader creates a loader for the given input format (FormatCSV or
// FormatExcel).
func NewLoader(format string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{format: format, logger: logger}
}

// Load reads every input file under inputPath (a single file or a
// directory) and returns the normalized daily table. Within each ticker
// the records are sorted by date ascending; duplicate dates for a ticker
// are rejected.
func (l *Loader) Load(ctx context.Context, inputPath string) (*domain.DailyTable, error) {
	files, err := l.discoverFiles(inputPath)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperrors.NewStorageError(
			fmt.Sprintf("no .%s input files found under %s", l.format, inputPath), nil)
	}

	l.logger.InfoContext(ctx, "loading daily records",
		slog.String("input_path", inputPath),
		slog.String("format", l.format),
		slog.Int("file_count", len(files)))

	var records []domain.DailyRecord
	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during data loading: %w", ctx.Err())
		default:
		}

		fileRecords, err := l.readFile(file)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", filepath.Base(file), err)
		}
		records = append(records, fileRecords...)
	}

	table, err := Normalize(records)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "daily records loaded",
		slog.Int("record_count", table.Len()),
		slog.Int("ticker_count", len(table.Tickers())))

	return table, nil
}

// discoverFiles resolves inputPath to the list of input files to read.
func (l *Loader) discoverFiles(inputPath string) ([]string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, apperrors.NewStorageError("input path not accessible", err).
			WithContext("path", inputPath)
	}

	if !info.IsDir() {
		return []string{inputPath}, nil
	}

	ext := "." + l.format
	var files []string
	err = filepath.Walk(inputPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		name := info.Name()
		if info.IsDir() || strings.HasPrefix(name, "~$") {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(name), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan input directory", err).
			WithContext("path", inputPath)
	}

	sort.Strings(files)
	return files, nil
}

// readFile dispatches to the reader for the configured format.
func (l *Loader) readFile(path string) ([]domain.DailyRecord, error) {
	if l.format == FormatExcel {
		return ReadDailyExcel(path)
	}
	return ReadDailyCSV(path)
}

// ReadDailyCSV reads daily records from a single CSV file.
// Expected columns (any order, matched by header name, case-insensitive):
// date, ticker, open, high, low, close, volume.
func ReadDailyCSV(path string) ([]domain.DailyRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open CSV file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewMalformedRecordError("failed to read CSV records", err).
			WithContext("path", path)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewMalformedRecordError("CSV file is empty", nil).
			WithContext("path", path)
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	records := make([]domain.DailyRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record, err := parseDailyRow(row, columns, i+2)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// dailyColumns holds the indices of the required input columns.
type dailyColumns struct {
	date, ticker, open, high, low, close, volume int
}

// mapColumns maps header names to column positions. Every required
// column must be present.
func mapColumns(header []string) (dailyColumns, error) {
	cols := dailyColumns{date: -1, ticker: -1, open: -1, high: -1, low: -1, close: -1, volume: -1}

	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		switch name {
		case "date", "trade_date":
			cols.date = i
		case "ticker", "symbol":
			cols.ticker = i
		case "open", "openprice":
			cols.open = i
		case "high", "highprice":
			cols.high = i
		case "low", "lowprice":
			cols.low = i
		case "close", "closeprice":
			cols.close = i
		case "volume":
			cols.volume = i
		}
	}

	missing := cols.missing()
	if len(missing) > 0 {
		return cols, apperrors.NewMalformedRecordError(
			fmt.Sprintf("required columns not found: %s", strings.Join(missing, ", ")), nil)
	}
	return cols, nil
}

func (c dailyColumns) missing() []string {
	var missing []string
	for name, idx := range map[string]int{
		"date": c.date, "ticker": c.ticker, "open": c.open,
		"high": c.high, "low": c.low, "close": c.close, "volume": c.volume,
	} {
		if idx < 0 {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// parseDailyRow parses one data row into a DailyRecord. lineNum is the
// 1-based line number used in error context.
func parseDailyRow(row []string, cols dailyColumns, lineNum int) (domain.DailyRecord, error) {
	cell := func(idx int, field string) (string, error) {
		if idx >= len(row) {
			return "", apperrors.NewMalformedRecordError(
				fmt.Sprintf("missing %s column (line %d)", field, lineNum), nil)
		}
		value := strings.TrimSpace(row[idx])
		if value == "" {
			return "", apperrors.NewMalformedRecordError(
				fmt.Sprintf("empty %s field (line %d)", field, lineNum), nil)
		}
		return value, nil
	}

	dateStr, err := cell(cols.date, "date")
	if err != nil {
		return domain.DailyRecord{}, err
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return domain.DailyRecord{}, apperrors.NewMalformedRecordError(
			fmt.Sprintf("unparseable date (line %d)", lineNum), err)
	}

	ticker, err := cell(cols.ticker, "ticker")
	if err != nil {
		return domain.DailyRecord{}, err
	}
	ticker = strings.ToUpper(ticker)

	parsePrice := func(idx int, field string) (float64, error) {
		raw, err := cell(idx, field)
		if err != nil {
			return 0, err
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return 0, apperrors.NewMalformedRecordError(
				fmt.Sprintf("unparseable %s (line %d)", field, lineNum), err)
		}
		return value, nil
	}

	open, err := parsePrice(cols.open, "open")
	if err != nil {
		return domain.DailyRecord{}, err
	}
	high, err := parsePrice(cols.high, "high")
	if err != nil {
		return domain.DailyRecord{}, err
	}
	low, err := parsePrice(cols.low, "low")
	if err != nil {
		return domain.DailyRecord{}, err
	}
	closePrice, err := parsePrice(cols.close, "close")
	if err != nil {
		return domain.DailyRecord{}, err
	}

	volumeStr, err := cell(cols.volume, "volume")
	if err != nil {
		return domain.DailyRecord{}, err
	}
	volume, err := strconv.ParseInt(strings.ReplaceAll(volumeStr, ",", ""), 10, 64)
	if err != nil {
		return domain.DailyRecord{}, apperrors.NewMalformedRecordError(
			fmt.Sprintf("unparseable volume (line %d)", lineNum), err)
	}

	return domain.DailyRecord{
		Ticker: ticker,
		Date:   date,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}

// parseDate attempts to parse date strings in the accepted layouts.
func parseDate(dateStr string) (time.Time, error) {
	for _, format := range dateFormats {
		if date, err := time.Parse(format, dateStr); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// Normalize validates raw daily records and organizes them into a
// per-ticker table sorted by date ascending. It rejects non-positive
// prices, negative volume, and duplicate dates within a ticker.
// Normalize is idempotent: the same input always yields the same table.
func Normalize(records []domain.DailyRecord) (*domain.DailyTable, error) {
	table := domain.NewDailyTable()

	for _, record := range records {
		if record.Open <= 0 || record.High <= 0 || record.Low <= 0 || record.Close <= 0 {
			return nil, apperrors.NewNonPositivePriceError(
				fmt.Sprintf("ticker %s on %s has a price <= 0",
					record.Ticker, record.Date.Format("2006-01-02")))
		}
		if record.Volume < 0 {
			return nil, apperrors.NewMalformedRecordError(
				fmt.Sprintf("ticker %s on %s has negative volume",
					record.Ticker, record.Date.Format("2006-01-02")), nil)
		}
		table.Append(record)
	}

	for _, ticker := range table.Tickers() {
		group := table.Records(ticker)
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})
		for i := 1; i < len(group); i++ {
			if group[i].Date.Equal(group[i-1].Date) {
				return nil, apperrors.NewMalformedRecordError(
					fmt.Sprintf("duplicate date %s for ticker %s",
						group[i].Date.Format("2006-01-02"), ticker), nil)
			}
		}
	}

	return table, nil
}
