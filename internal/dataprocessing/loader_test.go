package dataprocessing

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trendcli/internal/errors"
	"trendcli/pkg/contracts/domain"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validCSV = `Date,Ticker,Open,High,Low,Close,Volume
2024-01-02,AAPL,185.00,186.50,183.00,186.00,50000000
2024-01-03,AAPL,186.00,188.00,185.50,187.25,42000000
2024-01-02,MSFT,370.00,375.00,368.00,374.00,25000000
`

func TestReadDailyCSV(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "prices.csv", validCSV)

	records, err := ReadDailyCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "AAPL", first.Ticker)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 185.00, first.Open)
	assert.Equal(t, 186.50, first.High)
	assert.Equal(t, 183.00, first.Low)
	assert.Equal(t, 186.00, first.Close)
	assert.Equal(t, int64(50000000), first.Volume)
}

func TestReadDailyCSVHeaderVariants(t *testing.T) {
	content := `symbol,trade_date,OpenPrice,HighPrice,LowPrice,ClosePrice,Volume
aapl,2024-01-02,185.00,186.50,183.00,186.00,1000
`
	path := writeCSV(t, t.TempDir(), "prices.csv", content)

	records, err := ReadDailyCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	// Symbols are normalized to upper case
	assert.Equal(t, "AAPL", records[0].Ticker)
}

func TestReadDailyCSVErrors(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		expectedType apperrors.ErrorType
	}{
		{
			name:         "missing required columns",
			content:      "Date,Ticker,Open\n2024-01-02,AAPL,185.00\n",
			expectedType: apperrors.ErrTypeMalformedRecord,
		},
		{
			name:         "empty file",
			content:      "",
			expectedType: apperrors.ErrTypeMalformedRecord,
		},
		{
			name: "unparseable date",
			content: `Date,Ticker,Open,High,Low,Close,Volume
not-a-date,AAPL,185.00,186.50,183.00,186.00,1000
`,
			expectedType: apperrors.ErrTypeMalformedRecord,
		},
		{
			name: "unparseable price",
			content: `Date,Ticker,Open,High,Low,Close,Volume
2024-01-02,AAPL,abc,186.50,183.00,186.00,1000
`,
			expectedType: apperrors.ErrTypeMalformedRecord,
		},
		{
			name: "empty close field",
			content: `Date,Ticker,Open,High,Low,Close,Volume
2024-01-02,AAPL,185.00,186.50,183.00,,1000
`,
			expectedType: apperrors.ErrTypeMalformedRecord,
		},
		{
			name: "unparseable volume",
			content: `Date,Ticker,Open,High,Low,Close,Volume
2024-01-02,AAPL,185.00,186.50,183.00,186.00,lots
`,
			expectedType: apperrors.ErrTypeMalformedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, t.TempDir(), "prices.csv", tt.content)

			records, err := ReadDailyCSV(path)
			require.Error(t, err)
			assert.Nil(t, records)
			assert.True(t, apperrors.IsType(err, tt.expectedType),
				"expected %s, got: %v", tt.expectedType, err)
		})
	}
}

func TestReadDailyCSVReportsLineNumber(t *testing.T) {
	content := `Date,Ticker,Open,High,Low,Close,Volume
2024-01-02,AAPL,185.00,186.50,183.00,186.00,1000
bad-date,AAPL,186.00,188.00,185.50,187.25,2000
`
	path := writeCSV(t, t.TempDir(), "prices.csv", content)

	_, err := ReadDailyCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoaderLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "a.csv", validCSV)
	writeCSV(t, dir, "notes.txt", "not a csv")

	loader := NewLoader(FormatCSV, nil)
	table, err := loader.Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"AAPL", "MSFT"}, table.Tickers())
}

func TestLoaderLoadSingleFile(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "prices.csv", validCSV)

	loader := NewLoader(FormatCSV, nil)
	table, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}

func TestLoaderLoadMissingPath(t *testing.T) {
	loader := NewLoader(FormatCSV, nil)
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestLoaderLoadEmptyDirectory(t *testing.T) {
	loader := NewLoader(FormatCSV, nil)
	_, err := loader.Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestLoaderLoadCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "a.csv", validCSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(FormatCSV, nil)
	_, err := loader.Load(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func dailyRecord(ticker, date string, close float64) domain.DailyRecord {
	d, _ := time.Parse("2006-01-02", date)
	return domain.DailyRecord{
		Ticker: ticker,
		Date:   d,
		Open:   close,
		High:   close,
		Low:    close,
		Close:  close,
		Volume: 100,
	}
}

func TestNormalizeSortsByDate(t *testing.T) {
	records := []domain.DailyRecord{
		dailyRecord("AAPL", "2024-01-05", 187),
		dailyRecord("AAPL", "2024-01-02", 185),
		dailyRecord("AAPL", "2024-01-03", 186),
	}

	table, err := Normalize(records)
	require.NoError(t, err)

	sorted := table.Records("AAPL")
	require.Len(t, sorted, 3)
	assert.Equal(t, 185.0, sorted[0].Close)
	assert.Equal(t, 186.0, sorted[1].Close)
	assert.Equal(t, 187.0, sorted[2].Close)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	records := []domain.DailyRecord{
		dailyRecord("AAPL", "2024-01-05", 187),
		dailyRecord("AAPL", "2024-01-02", 185),
	}

	first, err := Normalize(records)
	require.NoError(t, err)
	second, err := Normalize(records)
	require.NoError(t, err)

	assert.Equal(t, first.Records("AAPL"), second.Records("AAPL"))
}

func TestNormalizeRejectsNonPositivePrice(t *testing.T) {
	record := dailyRecord("AAPL", "2024-01-02", 185)
	record.Low = 0

	_, err := Normalize([]domain.DailyRecord{record})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNonPositivePrice))
}

func TestNormalizeRejectsNegativeVolume(t *testing.T) {
	record := dailyRecord("AAPL", "2024-01-02", 185)
	record.Volume = -1

	_, err := Normalize([]domain.DailyRecord{record})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMalformedRecord))
}

func TestNormalizeRejectsDuplicateDates(t *testing.T) {
	records := []domain.DailyRecord{
		dailyRecord("AAPL", "2024-01-02", 185),
		dailyRecord("AAPL", "2024-01-02", 186),
	}

	_, err := Normalize(records)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMalformedRecord))
	assert.Contains(t, err.Error(), "duplicate date")
}
