package exporter

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSummaries(t *testing.T) {
	summaries := GenerateSummaries(testMonthlyTable())
	require.Len(t, summaries, 2)

	// Sorted by ticker
	assert.Equal(t, "AAPL", summaries[0].Ticker)
	assert.Equal(t, "MSFT", summaries[1].Ticker)

	aapl := summaries[0]
	assert.Equal(t, 2, aapl.Months)
	assert.Equal(t, "2024-01", aapl.FirstMonth)
	assert.Equal(t, "2024-02", aapl.LastMonth)
	assert.Equal(t, 192.0, aapl.LastClose)
	assert.Equal(t, 192.0, aapl.HighestClose)
	assert.Equal(t, 188.0, aapl.LowestClose)
	assert.Equal(t, int64(2200000), aapl.TotalVolume)
	require.NotNil(t, aapl.LastSMA10)
	assert.Equal(t, 190.5, *aapl.LastSMA10)
	assert.Nil(t, aapl.LastSMA20)
}

func TestExportSummaryCSV(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "summary.csv")

	exp := NewSummaryExporter(nil)
	summaries := GenerateSummaries(testMonthlyTable())
	require.NoError(t, exp.ExportSummaryCSV(context.Background(), summaries, outputPath))

	rows := readCSVFile(t, outputPath)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ticker", rows[0][0])
	assert.Equal(t, "AAPL", rows[1][0])
	// Undefined SMA20 renders as empty field
	assert.Equal(t, "", rows[1][9])
}

func TestExportSummaryJSON(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "summary.json")

	exp := NewSummaryExporter(nil)
	summaries := GenerateSummaries(testMonthlyTable())
	require.NoError(t, exp.ExportSummaryJSON(context.Background(), summaries, outputPath))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var decoded []TickerSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "AAPL", decoded[0].Ticker)

	// Undefined indicators serialize as null
	assert.Nil(t, decoded[0].LastSMA20)
}
