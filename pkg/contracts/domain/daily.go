package domain

import (
	"time"
)

// DailyRecord represents a single ticker's trading data for one day.
// This is the primary input structure for the monthly trend pipeline.
// Records are immutable once loaded; within a ticker, dates are unique
// and strictly increasing after normalization.
type DailyRecord struct {
	Ticker string    `json:"ticker" validate:"required"`
	Date   time.Time `json:"date" validate:"required"`
	Open   float64   `json:"open" validate:"gt=0"`
	High   float64   `json:"high" validate:"gt=0"`
	Low    float64   `json:"low" validate:"gt=0"`
	Close  float64   `json:"close" validate:"gt=0"`
	Volume int64     `json:"volume" validate:"min=0"`
}

// MonthOf returns the calendar month the record falls in.
func (r DailyRecord) MonthOf() Month {
	return MonthOf(r.Date)
}

// DailyTable holds normalized daily records grouped by ticker.
// Each ticker's slice is sorted by date ascending. Ordering across
// tickers is not guaranteed; Tickers() provides a stable iteration order.
type DailyTable struct {
	records map[string][]DailyRecord
}

// NewDailyTable creates an empty daily table.
func NewDailyTable() *DailyTable {
	return &DailyTable{records: make(map[string][]DailyRecord)}
}

// Append adds a record to its ticker's group.
func (t *DailyTable) Append(r DailyRecord) {
	t.records[r.Ticker] = append(t.records[r.Ticker], r)
}

// Records returns the chronologically sorted records for one ticker.
func (t *DailyTable) Records(ticker string) []DailyRecord {
	return t.records[ticker]
}

// Tickers returns all ticker symbols present in the table, sorted.
func (t *DailyTable) Tickers() []string {
	return sortedKeys(t.records)
}

// Len returns the total number of daily records across all tickers.
func (t *DailyTable) Len() int {
	n := 0
	for _, recs := range t.records {
		n += len(recs)
	}
	return n
}
