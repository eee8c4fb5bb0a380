package domain

// MonthlyRecord represents one ticker's aggregated trading data for one
// calendar month, annotated with trend indicators. Price and volume fields
// are produced by the monthly aggregator; indicator fields are populated
// afterwards by the indicator engine. Indicator values are nil during an
// indicator's warm-up gap (insufficient history), never zero.
type MonthlyRecord struct {
	Ticker string   `json:"ticker" validate:"required"`
	Month  Month    `json:"month"`
	Open   float64  `json:"open" validate:"gt=0"`
	High   float64  `json:"high" validate:"gt=0"`
	Low    float64  `json:"low" validate:"gt=0"`
	Close  float64  `json:"close" validate:"gt=0"`
	Volume int64    `json:"volume" validate:"min=0"`
	SMA10  *float64 `json:"sma10"`
	SMA20  *float64 `json:"sma20"`
	EMA10  *float64 `json:"ema10"`
	EMA20  *float64 `json:"ema20"`
}

// MonthlyTable holds monthly records grouped by ticker, each group ordered
// by month ascending. One record exists per (ticker, month) pair.
type MonthlyTable struct {
	series map[string][]MonthlyRecord
}

// NewMonthlyTable creates an empty monthly table.
func NewMonthlyTable() *MonthlyTable {
	return &MonthlyTable{series: make(map[string][]MonthlyRecord)}
}

// SetSeries stores one ticker's ordered monthly records.
func (t *MonthlyTable) SetSeries(ticker string, records []MonthlyRecord) {
	t.series[ticker] = records
}

// Series returns one ticker's ordered monthly records.
func (t *MonthlyTable) Series(ticker string) []MonthlyRecord {
	return t.series[ticker]
}

// Tickers returns all ticker symbols present in the table, sorted.
func (t *MonthlyTable) Tickers() []string {
	return sortedKeys(t.series)
}

// Len returns the total number of monthly records across all tickers.
func (t *MonthlyTable) Len() int {
	n := 0
	for _, recs := range t.series {
		n += len(recs)
	}
	return n
}

// TickerSeries is the ordered sequence of monthly records for one ticker,
// handed to the output collaborator as a unit at emission time.
type TickerSeries struct {
	Ticker  string          `json:"ticker"`
	Records []MonthlyRecord `json:"records"`
}

// Partition splits the table into one TickerSeries per ticker, ordered
// by ticker symbol. Every ticker appears exactly once and keeps its
// month ordering.
func (t *MonthlyTable) Partition() []TickerSeries {
	tickers := t.Tickers()
	series := make([]TickerSeries, 0, len(tickers))
	for _, ticker := range tickers {
		series = append(series, TickerSeries{
			Ticker:  ticker,
			Records: t.series[ticker],
		})
	}
	return series
}
