package indicator

// EMA is an exponential moving average accumulator seeded from the
// first value it sees: ema[0] = close[0], then
//
//	ema[i] = (close[i] - ema[i-1]) * m + ema[i-1]
//
// with smoothing multiplier m = 2 / (period + 1). Unlike the SMA there
// is no warm-up gap: the EMA is defined at every index.
type EMA struct {
	period     int
	multiplier float64
	current    float64
	count      int
}

// NewEMA creates an EMA accumulator with the given period (>= 1).
func NewEMA(period int) *EMA {
	return &EMA{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}
}

// Update feeds the next close price into the average.
func (e *EMA) Update(price float64) {
	e.count++
	if e.count == 1 {
		e.current = price
		return
	}
	e.current = (price-e.current)*e.multiplier + e.current
}

// Ready reports whether at least one value has been accumulated.
func (e *EMA) Ready() bool { return e.count > 0 }

// Value returns the current smoothed average.
func (e *EMA) Value() float64 { return e.current }

// ValueOrNil returns a pointer to the current average, or nil when no
// values have been fed yet.
func (e *EMA) ValueOrNil() *float64 {
	if !e.Ready() {
		return nil
	}
	v := e.current
	return &v
}
