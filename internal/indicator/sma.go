// Package indicator computes trailing moving averages over monthly
// close series. Accumulators are streaming: one pass over the closes,
// O(1) work per value.
package indicator

// SMA is a simple moving average accumulator over a rolling window.
// Uses a preallocated circular buffer so a full series pass allocates
// once.
type SMA struct {
	period  int
	buf     []float64
	idx     int
	count   int
	sum     float64
	current float64
}

// NewSMA creates an SMA accumulator with the given period (>= 1).
func NewSMA(period int) *SMA {
	return &SMA{
		period: period,
		buf:    make([]float64, period),
	}
}

// Update feeds the next close price into the window.
func (s *SMA) Update(price float64) {
	if s.count >= s.period {
		s.sum -= s.buf[s.idx]
	}

	s.buf[s.idx] = price
	s.sum += price
	s.idx = (s.idx + 1) % s.period
	s.count++

	if s.count >= s.period {
		s.current = s.sum / float64(s.period)
	}
}

// Ready reports whether a full window has been accumulated. Before
// that, the average is undefined rather than a partial mean.
func (s *SMA) Ready() bool { return s.count >= s.period }

// Value returns the current window average. Only meaningful once
// Ready() is true.
func (s *SMA) Value() float64 { return s.current }

// ValueOrNil returns a pointer to the current average, or nil during
// the warm-up phase. The pointer refers to a fresh copy, safe to keep.
func (s *SMA) ValueOrNil() *float64 {
	if !s.Ready() {
		return nil
	}
	v := s.current
	return &v
}
