package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMASeedsFromFirstValue(t *testing.T) {
	ema := NewEMA(10)
	assert.False(t, ema.Ready())
	assert.Nil(t, ema.ValueOrNil())

	ema.Update(100)
	require.True(t, ema.Ready())
	assert.InDelta(t, 100.0, ema.Value(), 1e-9)
}

func TestEMARecurrence(t *testing.T) {
	// period 10 gives multiplier 2/11; with closes 100, 110, 105:
	//   ema[0] = 100
	//   ema[1] = (110-100)*2/11 + 100  = 101.8181...
	//   ema[2] = (105-ema[1])*2/11 + ema[1]
	ema := NewEMA(10)
	m := 2.0 / 11.0

	ema.Update(100)
	assert.InDelta(t, 100.0, ema.Value(), 1e-9)

	ema.Update(110)
	expected1 := 100 + (110-100)*m
	assert.InDelta(t, expected1, ema.Value(), 1e-9)

	ema.Update(105)
	expected2 := expected1 + (105-expected1)*m
	assert.InDelta(t, expected2, ema.Value(), 1e-9)
}

func TestEMADefinedAtEveryIndex(t *testing.T) {
	// Unlike the SMA there is no warm-up gap
	ema := NewEMA(20)
	for i, v := range []float64{50, 51, 49, 52, 48} {
		ema.Update(v)
		assert.NotNil(t, ema.ValueOrNil(), "index %d", i)
	}
}

func TestEMAConstantSeries(t *testing.T) {
	ema := NewEMA(10)
	for i := 0; i < 50; i++ {
		ema.Update(42)
	}
	assert.InDelta(t, 42.0, ema.Value(), 1e-9)
}

func TestEMAPeriodOne(t *testing.T) {
	// Multiplier 2/2 = 1: the EMA tracks the latest value exactly
	ema := NewEMA(1)
	ema.Update(10)
	ema.Update(99)
	assert.InDelta(t, 99.0, ema.Value(), 1e-9)
}
