package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMAWarmUp(t *testing.T) {
	sma := NewSMA(3)

	sma.Update(10)
	assert.False(t, sma.Ready())
	assert.Nil(t, sma.ValueOrNil())

	sma.Update(20)
	assert.False(t, sma.Ready())
	assert.Nil(t, sma.ValueOrNil())

	sma.Update(30)
	assert.True(t, sma.Ready())
	require.NotNil(t, sma.ValueOrNil())
	assert.InDelta(t, 20.0, sma.Value(), 1e-9)
}

func TestSMARollingWindow(t *testing.T) {
	sma := NewSMA(3)
	for _, v := range []float64{10, 20, 30} {
		sma.Update(v)
	}
	// Window slides: oldest value drops out
	sma.Update(40)
	assert.InDelta(t, 30.0, sma.Value(), 1e-9)

	sma.Update(50)
	assert.InDelta(t, 40.0, sma.Value(), 1e-9)
}

func TestSMAPeriodTen(t *testing.T) {
	closes := []float64{10, 12, 9, 15, 11, 13, 14, 8, 16, 12}
	sma := NewSMA(10)

	for i, v := range closes {
		sma.Update(v)
		if i < 9 {
			assert.Nil(t, sma.ValueOrNil(), "index %d is inside the warm-up gap", i)
		}
	}

	require.True(t, sma.Ready())
	sum := 0.0
	for _, v := range closes {
		sum += v
	}
	assert.InDelta(t, sum/10, sma.Value(), 1e-9)
}

func TestSMAPeriodOne(t *testing.T) {
	sma := NewSMA(1)
	sma.Update(42)
	require.True(t, sma.Ready())
	assert.InDelta(t, 42.0, sma.Value(), 1e-9)

	sma.Update(7)
	assert.InDelta(t, 7.0, sma.Value(), 1e-9)
}

func TestSMAValueOrNilReturnsCopy(t *testing.T) {
	sma := NewSMA(1)
	sma.Update(10)

	first := sma.ValueOrNil()
	sma.Update(20)

	// The earlier pointer must not observe later updates
	assert.InDelta(t, 10.0, *first, 1e-9)
	assert.InDelta(t, 20.0, sma.Value(), 1e-9)
}
