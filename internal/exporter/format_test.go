package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "13.40", formatFloat(13.4))
	assert.Equal(t, "0.00", formatFloat(0))
	assert.Equal(t, "186.00", formatFloat(186))
	assert.Equal(t, "9.99", formatFloat(9.994))
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", formatInt(0))
	assert.Equal(t, "50000000", formatInt(50000000))
}

func TestFormatOptFloat(t *testing.T) {
	// Undefined renders as an empty field, never 0.00
	assert.Equal(t, "", formatOptFloat(nil))

	v := 101.818
	assert.Equal(t, "101.82", formatOptFloat(&v))
}
