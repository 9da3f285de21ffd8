package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	cases := []struct {
		fraction float64
		places   int
		want     string
	}{
		{0.05, 0, "5%"},
		{0.10, 0, "10%"},
		{1 - 0.1, 0, "90%"},
		{4.0 / 158.0, 2, "2.53%"},
		{11.0 / 158.0, 2, "6.96%"},
		{0, 2, "0.00%"},
		{1.0 / 3.0, 1, "33.3%"},
		{0.05, -1, "5%"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Percent(tc.fraction, tc.places))
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, "0", Count(0))
	assert.Equal(t, "158", Count(158))
	assert.Equal(t, "1,580", Count(1580))
	assert.Equal(t, "1,234,567", Count(1234567))
}
