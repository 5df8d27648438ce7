package nori

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{0.5, "0.5"},
		{-2.25, "-2.25"},
		{123.456, "123.456"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1e16, "1e+16"},
		{1e15, "1000000000000000.0"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in), "FormatFloat(%v)", tt.in)
	}
}

func TestRoundHalfEven(t *testing.T) {
	tests := []struct {
		in       float64
		decimals int
		want     float64
	}{
		{0.5, 0, 0},
		{1.5, 0, 2},
		{2.5, 0, 2},
		{0.125, 2, 0.12},
		{0.375, 2, 0.38},
		{0.333333, 4, 0.3333},
		{-0.66666, 4, -0.6667},
		{0.12345, 4, 0.1235},
		{1.00005, 4, 1.0001},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.in, tt.decimals), "Round(%v, %d)", tt.in, tt.decimals)
	}
	assert.True(t, math.IsNaN(Round(math.NaN(), 4)))
}

func TestFormatColor(t *testing.T) {
	assert.Equal(t, "1.0,1.0,1.0", FormatColor([]float64{1, 1, 1}))
	assert.Equal(t, "0.8,0.1235,0.0", FormatColor([]float64{0.8, 0.12351, 0, 1}))
	assert.Equal(t, "0.5", FormatColor([]float64{0.5}))
	assert.Equal(t, "", FormatColor(nil))
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "1.0 -2.5 0.1235", FormatList([]float64{1, -2.5, 0.123456}, 4, " "))
	assert.Equal(t, "0.123456", FormatList([]float64{0.1234564}, 6, " "))
}
