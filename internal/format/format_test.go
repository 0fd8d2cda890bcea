package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1400000, "₩1,400,000"},
		{9333.33, "₩9,333"},
		{9333.5, "₩9,334"},
		{0, "₩0"},
		{999, "₩999"},
		{-5000, "-₩5,000"},
		{-1234.5, "-₩1,235"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in), "Currency(%v)", tt.in)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{150, "150"},
		{1234567, "1,234,567"},
		{1234.5, "1,234.5"},
		{0.12345, "0.123"},
		{4.2857, "4.286"},
		{1000.0005, "1,000.001"},
		{-98765.4321, "-98,765.432"},
		{0, "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.in), "Number(%v)", tt.in)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12.346, "+12.35%"},
		{0, "+0.00%"},
		{math.Copysign(0, -1), "+0.00%"},
		{-14.29, "-14.29%"},
		{100, "+100.00%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.in), "Percentage(%v)", tt.in)
	}
}

func TestNonFinite(t *testing.T) {
	assert.Equal(t, "∞", Currency(math.Inf(1)))
	assert.Equal(t, "NaN", Number(math.NaN()))
	assert.Equal(t, "-∞", Percentage(math.Inf(-1)))
}
