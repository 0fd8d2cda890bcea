// Package format renders calculator results the way the Korean UI shows them:
// won amounts with the ₩ grapheme and thousands separators, plain numbers with
// up to three fraction digits, and signed percentages.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const numberFraction = 3

// Currency formats v as whole Korean won, e.g. ₩1,400,000.
func Currency(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	won := decimal.NewFromFloat(v).Round(0).IntPart()
	return money.New(won, money.KRW).Display()
}

// Number formats v with thousands separators and at most three fraction
// digits, dropping trailing zeros.
func Number(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}

	d := decimal.NewFromFloat(v).Round(numberFraction)
	fraction := 0
	if _, frac, found := strings.Cut(d.Abs().String(), "."); found {
		fraction = len(frac)
	}

	f := money.NewFormatter(fraction, ".", ",", "", "1")
	return f.Format(d.Shift(int32(fraction)).IntPart())
}

// Percentage formats v (already in percent) with two decimals and an explicit
// plus sign for non-negative values.
func Percentage(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	if v == 0 {
		v = 0 // drop negative zero
	}
	sign := ""
	if v >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, v)
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "∞", true
	case math.IsInf(v, -1):
		return "-∞", true
	}
	return "", false
}
