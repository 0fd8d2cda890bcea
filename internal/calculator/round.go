package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// round rounds v to places decimals, half away from zero, on the shortest
// decimal representation of v (1.005 becomes 1.01).
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// positive reports whether v is a usable price or quantity. NaN and +Inf are not.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
