package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// roundHalfUp rounds to the nearest integer with ties toward positive
// infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Add(half).Floor()
}

// RoundCurrency rounds to a whole currency unit, ties toward positive infinity.
// Non-finite values round to zero.
func RoundCurrency(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return roundHalfUp(v).IntPart()
}

// RoundRate rounds a rate or ratio to two decimal places. The value is scaled
// by 100 in float64 before rounding, so 1.005 (stored as 1.00499...) gives 1.
func RoundRate(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return roundHalfUp(v * 100).Shift(-2).InexactFloat64()
}
