package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	MonthsPerYear = 12

	// CurrencyTolerance is one cent.
	CurrencyTolerance = 0.01
)

// Round rounds v half away from zero to the given number of decimal places.
// NaN and infinities collapse to zero so they never reach a rendered page.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return Round(v, 2)
}
