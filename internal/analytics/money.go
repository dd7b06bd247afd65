package analytics

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// exactDigits is enough fractional digits to print any float64 exactly.
const exactDigits = 1074

// round rounds the exact binary value of v half to even at the given number
// of decimal places, so 2.675 (stored as 2.67499...) becomes 2.67.
// Non-finite values panic, which guard turns into ErrComputation.
func round(v float64, places int32) float64 {
	exact := decimal.RequireFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	f, _ := exact.RoundBank(places).Float64()
	return f
}

func round2(v float64) float64 {
	return round(v, 2)
}

func round1(v float64) float64 {
	return round(v, 1)
}
