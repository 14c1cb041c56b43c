// Package format renders calculation results for display.
package format

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Number renders value with at most precision decimal places. Whole numbers
// carry no decimal point and trailing zeros are trimmed.
func Number(value float64, precision int) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	}

	if precision < 0 {
		precision = 0
	}

	d := decimal.NewFromFloat(value).Round(int32(precision))
	if d.IsZero() {
		return "0"
	}
	return d.String()
}

// Fixed renders value rounded to exactly places decimals.
func Fixed(value float64, places int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Number(value, places)
	}
	return decimal.NewFromFloat(value).StringFixed(int32(places))
}

// Money renders amount in the conventional notation of the ISO currency
// code, falling back to "<amount> <code>" for codes unknown to go-money.
func Money(amount float64, code string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("%s %s", Number(amount, 2), code)
	}
	currency := money.GetCurrency(code)
	if currency == nil {
		return fmt.Sprintf("%s %s", Fixed(amount, 2), code)
	}
	// Round to minor units here; NewFromFloat truncates.
	minor := decimal.NewFromFloat(amount).Shift(int32(currency.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}
