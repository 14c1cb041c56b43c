// Package finance implements the financial formulas and the persisted
// currency rate table.
package finance

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/calcmaster/internal/common"
)

// Interest is the outcome of an interest calculation.
type Interest struct {
	Interest float64
	Total    float64
}

// Loan is the outcome of an EMI calculation.
type Loan struct {
	EMI           float64
	TotalInterest float64
	TotalPayment  float64
	Months        float64
}

// GSTDirection selects whether GST is added to or extracted from an amount.
type GSTDirection string

// GST directions.
const (
	GSTAdd     GSTDirection = "add"
	GSTExtract GSTDirection = "extract"
)

// ParseGSTDirection resolves a user supplied direction.
func ParseGSTDirection(s string) (GSTDirection, error) {
	switch GSTDirection(strings.ToLower(strings.TrimSpace(s))) {
	case GSTAdd:
		return GSTAdd, nil
	case GSTExtract:
		return GSTExtract, nil
	default:
		return "", common.InvalidInput("GST direction must be add or extract, got %q", s)
	}
}

// GST is the outcome of a GST calculation. For GSTAdd, Other is the gross
// total; for GSTExtract it is the net amount before tax.
type GST struct {
	Direction GSTDirection
	GSTAmount float64
	Other     float64
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return common.InvalidInput("%s must be a finite number", name)
	}
	return nil
}

type input struct {
	name  string
	value float64
}

// allFinite reports the first non-finite input in argument order.
func allFinite(inputs ...input) error {
	for _, in := range inputs {
		if err := finite(in.name, in.value); err != nil {
			return err
		}
	}
	return nil
}

// SimpleInterest computes principal*rate*years/100.
func SimpleInterest(principal, ratePercent, years float64) (Interest, error) {
	if err := allFinite(input{"principal", principal}, input{"rate", ratePercent}, input{"years", years}); err != nil {
		return Interest{}, err
	}
	if principal < 0 {
		return Interest{}, common.InvalidInput("principal cannot be negative")
	}

	interest := principal * ratePercent * years / 100
	return Interest{Interest: interest, Total: principal + interest}, nil
}

// CompoundInterest computes principal*(1+rate/(100*n))^(n*years).
func CompoundInterest(principal, ratePercent, years, compoundingsPerYear float64) (Interest, error) {
	if err := allFinite(input{"principal", principal}, input{"rate", ratePercent}, input{"years", years}, input{"compounding", compoundingsPerYear}); err != nil {
		return Interest{}, err
	}
	if principal < 0 {
		return Interest{}, common.InvalidInput("principal cannot be negative")
	}
	if compoundingsPerYear <= 0 {
		return Interest{}, common.InvalidInput("compounding frequency must be positive")
	}

	n := compoundingsPerYear
	total := principal * math.Pow(1+ratePercent/(100*n), n*years)
	return Interest{Interest: total - principal, Total: total}, nil
}

// EMI computes the equated monthly installment of an amortizing loan.
func EMI(principal, ratePercent, years float64) (Loan, error) {
	if err := allFinite(input{"principal", principal}, input{"rate", ratePercent}, input{"years", years}); err != nil {
		return Loan{}, err
	}

	r := ratePercent / 1200
	months := years * 12
	if months <= 0 {
		return Loan{}, common.InvalidInput("loan tenure must be positive")
	}

	var emi float64
	if r == 0 {
		emi = principal / months
	} else {
		growth := math.Pow(1+r, months)
		emi = principal * r * growth / (growth - 1)
	}

	totalPayment := emi * months
	return Loan{
		EMI:           emi,
		TotalInterest: totalPayment - principal,
		TotalPayment:  totalPayment,
		Months:        months,
	}, nil
}

// CalculateGST adds GST to or extracts it from amount.
func CalculateGST(amount, ratePercent float64, direction GSTDirection) (GST, error) {
	if err := finite("amount", amount); err != nil {
		return GST{}, err
	}
	if err := finite("rate", ratePercent); err != nil {
		return GST{}, err
	}
	if ratePercent < 0 {
		return GST{}, common.InvalidInput("GST rate cannot be negative")
	}

	switch direction {
	case GSTAdd:
		gst := amount * ratePercent / 100
		return GST{Direction: direction, GSTAmount: gst, Other: amount + gst}, nil
	case GSTExtract:
		net := amount * 100 / (100 + ratePercent)
		return GST{Direction: direction, GSTAmount: amount - net, Other: net}, nil
	default:
		return GST{}, common.InvalidInput("GST direction must be add or extract, got %q", direction)
	}
}

// Rates maps an uppercase currency code to units of that currency per USD.
type Rates map[string]float64

// ConvertCurrency converts amount between two codes present in rates.
func ConvertCurrency(amount float64, fromCode, toCode string, rates Rates) (float64, error) {
	from, to := NormalizeCode(fromCode), NormalizeCode(toCode)

	fromRate, ok := rates[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", common.ErrUnknownCurrency, fromCode)
	}
	toRate, ok := rates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", common.ErrUnknownCurrency, toCode)
	}
	if err := finite("amount", amount); err != nil {
		return 0, err
	}

	return amount / fromRate * toRate, nil
}

// NormalizeCode uppercases and trims a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
