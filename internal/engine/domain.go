package engine

import (
	"fmt"

	"github.com/Veraticus/calcmaster/internal/convert"
	"github.com/Veraticus/calcmaster/internal/finance"
	"github.com/Veraticus/calcmaster/internal/format"
)

// Convert converts value between two units of category.
func (c *Calculator) Convert(category convert.Category, value float64, fromUnit, toUnit string) (Result, error) {
	v, err := c.catalog.Convert(category, value, fromUnit, toUnit)
	if err != nil {
		return Result{}, err
	}
	return c.conversion(category, value, fromUnit, toUnit, v), nil
}

// QuickConvert converts value, detecting the category from the unit names.
func (c *Calculator) QuickConvert(value float64, fromUnit, toUnit string) (Result, error) {
	v, category, err := c.catalog.QuickConvert(value, fromUnit, toUnit)
	if err != nil {
		return Result{}, err
	}
	return c.conversion(category, value, fromUnit, toUnit, v), nil
}

func (c *Calculator) conversion(category convert.Category, value float64, fromUnit, toUnit string, v float64) Result {
	from, _ := c.catalog.Unit(category, fromUnit)
	to, _ := c.catalog.Unit(category, toUnit)
	return c.result(
		fmt.Sprintf("Convert: %s %s to %s", num(value), from.Name, to.Name),
		v,
		Detail{Label: "Category", Value: string(category)},
		Detail{Label: from.Display, Value: c.Format(value)},
		Detail{Label: to.Display, Value: c.Format(v)},
	)
}

// SimpleInterest computes simple interest. Value is the total amount.
func (c *Calculator) SimpleInterest(principal, ratePercent, years float64) (Result, error) {
	got, err := finance.SimpleInterest(principal, ratePercent, years)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Expression: fmt.Sprintf("Simple Interest: P=%s, R=%s%%, T=%s years", num(principal), num(ratePercent), num(years)),
		Value:      got.Total,
		Display:    format.Fixed(got.Total, 2),
		Details: []Detail{
			{Label: "Principal", Value: format.Fixed(principal, 2)},
			{Label: "Interest Earned", Value: format.Fixed(got.Interest, 2)},
			{Label: "Total Amount", Value: format.Fixed(got.Total, 2)},
		},
	}, nil
}

// CompoundInterest computes interest compounded n times a year. Value is the
// total amount.
func (c *Calculator) CompoundInterest(principal, ratePercent, years, n float64) (Result, error) {
	got, err := finance.CompoundInterest(principal, ratePercent, years, n)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Expression: fmt.Sprintf("Compound Interest: P=%s, R=%s%%, T=%s years, N=%s",
			num(principal), num(ratePercent), num(years), num(n)),
		Value:   got.Total,
		Display: format.Fixed(got.Total, 2),
		Details: []Detail{
			{Label: "Principal", Value: format.Fixed(principal, 2)},
			{Label: "Interest Earned", Value: format.Fixed(got.Interest, 2)},
			{Label: "Total Amount", Value: format.Fixed(got.Total, 2)},
		},
	}, nil
}

// EMI computes the monthly installment of a loan. Value is the installment.
func (c *Calculator) EMI(principal, ratePercent, years float64) (Result, error) {
	got, err := finance.EMI(principal, ratePercent, years)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Expression: fmt.Sprintf("EMI: Loan=%s, Rate=%s%%, Time=%s years", num(principal), num(ratePercent), num(years)),
		Value:      got.EMI,
		Display:    format.Fixed(got.EMI, 2),
		Details: []Detail{
			{Label: "Monthly EMI", Value: format.Fixed(got.EMI, 2)},
			{Label: "Months", Value: num(got.Months)},
			{Label: "Total Interest Payable", Value: format.Fixed(got.TotalInterest, 2)},
			{Label: "Total Payment", Value: format.Fixed(got.TotalPayment, 2)},
		},
	}, nil
}

// GST adds tax to, or extracts it from, amount. Value is the total when
// adding and the original amount when extracting.
func (c *Calculator) GST(amount, ratePercent float64, direction finance.GSTDirection) (Result, error) {
	got, err := finance.CalculateGST(amount, ratePercent, direction)
	if err != nil {
		return Result{}, err
	}

	label, otherLabel := "GST Add", "Total Amount"
	if direction == finance.GSTExtract {
		label, otherLabel = "GST Extract", "Original Amount"
	}

	return Result{
		Expression: fmt.Sprintf("%s: Amount=%s, Rate=%s%%", label, num(amount), num(ratePercent)),
		Value:      got.Other,
		Display:    format.Fixed(got.Other, 2),
		Details: []Detail{
			{Label: "GST Amount", Value: format.Fixed(got.GSTAmount, 2)},
			{Label: otherLabel, Value: format.Fixed(got.Other, 2)},
		},
	}, nil
}

// Currency converts amount between two currencies of the rate source.
func (c *Calculator) Currency(amount float64, fromCode, toCode string) (Result, error) {
	v, err := c.rates.Convert(amount, fromCode, toCode)
	if err != nil {
		return Result{}, err
	}
	from, to := finance.NormalizeCode(fromCode), finance.NormalizeCode(toCode)
	return Result{
		Expression: fmt.Sprintf("Currency: %s %s to %s", num(amount), from, to),
		Value:      v,
		Display:    format.Money(v, to),
		Details: []Detail{
			{Label: from, Value: format.Money(amount, from)},
			{Label: to, Value: format.Money(v, to)},
		},
	}, nil
}
