package engine

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/Veraticus/calcmaster/internal/calc"
	"github.com/Veraticus/calcmaster/internal/common"
	"github.com/Veraticus/calcmaster/internal/convert"
	"github.com/Veraticus/calcmaster/internal/finance"
	"github.com/Veraticus/calcmaster/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRates struct {
	rates finance.Rates
}

func (s stubRates) Convert(amount float64, fromCode, toCode string) (float64, error) {
	return finance.ConvertCurrency(amount, fromCode, toCode, s.rates)
}

func newCalculator(t *testing.T) *Calculator {
	t.Helper()
	return New(convert.Default(), stubRates{rates: finance.Rates{"USD": 1.0, "EUR": 0.85, "JPY": 110}})
}

func TestCalculator_Arithmetic(t *testing.T) {
	c := newCalculator(t)

	r, err := c.Arithmetic(5, calc.OpAdd, 3.5)
	require.NoError(t, err)
	assert.Equal(t, Result{Expression: "5 + 3.5", Value: 8.5, Display: "8.5"}, r)

	r, err = c.Arithmetic(1, calc.OpDivide, 3)
	require.NoError(t, err)
	assert.Equal(t, "0.333333", r.Display)

	_, err = c.Arithmetic(1, calc.OpDivide, 0)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCalculator_BasicOperations(t *testing.T) {
	c := newCalculator(t)

	assert.Equal(t, "4²", c.Square(4).Expression)
	assert.Equal(t, "16", c.Square(4).Display)

	r, err := c.SquareRoot(2)
	require.NoError(t, err)
	assert.Equal(t, "√2", r.Expression)
	assert.Equal(t, "1.414214", r.Display)

	p := c.Percentage(200, 15)
	assert.Equal(t, "15% of 200", p.Expression)
	assert.Equal(t, 30.0, p.Value)

	c.Memory().Add(5)
	c.Memory().Subtract(2)
	assert.Equal(t, 3.0, c.Memory().Recall())
}

func TestCalculator_Function(t *testing.T) {
	c := newCalculator(t)
	assert.Equal(t, calc.Degrees, c.AngleMode())

	tests := []struct {
		name        string
		fn          string
		x           float64
		wantExpr    string
		wantDisplay string
	}{
		{name: "sine in degrees", fn: "sin", x: 30, wantExpr: "sin(30)", wantDisplay: "0.5"},
		{name: "negative argument", fn: "abs", x: -2.5, wantExpr: "abs(-2.5)", wantDisplay: "2.5"},
		{name: "inverse gets degree sign", fn: "ASIN", x: 1, wantExpr: "asin(1)", wantDisplay: "90°"},
		{name: "log base ten", fn: "log", x: 100, wantExpr: "log(100)", wantDisplay: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := c.Function(tt.fn, tt.x)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExpr, r.Expression)
			assert.Equal(t, tt.wantDisplay, r.Display)
		})
	}

	_, err := c.Function("cosh", 1)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = c.Function("acos", 2)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	assert.Equal(t, calc.Radians, c.ToggleAngleMode())
	r, err := c.Function("atan", 1)
	require.NoError(t, err)
	assert.Equal(t, "0.785398", r.Display)
}

func TestCalculator_LogPowerFactorial(t *testing.T) {
	c := newCalculator(t)

	r, err := c.Log(8, 2)
	require.NoError(t, err)
	assert.Equal(t, "log(8, base 2)", r.Expression)
	assert.Equal(t, "3", r.Display)

	r, err = c.Power(2, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "2^0.5", r.Expression)

	r, err = c.Factorial(25)
	require.NoError(t, err)
	assert.Equal(t, "25!", r.Expression)
	assert.Equal(t, "15511210043330985984000000", r.Display)
	assert.InDelta(t, 1.5511210043330986e25, r.Value, 1e12)

	_, err = c.Factorial(-3)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCalculator_Evaluate(t *testing.T) {
	c := newCalculator(t)

	r, err := c.Evaluate("  sin(30) * 4 ")
	require.NoError(t, err)
	assert.Equal(t, "sin(30) * 4", r.Expression)
	assert.Equal(t, "2", r.Display)

	_, err = c.Evaluate("1 +")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCalculator_Convert(t *testing.T) {
	c := newCalculator(t)

	r, err := c.Convert(convert.Length, 100, "Centimeter", "meter")
	require.NoError(t, err)
	assert.Equal(t, "Convert: 100 centimeter to meter", r.Expression)
	assert.Equal(t, 1.0, r.Value)
	assert.Contains(t, r.Details, Detail{Label: "Meter", Value: "1"})

	r, err = c.QuickConvert(212, "fahrenheit", "celsius")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, r.Value, 1e-9)
	assert.Equal(t, Detail{Label: "Category", Value: "temperature"}, r.Details[0])

	_, err = c.Convert(convert.Length, 1, "meter", "gram")
	assert.ErrorIs(t, err, common.ErrUnknownUnit)
	_, err = c.QuickConvert(1, "meter", "gram")
	assert.ErrorIs(t, err, common.ErrAmbiguousOrNotFound)
}

func TestCalculator_Finance(t *testing.T) {
	c := newCalculator(t)

	si, err := c.SimpleInterest(1000, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, "Simple Interest: P=1000, R=5%, T=2 years", si.Expression)
	assert.Equal(t, "1100.00", si.Display)
	assert.Contains(t, si.Details, Detail{Label: "Interest Earned", Value: "100.00"})

	ci, err := c.CompoundInterest(1000, 10, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "Compound Interest: P=1000, R=10%, T=2 years, N=1", ci.Expression)
	assert.InDelta(t, 1210.0, ci.Value, 1e-9)

	emi, err := c.EMI(100000, 12, 1)
	require.NoError(t, err)
	assert.Equal(t, "EMI: Loan=100000, Rate=12%, Time=1 years", emi.Expression)
	assert.Equal(t, "8884.88", emi.Display)

	gst, err := c.GST(118, 18, finance.GSTExtract)
	require.NoError(t, err)
	assert.Equal(t, "GST Extract: Amount=118, Rate=18%", gst.Expression)
	assert.Equal(t, "100.00", gst.Display)
	assert.Contains(t, gst.Details, Detail{Label: "GST Amount", Value: "18.00"})

	_, err = c.EMI(1000, 5, 0)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCalculator_Currency(t *testing.T) {
	c := newCalculator(t)

	r, err := c.Currency(100, "usd", "eur")
	require.NoError(t, err)
	assert.Equal(t, "Currency: 100 USD to EUR", r.Expression)
	assert.InDelta(t, 85.0, r.Value, 1e-9)

	r, err = c.Currency(85, "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "$100.00", r.Display)

	_, err = c.Currency(1, "USD", "XYZ")
	assert.ErrorIs(t, err, common.ErrUnknownCurrency)
}

// Expression texts must land in the intended history buckets.
func TestCalculator_ExpressionsClassify(t *testing.T) {
	c := newCalculator(t)

	si, _ := c.SimpleInterest(1000, 5, 2)
	ci, _ := c.CompoundInterest(1000, 5, 2, 4)
	emi, _ := c.EMI(5000, 7, 3)
	gst, _ := c.GST(100, 18, finance.GSTAdd)
	cur, _ := c.Currency(100, "USD", "JPY")
	conv, _ := c.Convert(convert.Length, 200, "centimeter", "meter")
	// "kilogram" contains "log", and scientific keywords win over conversion.
	weight, _ := c.Convert(convert.Weight, 2, "kilogram", "pound")
	sin, _ := c.Function("sin", 30)
	sum, _ := c.Arithmetic(2, calc.OpAdd, 2)

	tests := []struct {
		r    Result
		want history.Kind
	}{
		{r: si, want: history.KindFinancial},
		{r: ci, want: history.KindFinancial},
		{r: emi, want: history.KindFinancial},
		{r: gst, want: history.KindFinancial},
		{r: cur, want: history.KindFinancial},
		{r: conv, want: history.KindConversion},
		{r: weight, want: history.KindScientific},
		{r: sin, want: history.KindScientific},
		{r: sum, want: history.KindBasic},
	}

	for _, tt := range tests {
		t.Run(tt.r.Expression, func(t *testing.T) {
			assert.Equal(t, tt.want, history.Classify(tt.r.Expression))
		})
	}
}

func TestCalculator_WithRateTable(t *testing.T) {
	table := finance.LoadRateTable(filepath.Join(t.TempDir(), "currency.json"))
	c := NewWithConfig(convert.Default(), table, Config{AngleMode: calc.Radians, Precision: 2})

	r, err := c.Currency(1, "GBP", "GBP")
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Value)

	r, err = c.Function("cos", math.Pi)
	require.NoError(t, err)
	assert.Equal(t, "-1", r.Display)
}
