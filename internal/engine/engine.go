// Package engine is the computation surface used by the command line: every
// operation returns a Result carrying the value, its display form and the
// expression text recorded in history.
package engine

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/Veraticus/calcmaster/internal/calc"
	"github.com/Veraticus/calcmaster/internal/common"
	"github.com/Veraticus/calcmaster/internal/config"
	"github.com/Veraticus/calcmaster/internal/convert"
	"github.com/Veraticus/calcmaster/internal/format"
)

// Result is the outcome of one computation.
type Result struct {
	Expression string
	Display    string
	Details    []Detail
	Value      float64
}

// Detail is a labelled secondary figure, such as the interest part of a loan.
type Detail struct {
	Label string
	Value string
}

// Calculator runs calculations against a unit catalog and a rate source.
// It holds the memory register and the angle mode, so it is not safe for
// concurrent use.
type Calculator struct {
	catalog   *convert.Catalog
	rates     RateSource
	sci       *calc.Scientific
	memory    calc.Memory
	precision int
}

// Config holds configuration options for the calculator.
type Config struct {
	AngleMode calc.AngleMode
	Precision int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		AngleMode: calc.AngleMode(config.DefaultAngleMode),
		Precision: config.DefaultPrecision,
	}
}

// New creates a calculator with the default configuration.
func New(catalog *convert.Catalog, rates RateSource) *Calculator {
	return NewWithConfig(catalog, rates, DefaultConfig())
}

// NewWithConfig creates a calculator with custom configuration.
func NewWithConfig(catalog *convert.Catalog, rates RateSource, cfg Config) *Calculator {
	return &Calculator{
		catalog:   catalog,
		rates:     rates,
		sci:       calc.NewScientific(cfg.AngleMode),
		precision: cfg.Precision,
	}
}

// Catalog returns the unit catalog.
func (c *Calculator) Catalog() *convert.Catalog {
	return c.catalog
}

// Format renders v at the configured precision.
func (c *Calculator) Format(v float64) string {
	return format.Number(v, c.precision)
}

func (c *Calculator) result(expression string, v float64, details ...Detail) Result {
	return Result{Expression: expression, Value: v, Display: c.Format(v), Details: details}
}

// num echoes an input operand in the shortest exact form.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Arithmetic computes a op b.
func (c *Calculator) Arithmetic(a float64, op calc.Operator, b float64) (Result, error) {
	v, err := calc.Apply(a, op, b)
	if err != nil {
		return Result{}, err
	}
	return c.result(fmt.Sprintf("%s %s %s", num(a), op, num(b)), v), nil
}

// Square computes x².
func (c *Calculator) Square(x float64) Result {
	return c.result(num(x)+"²", calc.Square(x))
}

// SquareRoot computes √x.
func (c *Calculator) SquareRoot(x float64) (Result, error) {
	v, err := calc.SquareRoot(x)
	if err != nil {
		return Result{}, err
	}
	return c.result("√"+num(x), v), nil
}

// Percentage computes percent% of value.
func (c *Calculator) Percentage(value, percent float64) Result {
	return c.result(fmt.Sprintf("%s%% of %s", num(percent), num(value)), calc.Percentage(value, percent))
}

// Memory exposes the M+/M-/MR/MC register.
func (c *Calculator) Memory() *calc.Memory {
	return &c.memory
}

// AngleMode returns the current angle mode.
func (c *Calculator) AngleMode() calc.AngleMode {
	return c.sci.AngleMode()
}

// ToggleAngleMode switches between degrees and radians.
func (c *Calculator) ToggleAngleMode() calc.AngleMode {
	return c.sci.ToggleAngleMode()
}

// Functions lists the single argument functions accepted by Function.
func (c *Calculator) Functions() []string {
	return []string{"sin", "cos", "tan", "asin", "acos", "atan", "sqrt", "log", "ln", "exp", "abs"}
}

// Function applies a named single argument function, e.g. "sin" to 30.
// Inverse trigonometric results carry a degree sign in degrees mode.
func (c *Calculator) Function(name string, x float64) (Result, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	expression := fmt.Sprintf("%s(%s)", name, num(x))

	var valid bool
	for _, fn := range c.Functions() {
		if fn == name {
			valid = true
			break
		}
	}
	if !valid {
		return Result{}, common.InvalidInput("unknown function %q", name)
	}

	v, err := c.sci.Evaluate(fmt.Sprintf("%s(%s)", name, strconv.FormatFloat(x, 'g', -1, 64)))
	if err != nil {
		return Result{}, err
	}

	r := c.result(expression, v)
	switch name {
	case "asin", "acos", "atan":
		if c.sci.AngleMode() == calc.Degrees {
			r.Display += "°"
		}
	}
	return r, nil
}

// Log computes the logarithm of value in base.
func (c *Calculator) Log(value, base float64) (Result, error) {
	v, err := calc.Log(value, base)
	if err != nil {
		return Result{}, err
	}
	expression := fmt.Sprintf("log(%s)", num(value))
	if base != 10 {
		expression = fmt.Sprintf("log(%s, base %s)", num(value), num(base))
	}
	return c.result(expression, v), nil
}

// Power computes base^exponent.
func (c *Calculator) Power(base, exponent float64) (Result, error) {
	v, err := calc.Pow(base, exponent)
	if err != nil {
		return Result{}, err
	}
	return c.result(fmt.Sprintf("%s^%s", num(base), num(exponent)), v), nil
}

// Factorial computes n! exactly. Display holds every digit.
func (c *Calculator) Factorial(n float64) (Result, error) {
	f, err := calc.Factorial(n)
	if err != nil {
		return Result{}, err
	}
	v, _ := new(big.Float).SetInt(f).Float64()
	return Result{Expression: num(n) + "!", Value: v, Display: f.String()}, nil
}

// Evaluate computes a free form expression in the current angle mode.
func (c *Calculator) Evaluate(expression string) (Result, error) {
	expression = strings.TrimSpace(expression)
	v, err := c.sci.Evaluate(expression)
	if err != nil {
		return Result{}, err
	}
	return c.result(expression, v), nil
}
