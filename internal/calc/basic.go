// Package calc holds the arithmetic and scientific operations behind the
// calculator modes, and a small expression evaluator.
package calc

import (
	"math"

	"github.com/Veraticus/calcmaster/internal/common"
)

// Operator is a binary arithmetic operator.
type Operator string

// Supported operators.
const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
)

// ParseOperator accepts one of + - * /.
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return op, nil
	default:
		return "", common.InvalidInput("invalid operator %q, use +, -, * or /", s)
	}
}

// Apply computes a op b.
func Apply(a float64, op Operator, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		return Divide(a, b)
	default:
		return 0, common.InvalidInput("invalid operator %q", string(op))
	}
}

// Divide returns a / b, rejecting a zero divisor.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, common.InvalidInput("cannot divide by zero")
	}
	return a / b, nil
}

// Square returns x².
func Square(x float64) float64 {
	return x * x
}

// SquareRoot returns √x for non-negative x.
func SquareRoot(x float64) (float64, error) {
	if x < 0 {
		return 0, common.InvalidInput("cannot calculate square root of a negative number")
	}
	return math.Sqrt(x), nil
}

// Percentage returns percent% of value.
func Percentage(value, percent float64) float64 {
	return value * percent / 100
}

// Memory is the M+/M-/MR/MC register. The zero value is cleared.
type Memory struct {
	value float64
}

// Add adds v and returns the new value.
func (m *Memory) Add(v float64) float64 {
	m.value += v
	return m.value
}

// Subtract subtracts v and returns the new value.
func (m *Memory) Subtract(v float64) float64 {
	m.value -= v
	return m.value
}

// Recall returns the stored value.
func (m *Memory) Recall() float64 {
	return m.value
}

// Clear resets the register to zero.
func (m *Memory) Clear() {
	m.value = 0
}
