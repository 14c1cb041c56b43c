package calc

import (
	"math"
	"testing"

	"github.com/Veraticus/calcmaster/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		a       float64
		op      Operator
		b       float64
		want    float64
		wantErr bool
	}{
		{name: "add", a: 5, op: OpAdd, b: 3, want: 8},
		{name: "subtract", a: 5, op: OpSubtract, b: 8, want: -3},
		{name: "multiply", a: 2.5, op: OpMultiply, b: 4, want: 10},
		{name: "divide", a: 9, op: OpDivide, b: 4, want: 2.25},
		{name: "divide by zero", a: 1, op: OpDivide, b: 0, wantErr: true},
		{name: "unknown operator", a: 1, op: "^", b: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.a, tt.op, tt.b)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOperator(t *testing.T) {
	op, err := ParseOperator("*")
	require.NoError(t, err)
	assert.Equal(t, OpMultiply, op)

	_, err = ParseOperator("x")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestBasicFunctions(t *testing.T) {
	assert.Equal(t, 16.0, Square(-4))
	assert.Equal(t, 20.0, Percentage(200, 10))

	root, err := SquareRoot(25)
	require.NoError(t, err)
	assert.Equal(t, 5.0, root)

	_, err = SquareRoot(-1)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestMemory(t *testing.T) {
	var m Memory
	assert.Equal(t, 0.0, m.Recall())
	assert.Equal(t, 10.0, m.Add(10))
	assert.Equal(t, 7.5, m.Subtract(2.5))
	assert.Equal(t, 7.5, m.Recall())
	m.Clear()
	assert.Equal(t, 0.0, m.Recall())
}

func TestScientific_Trig(t *testing.T) {
	deg := NewScientific(Degrees)
	assert.InDelta(t, 0.5, deg.Sin(30), 1e-12)
	assert.InDelta(t, 0.5, deg.Cos(60), 1e-12)
	assert.InDelta(t, 1.0, deg.Tan(45), 1e-12)
	assert.InDelta(t, 90.0, deg.Atan(math.Inf(1)), 1e-12)

	asin, err := deg.Asin(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, asin, 1e-9)

	_, err = deg.Acos(1.5)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	rad := NewScientific(Radians)
	assert.InDelta(t, 1.0, rad.Sin(math.Pi/2), 1e-12)
	acos, err := rad.Acos(-1)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, acos, 1e-12)
}

func TestScientific_AngleMode(t *testing.T) {
	var s Scientific
	assert.Equal(t, Degrees, s.AngleMode(), "zero value is degrees")
	assert.Equal(t, Radians, s.ToggleAngleMode())
	assert.Equal(t, Degrees, s.ToggleAngleMode())

	mode, err := ParseAngleMode(" RAD ")
	require.NoError(t, err)
	assert.Equal(t, Radians, mode)
	_, err = ParseAngleMode("gradians")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLogarithms(t *testing.T) {
	v, err := Log(1000, 10)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, v, 1e-12)

	v, err = Log(8, 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, v, 1e-12)

	v, err = Ln(math.E)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-12)

	for _, tc := range []struct{ value, base float64 }{{0, 10}, {-1, 10}, {10, 1}, {10, 0}} {
		_, err := Log(tc.value, tc.base)
		assert.ErrorIs(t, err, common.ErrInvalidInput, "log(%v, %v)", tc.value, tc.base)
	}
	_, err = Ln(0)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestPowAndExp(t *testing.T) {
	v, err := Pow(2, 10)
	require.NoError(t, err)
	assert.Equal(t, 1024.0, v)

	_, err = Pow(-8, 1.0/3)
	assert.ErrorIs(t, err, common.ErrInvalidInput, "NaN result")

	_, err = Exp(1000)
	assert.ErrorIs(t, err, common.ErrInvalidInput, "overflow")
}

func TestFactorial(t *testing.T) {
	got, err := Factorial(0)
	require.NoError(t, err)
	assert.Equal(t, "1", got.String())

	got, err = Factorial(20)
	require.NoError(t, err)
	assert.Equal(t, "2432902008176640000", got.String())

	got, err = Factorial(MaxFactorial)
	require.NoError(t, err)
	assert.Len(t, got.String(), 158)

	for _, n := range []float64{-1, 2.5, 101} {
		_, err := Factorial(n)
		assert.ErrorIs(t, err, common.ErrInvalidInput, "factorial(%v)", n)
	}
}
