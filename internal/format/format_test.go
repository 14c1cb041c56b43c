package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name      string
		want      string
		value     float64
		precision int
	}{
		{name: "whole", value: 4, precision: 6, want: "4"},
		{name: "negative whole", value: -12, precision: 6, want: "-12"},
		{name: "trailing zeros trimmed", value: 1.5, precision: 6, want: "1.5"},
		{name: "rounded", value: 2.0 / 3.0, precision: 6, want: "0.666667"},
		{name: "float noise", value: 0.1 + 0.2, precision: 6, want: "0.3"},
		{name: "rounds to whole", value: 0.9999999, precision: 6, want: "1"},
		{name: "negative zero", value: math.Copysign(0, -1), precision: 6, want: "0"},
		{name: "tiny rounds to zero", value: -1e-9, precision: 6, want: "0"},
		{name: "zero precision", value: 2.5, precision: 0, want: "3"},
		{name: "nan", value: math.NaN(), precision: 6, want: "NaN"},
		{name: "inf", value: math.Inf(1), precision: 6, want: "Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.value, tt.precision))
		})
	}
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "1100.00", Fixed(1100, 2))
	assert.Equal(t, "0.33", Fixed(1.0/3.0, 2))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", Money(1234.5, "USD"))
	assert.Contains(t, Money(85, "EUR"), "85.00")
	assert.Equal(t, "12.00 XYZ", Money(12, "XYZ"))
}
