package calc

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/Veraticus/calcmaster/internal/common"
)

// AngleMode selects how trigonometric functions read and report angles.
type AngleMode string

// Angle modes.
const (
	Degrees AngleMode = "degrees"
	Radians AngleMode = "radians"
)

// MaxFactorial bounds Factorial input.
const MaxFactorial = 100

// ParseAngleMode accepts "degrees"/"deg" or "radians"/"rad".
func ParseAngleMode(s string) (AngleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "degrees", "deg":
		return Degrees, nil
	case "radians", "rad":
		return Radians, nil
	default:
		return "", common.InvalidInput("unknown angle mode %q", s)
	}
}

// Scientific evaluates trigonometric functions in its angle mode. The zero
// value works in degrees.
type Scientific struct {
	Mode AngleMode
}

// NewScientific returns a Scientific in mode.
func NewScientific(mode AngleMode) *Scientific {
	return &Scientific{Mode: mode}
}

// AngleMode returns the effective mode.
func (s *Scientific) AngleMode() AngleMode {
	if s.Mode == Radians {
		return Radians
	}
	return Degrees
}

// ToggleAngleMode switches between degrees and radians and returns the new mode.
func (s *Scientific) ToggleAngleMode() AngleMode {
	if s.AngleMode() == Degrees {
		s.Mode = Radians
	} else {
		s.Mode = Degrees
	}
	return s.Mode
}

func (s *Scientific) toRadians(angle float64) float64 {
	if s.AngleMode() == Degrees {
		return angle * math.Pi / 180
	}
	return angle
}

func (s *Scientific) fromRadians(rad float64) float64 {
	if s.AngleMode() == Degrees {
		return rad * 180 / math.Pi
	}
	return rad
}

// Sin returns the sine of angle.
func (s *Scientific) Sin(angle float64) float64 {
	return math.Sin(s.toRadians(angle))
}

// Cos returns the cosine of angle.
func (s *Scientific) Cos(angle float64) float64 {
	return math.Cos(s.toRadians(angle))
}

// Tan returns the tangent of angle.
func (s *Scientific) Tan(angle float64) float64 {
	return math.Tan(s.toRadians(angle))
}

// Asin returns the inverse sine of v in [-1, 1].
func (s *Scientific) Asin(v float64) (float64, error) {
	if v < -1 || v > 1 {
		return 0, common.InvalidInput("value must be between -1 and 1 for inverse trigonometric functions")
	}
	return s.fromRadians(math.Asin(v)), nil
}

// Acos returns the inverse cosine of v in [-1, 1].
func (s *Scientific) Acos(v float64) (float64, error) {
	if v < -1 || v > 1 {
		return 0, common.InvalidInput("value must be between -1 and 1 for inverse trigonometric functions")
	}
	return s.fromRadians(math.Acos(v)), nil
}

// Atan returns the inverse tangent of v.
func (s *Scientific) Atan(v float64) float64 {
	return s.fromRadians(math.Atan(v))
}

// Log returns the logarithm of value in base.
func Log(value, base float64) (float64, error) {
	if value <= 0 {
		return 0, common.InvalidInput("logarithm is only defined for positive numbers")
	}
	if base <= 0 || base == 1 {
		return 0, common.InvalidInput("logarithm base must be positive and not equal to 1")
	}
	if base == 10 {
		return math.Log10(value), nil
	}
	return math.Log(value) / math.Log(base), nil
}

// Ln returns the natural logarithm of value.
func Ln(value float64) (float64, error) {
	if value <= 0 {
		return 0, common.InvalidInput("natural logarithm is only defined for positive numbers")
	}
	return math.Log(value), nil
}

// Exp returns e^value.
func Exp(value float64) (float64, error) {
	return finite(math.Exp(value), "exp(%g)", value)
}

// Pow returns base^exponent.
func Pow(base, exponent float64) (float64, error) {
	return finite(math.Pow(base, exponent), "%g^%g", base, exponent)
}

// Factorial returns n! exactly for whole n in [0, MaxFactorial].
func Factorial(n float64) (*big.Int, error) {
	switch {
	case n < 0:
		return nil, common.InvalidInput("factorial is not defined for negative numbers")
	case n != math.Trunc(n):
		return nil, common.InvalidInput("factorial is only defined for integers")
	case n > MaxFactorial:
		return nil, common.InvalidInput("factorial calculation is limited to numbers <= %d", MaxFactorial)
	}
	return new(big.Int).MulRange(1, int64(n)), nil
}

func finite(v float64, format string, args ...any) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, common.InvalidInput("%s is not a finite number", fmt.Sprintf(format, args...))
	}
	return v, nil
}
