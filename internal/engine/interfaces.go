package engine

// RateSource supplies currency rates for conversion.
type RateSource interface {
	Convert(amount float64, fromCode, toCode string) (float64, error)
}
