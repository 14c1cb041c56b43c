package convert

var celsius = &Transform{
	ToPivot:   func(c float64) float64 { return c },
	FromPivot: func(c float64) float64 { return c },
}

var fahrenheit = &Transform{
	ToPivot:   func(f float64) float64 { return (f - 32) * 5 / 9 },
	FromPivot: func(c float64) float64 { return c*9/5 + 32 },
}

var kelvin = &Transform{
	ToPivot:   func(k float64) float64 { return k - 273.15 },
	FromPivot: func(c float64) float64 { return c + 273.15 },
}

// DefaultSpecs is the built-in unit table. The first unit of every linear
// category is its base unit.
var DefaultSpecs = []CategorySpec{
	{
		Name: Length,
		Units: []Unit{
			{Name: "meter", Display: "Meter", Factor: 1.0},
			{Name: "centimeter", Display: "Centimeter", Factor: 0.01},
			{Name: "millimeter", Display: "Millimeter", Factor: 0.001},
			{Name: "kilometer", Display: "Kilometer", Factor: 1000.0},
			{Name: "inch", Display: "Inch", Factor: 0.0254},
			{Name: "foot", Display: "Foot", Factor: 0.3048},
			{Name: "yard", Display: "Yard", Factor: 0.9144},
			{Name: "mile", Display: "Mile", Factor: 1609.34},
		},
	},
	{
		Name: Weight,
		Units: []Unit{
			{Name: "kilogram", Display: "Kilogram", Factor: 1.0},
			{Name: "gram", Display: "Gram", Factor: 0.001},
			{Name: "milligram", Display: "Milligram", Factor: 0.000001},
			{Name: "pound", Display: "Pound", Factor: 0.453592},
			{Name: "ounce", Display: "Ounce", Factor: 0.0283495},
			{Name: "ton", Display: "Ton", Factor: 1000.0},
		},
	},
	{
		Name: Temperature,
		Units: []Unit{
			{Name: "celsius", Display: "Celsius", Transform: celsius},
			{Name: "fahrenheit", Display: "Fahrenheit", Transform: fahrenheit},
			{Name: "kelvin", Display: "Kelvin", Transform: kelvin},
		},
	},
	{
		Name: Time,
		Units: []Unit{
			{Name: "second", Display: "Second", Factor: 1.0},
			{Name: "millisecond", Display: "Millisecond", Factor: 0.001},
			{Name: "minute", Display: "Minute", Factor: 60.0},
			{Name: "hour", Display: "Hour", Factor: 3600.0},
			{Name: "day", Display: "Day", Factor: 86400.0},
			{Name: "week", Display: "Week", Factor: 604800.0},
		},
	},
	{
		Name: Volume,
		Units: []Unit{
			{Name: "liter", Display: "Liter", Factor: 1.0},
			{Name: "milliliter", Display: "Milliliter", Factor: 0.001},
			{Name: "gallon", Display: "Gallon", Factor: 3.78541},
			{Name: "quart", Display: "Quart", Factor: 0.946353},
			{Name: "pint", Display: "Pint", Factor: 0.473176},
			{Name: "cup", Display: "Cup", Factor: 0.236588},
			{Name: "fluid_ounce", Display: "Fluid Ounce", Factor: 0.0295735},
		},
	},
	{
		Name: Area,
		Units: []Unit{
			{Name: "square_meter", Display: "Square Meter", Factor: 1.0},
			{Name: "square_kilometer", Display: "Square Kilometer", Factor: 1000000.0},
			{Name: "square_centimeter", Display: "Square Centimeter", Factor: 0.0001},
			{Name: "square_mile", Display: "Square Mile", Factor: 2589988.11},
			{Name: "square_foot", Display: "Square Foot", Factor: 0.092903},
			{Name: "square_inch", Display: "Square Inch", Factor: 0.00064516},
			{Name: "acre", Display: "Acre", Factor: 4046.86},
			{Name: "hectare", Display: "Hectare", Factor: 10000.0},
		},
	},
}

// Default returns a catalog built from DefaultSpecs.
func Default() *Catalog {
	c, err := New(DefaultSpecs...)
	if err != nil {
		panic("convert: invalid built-in unit table: " + err.Error())
	}
	return c
}
