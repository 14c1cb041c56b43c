// Package convert provides the static unit conversion catalog.
//
// Linear categories convert through a base unit whose factor is exactly 1.0:
// value_in_base = value * factor. Temperature converts through Celsius using
// affine transforms instead of a factor.
package convert

import (
	"fmt"
	"strings"

	"github.com/Veraticus/calcmaster/internal/common"
)

// Category is a conversion domain.
type Category string

// Supported categories.
const (
	Length      Category = "length"
	Weight      Category = "weight"
	Temperature Category = "temperature"
	Time        Category = "time"
	Volume      Category = "volume"
	Area        Category = "area"
)

// Transform maps a value into and out of a category's pivot unit.
type Transform struct {
	ToPivot   func(float64) float64
	FromPivot func(float64) float64
}

// Unit is one entry of a category.
type Unit struct {
	Transform *Transform
	Name      string
	Display   string
	Factor    float64
}

func (u Unit) toPivot(v float64) float64 {
	if u.Transform != nil {
		return u.Transform.ToPivot(v)
	}
	return v * u.Factor
}

func (u Unit) fromPivot(v float64) float64 {
	if u.Transform != nil {
		return u.Transform.FromPivot(v)
	}
	return v / u.Factor
}

// CategorySpec declares a category and its units in display order.
type CategorySpec struct {
	Name  Category
	Units []Unit
}

// Catalog is an immutable category -> unit table.
type Catalog struct {
	units      map[Category]map[string]Unit
	order      map[Category][]string
	unitOwner  map[string]Category
	categories []Category
}

// New builds a catalog from specs. Unit names must be unique across all
// categories so that DetectCategory can never misclassify.
func New(specs ...CategorySpec) (*Catalog, error) {
	c := &Catalog{
		units:     make(map[Category]map[string]Unit, len(specs)),
		order:     make(map[Category][]string, len(specs)),
		unitOwner: make(map[string]Category),
	}

	for _, spec := range specs {
		if _, exists := c.units[spec.Name]; exists {
			return nil, fmt.Errorf("category %q declared twice", spec.Name)
		}
		if len(spec.Units) == 0 {
			return nil, fmt.Errorf("category %q has no units", spec.Name)
		}

		table := make(map[string]Unit, len(spec.Units))
		for _, u := range spec.Units {
			name := normalize(u.Name)
			if owner, taken := c.unitOwner[name]; taken {
				return nil, fmt.Errorf("unit %q declared in both %q and %q", name, owner, spec.Name)
			}
			if u.Transform == nil && u.Factor <= 0 {
				return nil, fmt.Errorf("unit %q in %q needs a positive factor or a transform", name, spec.Name)
			}
			u.Name = name
			table[name] = u
			c.unitOwner[name] = spec.Name
			c.order[spec.Name] = append(c.order[spec.Name], name)
		}

		c.units[spec.Name] = table
		c.categories = append(c.categories, spec.Name)
	}

	return c, nil
}

// Categories returns the categories in declaration order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Units returns the unit names of a category in declaration order.
func (c *Catalog) Units(category Category) ([]string, error) {
	names, ok := c.order[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownCategory, category)
	}
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

// Unit looks up a single unit.
func (c *Catalog) Unit(category Category, name string) (Unit, error) {
	table, ok := c.units[category]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %s", common.ErrUnknownCategory, category)
	}
	u, ok := table[normalize(name)]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q in %s", common.ErrUnknownUnit, name, category)
	}
	return u, nil
}

// DisplayName returns the human readable name of a unit, or the raw name
// when the unit is not in the catalog.
func (c *Catalog) DisplayName(name string) string {
	key := normalize(name)
	if cat, ok := c.unitOwner[key]; ok {
		return c.units[cat][key].Display
	}
	return name
}

// Convert converts value between two units of category.
// No rounding is applied.
func (c *Catalog) Convert(category Category, value float64, fromUnit, toUnit string) (float64, error) {
	from, err := c.Unit(category, fromUnit)
	if err != nil {
		return 0, err
	}
	to, err := c.Unit(category, toUnit)
	if err != nil {
		return 0, err
	}

	if from.Name == to.Name {
		return value, nil
	}

	if from.Transform == nil && to.Transform == nil {
		return value * (from.Factor / to.Factor), nil
	}

	return to.fromPivot(from.toPivot(value)), nil
}

// DetectCategory finds the single category holding both units.
func (c *Catalog) DetectCategory(fromUnit, toUnit string) (Category, error) {
	fromCat, okFrom := c.unitOwner[normalize(fromUnit)]
	toCat, okTo := c.unitOwner[normalize(toUnit)]
	if !okFrom || !okTo || fromCat != toCat {
		return "", fmt.Errorf("%w: cannot convert from %q to %q", common.ErrAmbiguousOrNotFound, fromUnit, toUnit)
	}
	return fromCat, nil
}

// QuickConvert converts without an explicit category.
func (c *Catalog) QuickConvert(value float64, fromUnit, toUnit string) (float64, Category, error) {
	category, err := c.DetectCategory(fromUnit, toUnit)
	if err != nil {
		return 0, "", err
	}
	result, err := c.Convert(category, value, fromUnit, toUnit)
	return result, category, err
}

// ParseCategory resolves a user supplied category name.
func (c *Catalog) ParseCategory(name string) (Category, error) {
	cat := Category(normalize(name))
	if _, ok := c.units[cat]; !ok {
		return "", fmt.Errorf("%w: %s", common.ErrUnknownCategory, name)
	}
	return cat, nil
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}
