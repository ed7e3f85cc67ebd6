// Package units provides length unit conversion and dimension helpers
// shared by the geometry, export and calculator packages.
package units

import (
	"fmt"
	"strconv"
	"strings"
)

// LengthUnit identifies one of the four supported length units.
type LengthUnit string

const (
	Millimeter LengthUnit = "mm"
	Centimeter LengthUnit = "cm"
	Meter      LengthUnit = "m"
	Inch       LengthUnit = "in"
)

// factors maps each unit to its size in millimeters.
var factors = map[LengthUnit]float64{
	Millimeter: 1,
	Centimeter: 10,
	Meter:      1000,
	Inch:       25.4,
}

// All lists the supported units in selector order.
var All = []LengthUnit{Millimeter, Centimeter, Meter, Inch}

// Valid reports whether u is one of the supported units.
func (u LengthUnit) Valid() bool {
	_, ok := factors[u]
	return ok
}

// ToMillimeters returns the size of one unit in millimeters.
// Calling this with an unknown unit is a caller contract violation
// and returns 0.
func (u LengthUnit) ToMillimeters() float64 {
	return factors[u]
}

// Parse converts a unit string from an API request into a LengthUnit.
func Parse(s string) (LengthUnit, error) {
	u := LengthUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("unknown length unit %q", s)
	}
	return u, nil
}

// Convert converts value from one unit to another through millimeters.
// Unknown units are a caller contract violation, not a runtime error.
func Convert(value float64, from, to LengthUnit) float64 {
	mm := value * factors[from]
	return mm / factors[to]
}

// ClampCornerRadius limits a corner radius so two adjacent corner arcs
// can never overlap. The clamp is silent; the input layer is responsible
// for telling the user the value was adjusted.
func ClampCornerRadius(width, height, radius float64) float64 {
	max := minOf(width, height) / 2
	if radius > max {
		return max
	}
	return radius
}

// Format renders a dimension label like "200 mm". Trailing zeros are
// trimmed so whole values print without a decimal point.
func Format(value float64, unit LengthUnit) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	return s + " " + string(unit)
}

func minOf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
