package number

import (
	"strings"

	"bennypowers.dev/svls/internal/collections"
)

var properties = collections.NewSet(
	"z-index", "opacity", "line-height", "font-weight", "font-size", "letter-spacing",
	"border", "border-top", "border-right", "border-bottom", "border-left",
	"background-position", "width", "height", "min-width", "max-width", "min-height", "max-height",
	"animation-iteration-count", "animation-duration", "animation-delay",
	"transition-duration", "transition-delay", "top", "left", "right", "bottom",
	"margin", "margin-top", "margin-right", "margin-bottom", "margin-left",
	"padding", "padding-top", "padding-right", "padding-bottom", "padding-left",
	"gap", "row-gap", "column-gap", "border-radius", "border-width", "outline-width",
	"stroke-width", "transform-origin",
)

var sizeProperties = collections.NewSet("width", "height", "min-width", "max-width", "min-height", "max-height")

var insetProperties = collections.NewSet("top", "left", "right", "bottom")

// IsProperty reports whether every numeric literal in the property's value
// is an editable number.
func IsProperty(property string) bool {
	return properties.Has(strings.ToLower(property))
}

// Range is the suggested editing interval for a numeric value.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	return max(r.Min, min(r.Max, v))
}

// RangeFor suggests an editing interval for a value of the given unit in
// the given property. The interval always includes value itself.
func RangeFor(property, unit string, value float64) Range {
	p := strings.ToLower(property)
	r := Range{Min: 0, Max: 100, Step: 1}

	switch {
	case p == "opacity":
		r = Range{Min: 0, Max: 1, Step: 0.01}
	case p == "z-index":
		r = Range{Min: -9999, Max: 9999, Step: 1}
	case p == "line-height":
		r = Range{Min: 0, Max: 3, Step: 0.05}
	case p == "font-weight":
		r = Range{Min: 100, Max: 900, Step: 100}
	case p == "background-position":
		r = Range{Min: -100, Max: 100, Step: 1}
	case p == "animation-iteration-count":
		r = Range{Min: 0, Max: 10, Step: 1}
	case p == "font-size":
		r = Range{Min: 8, Max: 96, Step: 1}
	case insetProperties.Has(p) || strings.HasPrefix(p, "margin"):
		r = Range{Min: -200, Max: 200, Step: 1}
	case strings.HasPrefix(p, "padding"):
		r = Range{Min: 0, Max: 200, Step: 1}
	case p == "letter-spacing":
		r = Range{Min: -2, Max: 10, Step: 0.1}
	case strings.Contains(p, "radius"), strings.HasPrefix(p, "border"):
		r = Range{Min: 0, Max: 20, Step: 1}
		if strings.Contains(p, "radius") {
			r.Max = 100
		}
	}

	if unit != "" {
		r = unitRange(p, unit, r)
	}

	r.Min = min(r.Min, value)
	r.Max = max(r.Max, value)
	return r
}

func unitRange(p, unit string, r Range) Range {
	switch strings.ToLower(unit) {
	case "px":
		switch {
		case sizeProperties.Has(p):
			return Range{Min: 0, Max: 1000, Step: 1}
		case insetProperties.Has(p):
			return Range{Min: -400, Max: 400, Step: 1}
		}
		return Range{Min: r.Min, Max: max(r.Max, 200), Step: 1}
	case "rem", "em", "fr":
		return Range{Min: 0, Max: 10, Step: 0.1}
	case "%":
		if sizeProperties.Has(p) {
			return Range{Min: 0, Max: 100, Step: 1}
		}
		return Range{Min: -50, Max: 50, Step: 1}
	case "vh", "vw", "vmin", "vmax":
		return Range{Min: 0, Max: 100, Step: 1}
	case "deg":
		return Range{Min: 0, Max: 360, Step: 1}
	case "s":
		return Range{Min: 0, Max: 10, Step: 0.1}
	case "ms":
		return Range{Min: 0, Max: 2000, Step: 10}
	}
	return Range{Min: 0, Max: 100, Step: 1}
}
