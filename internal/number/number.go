// Package number models a numeric literal with an optional unit and holds
// the shared decimal formatting used by the other value models.
package number

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var literal = regexp.MustCompile(`(?i)^(-?\d*\.?\d+)([a-z%]*)$`)

// Number is a parsed numeric token such as "1.25rem" or "400".
type Number struct {
	Value float64
	Unit  string
	// Decimals is the number of fractional digits written in the source.
	Decimals int
}

// Parse reads a whole value of the form <number><unit>.
func Parse(value string) (*Number, bool) {
	m := literal.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return nil, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, false
	}
	decimals := 0
	if _, frac, ok := strings.Cut(m[1], "."); ok {
		decimals = len(frac)
	}
	return &Number{Value: v, Unit: m[2], Decimals: decimals}, true
}

// Recompose renders the number with the precision it was written in.
func (n *Number) Recompose() string {
	if n.Decimals > 0 {
		return strconv.FormatFloat(n.Value, 'f', n.Decimals, 64) + n.Unit
	}
	return strconv.FormatFloat(math.Round(n.Value), 'f', 0, 64) + n.Unit
}

// Format renders v rounded to at most decimals fractional digits, trimming
// trailing zeros. Negative zero renders as "0".
func Format(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
