package patterns

import "regexp"

// Units are the dimension suffixes recognized on numeric literals.
var Units = []string{"px", "rem", "em", "vh", "vw", "vmin", "vmax", "%", "deg", "s", "ms", "fr"}

// numberInValue matches a bare or unit-suffixed number.
var numberInValue = regexp.MustCompile(`-?\d*\.?\d+(?:px|rem|em|vh|vw|vmin|vmax|%|deg|ms|s|fr)?`)

// unitNumber matches a number that carries a unit.
var unitNumber = regexp.MustCompile(`-?\d*\.?\d+(?:(?:px|rem|em|vh|vw|vmin|vmax|deg|ms|s|fr)\b|%)`)

// FindNumbers returns the bare or unit-suffixed numbers in text.
func FindNumbers(text string) []Span {
	return findNumbers(numberInValue, text)
}

// FindUnitNumbers returns the numbers in text that carry a unit.
func FindUnitNumbers(text string) []Span {
	return findNumbers(unitNumber, text)
}

// findNumbers drops matches glued to a preceding identifier, hex digit run
// or number, as in "--space-2" or "#333".
func findNumbers(re *regexp.Regexp, text string) []Span {
	var spans []Span
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > 0 {
			prev := text[loc[0]-1]
			if isIdentByte(prev) || prev == '#' || prev == '.' {
				continue
			}
		}
		if loc[1] < len(text) && isIdentByte(text[loc[1]]) && text[loc[1]] != '-' {
			// "2x" or "10pxx": the literal continues into an identifier
			continue
		}
		spans = append(spans, Span{Start: loc[0], End: loc[1]})
	}
	return spans
}
