package patterns

import "regexp"

// ColorLiteral matches hex colors, rgb()/rgba()/hsl()/hsla() calls without
// nested parentheses, and the transparent/currentcolor keywords.
var ColorLiteral = regexp.MustCompile(
	`(?i)#(?:[0-9a-f]{3,4}|[0-9a-f]{6}|[0-9a-f]{8})\b|(?:rgba?|hsla?)\([^)]*\)|\btransparent\b|\bcurrentcolor\b`,
)

// FindColorLiterals returns every color literal in text, left to right.
func FindColorLiterals(text string) []Span {
	var spans []Span
	for _, loc := range ColorLiteral.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && text[loc[0]] != '#' && isIdentByte(text[loc[0]-1]) {
			// rgb( inside a longer identifier such as "myrgb("
			continue
		}
		spans = append(spans, Span{Start: loc[0], End: loc[1]})
	}
	return spans
}

// FirstColorLiteral returns the leftmost color literal in text.
func FirstColorLiteral(text string) (string, bool) {
	spans := FindColorLiterals(text)
	if len(spans) == 0 {
		return "", false
	}
	return spans[0].Text(text), true
}
