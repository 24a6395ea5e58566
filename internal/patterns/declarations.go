package patterns

import (
	"regexp"
	"strings"
)

// declaration finds `property: value` pairs that start a line, follow a
// semicolon or open a block. The value runs to the next ';', newline or brace.
var declaration = regexp.MustCompile(`(?i)(?:^|[;\n{])\s*([a-z-]+)\s*:\s*([^;\n{}]+)`)

// customProperty finds `--name: value;` declarations; the value may span lines.
var customProperty = regexp.MustCompile(`(?i)--([a-z0-9_-]+)\s*:\s*([^;{}]+)(?:;|\})`)

var keyframes = regexp.MustCompile(`@keyframes\s+([a-zA-Z0-9_-]+)`)

// Declaration is one property/value pair found in raw text.
type Declaration struct {
	// Property is the lower-cased property name.
	Property string
	// Value is the raw value text, untrimmed.
	Value string
	// ValueStart and ValueEnd delimit Value in the source text.
	ValueStart int
	ValueEnd   int
}

// ValueSpan returns the span of the value with surrounding whitespace removed.
// A blank value yields an empty span at ValueStart.
func (d Declaration) ValueSpan() Span {
	if strings.TrimSpace(d.Value) == "" {
		return Span{Start: d.ValueStart, End: d.ValueStart}
	}
	lead := len(d.Value) - len(strings.TrimLeft(d.Value, " \t\r\n"))
	trail := len(d.Value) - len(strings.TrimRight(d.Value, " \t\r\n"))
	return Span{Start: d.ValueStart + lead, End: d.ValueEnd - trail}
}

// TrimmedValue returns the value with surrounding whitespace removed.
func (d Declaration) TrimmedValue() string {
	return strings.TrimSpace(d.Value)
}

// Declarations returns every declaration in text in source order.
func Declarations(text string) []Declaration {
	var out []Declaration
	for _, m := range declaration.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, Declaration{
			Property:   strings.ToLower(text[m[2]:m[3]]),
			Value:      text[m[4]:m[5]],
			ValueStart: m[4],
			ValueEnd:   m[5],
		})
	}
	return out
}

// CustomProperty is a `--name: value` declaration.
type CustomProperty struct {
	// Name includes the leading dashes and keeps its source casing.
	Name  string
	Value string
	Span  Span
}

// CustomProperties returns every custom property declaration in text.
func CustomProperties(text string) []CustomProperty {
	var out []CustomProperty
	for _, m := range customProperty.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > 0 && isIdentByte(text[m[0]-1]) {
			continue
		}
		out = append(out, CustomProperty{
			Name:  "--" + text[m[2]:m[3]],
			Value: strings.TrimSpace(text[m[4]:m[5]]),
			Span:  Span{Start: m[0], End: m[5]},
		})
	}
	return out
}

// KeyframeNames returns the names declared by @keyframes rules, without
// duplicates, in first-seen order.
func KeyframeNames(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range keyframes.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
