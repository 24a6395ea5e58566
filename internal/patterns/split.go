package patterns

import "strings"

// SplitTopLevel splits input at every sep that is not nested inside
// parentheses. Parts are trimmed; empty parts in the middle are kept and a
// trailing empty part is dropped.
func SplitTopLevel(input string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(input[last:i]))
				last = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(input[last:]); tail != "" {
		parts = append(parts, tail)
	}
	return parts
}

// FieldsTopLevel splits input around runs of whitespace that are not nested
// inside parentheses, so calc(1px + 2px) stays one field.
func FieldsTopLevel(input string) []string {
	var fields []string
	depth := 0
	start := -1
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && (c == ' ' || c == '\t' || c == '\n' || c == '\r'):
			if start >= 0 {
				fields = append(fields, input[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, input[start:])
	}
	return fields
}
