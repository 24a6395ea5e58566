package patterns

import (
	"regexp"
	"slices"
	"strings"
)

// GradientFunctions are the gradient function names the scanner recognizes.
// Each may also carry a "repeating-" prefix.
var GradientFunctions = []string{"linear-gradient", "radial-gradient", "conic-gradient"}

const repeatingPrefix = "repeating-"

var customPropertyName = regexp.MustCompile(`^--[a-zA-Z0-9_-]+$`)

// VarRef is a parsed var(--name, fallback) reference.
type VarRef struct {
	Name        string
	Fallback    string
	HasFallback bool
}

// FindCalls returns the span of every balanced name(...) call in text,
// matched case-insensitively. Calls whose parentheses never close are
// skipped. Nested calls of the same name are reported too.
func FindCalls(text, name string) []Span {
	lower := asciiLower(text)
	needle := asciiLower(name) + "("
	var spans []Span
	for from := 0; from < len(lower); {
		idx := strings.Index(lower[from:], needle)
		if idx < 0 {
			break
		}
		start := from + idx
		from = start + 1
		if start > 0 && isIdentByte(lower[start-1]) {
			continue
		}
		end := MatchParen(text, start+len(needle)-1)
		if end < 0 {
			continue
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}

// FindVarCalls returns every balanced var(...) call in text.
func FindVarCalls(text string) []Span {
	return FindCalls(text, "var")
}

// ParseVar parses value as a single var() reference. The trimmed value must
// consist of exactly one var() call naming a custom property.
func ParseVar(value string) (VarRef, bool) {
	v := strings.TrimSpace(value)
	if len(v) < len("var()") || !strings.EqualFold(v[:4], "var(") {
		return VarRef{}, false
	}
	if MatchParen(v, 3) != len(v) {
		return VarRef{}, false
	}
	inner := v[4 : len(v)-1]
	name, fallback, hasComma := cutTopLevel(inner, ',')
	name = strings.TrimSpace(name)
	if !customPropertyName.MatchString(name) {
		return VarRef{}, false
	}
	ref := VarRef{Name: name}
	if hasComma {
		if fb := strings.TrimSpace(fallback); fb != "" {
			ref.Fallback = fb
			ref.HasFallback = true
		}
	}
	return ref, true
}

// IsVar reports whether the trimmed value is exactly one var() call.
func IsVar(value string) bool {
	_, ok := ParseVar(value)
	return ok
}

// FindGradientCalls returns every balanced gradient function call in text,
// ordered by start offset with longer spans first on ties.
func FindGradientCalls(text string) []Span {
	var spans []Span
	for _, name := range GradientFunctions {
		// FindCalls rejects names glued to a preceding identifier, so the
		// repeating- forms need their own pass.
		spans = append(spans, FindCalls(text, name)...)
		spans = append(spans, FindCalls(text, repeatingPrefix+name)...)
	}
	slices.SortFunc(spans, func(a, b Span) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return b.End - a.End
	})
	return spans
}

// FirstGradientCall returns the leftmost complete gradient call in text.
func FirstGradientCall(text string) (string, bool) {
	spans := FindGradientCalls(text)
	if len(spans) == 0 {
		return "", false
	}
	return spans[0].Text(text), true
}

// GradientName returns the function name when the trimmed value starts
// with a gradient call, e.g. "linear-gradient" or "repeating-conic-gradient".
func GradientName(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	base := strings.TrimPrefix(v, repeatingPrefix)
	for _, name := range GradientFunctions {
		if strings.HasPrefix(base, name+"(") {
			return v[:len(v)-len(base)+len(name)], true
		}
	}
	return "", false
}

// cutTopLevel splits s around the first sep that is not nested in parentheses.
func cutTopLevel(s string, sep byte) (before, after string, found bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}
