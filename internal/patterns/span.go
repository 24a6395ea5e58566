// Package patterns holds the primitive span detectors the scanner and the
// value models are built from: color literals, balanced function calls,
// property declarations and numeric literals.
package patterns

// Span is a half-open byte range [Start, End) into a source text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether two half-open spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Text returns the slice of text covered by the span.
func (s Span) Text(text string) string {
	return text[s.Start:s.End]
}

// Shift returns the span moved by delta bytes.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// Sub returns the part of the span from offset from to offset to, both
// relative to Start.
func (s Span) Sub(from, to int) Span {
	return Span{Start: s.Start + from, End: s.Start + to}
}

// MatchParen returns the index just past the ')' matching the '(' at open,
// or -1 when the parenthesis is never closed.
func MatchParen(text string, open int) int {
	if open < 0 || open >= len(text) || text[open] != '(' {
		return -1
	}
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// asciiLower lower-cases ASCII letters only, so byte offsets into the
// result stay valid for the original text.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
