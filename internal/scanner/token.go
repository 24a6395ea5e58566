// Package scanner classifies the editable style values of a text into typed,
// non-overlapping tokens.
package scanner

import (
	"fmt"
	"sort"

	"bennypowers.dev/svls/internal/patterns"
)

// Category is the kind of value a token holds.
type Category int

// Categories in the order the scanner gives them precedence.
const (
	Gradient Category = iota
	Shadow
	Transform
	Color
	Enum
	Number
)

var categoryNames = [...]string{
	Gradient:  "gradient",
	Shadow:    "shadow",
	Transform: "transform",
	Color:     "color",
	Enum:      "enum",
	Number:    "number",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// ParseCategory returns the category with the given name.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

// Token is a classified span of source text. Start and End are byte offsets,
// End exclusive.
type Token struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Category Category `json:"category"`
	// Property is the declaring property, or the keyword sub-property for
	// animation and border parts. Empty when none is known.
	Property string `json:"property,omitempty"`
}

// Span returns the token's byte range.
func (t Token) Span() patterns.Span {
	return patterns.Span{Start: t.Start, End: t.End}
}

// Text returns the raw text the token covers.
func (t Token) Text(text string) string {
	return text[t.Start:t.End]
}

// At returns the token containing offset. tokens must be sorted by start.
func At(tokens []Token, offset int) (Token, bool) {
	i := sort.Search(len(tokens), func(i int) bool { return tokens[i].End > offset })
	if i < len(tokens) && tokens[i].Start <= offset {
		return tokens[i], true
	}
	return Token{}, false
}

// intervals is a sorted set of disjoint spans.
type intervals []patterns.Span

// free reports whether s overlaps none of the spans, and where it would go.
func (iv intervals) free(s patterns.Span) (int, bool) {
	i := sort.Search(len(iv), func(i int) bool { return iv[i].End > s.Start })
	return i, i == len(iv) || iv[i].Start >= s.End
}

func (iv *intervals) insert(i int, s patterns.Span) {
	*iv = append(*iv, patterns.Span{})
	copy((*iv)[i+1:], (*iv)[i:])
	(*iv)[i] = s
}
