// Package shadow parses box-shadow and text-shadow lists and renders them
// back. Spread and inset only exist for box shadows.
package shadow

import (
	"regexp"
	"strconv"
	"strings"

	"bennypowers.dev/svls/internal/patterns"
)

var (
	length    = regexp.MustCompile(`(?i)^(-?\d*\.?\d+)([a-z%]*)$`)
	insetWord = regexp.MustCompile(`(?i)\binset\b`)
	ident     = regexp.MustCompile(`(?i)^[a-z][a-z-]*$`)
)

// Length is a magnitude with an optional unit.
type Length struct {
	Num  float64
	Unit string
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Num, 'f', -1, 64) + l.Unit
}

// ParseLength reads a single length such as "2px" or "0".
func ParseLength(s string) (Length, bool) {
	m := length.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Length{}, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Num: f, Unit: m[2]}, true
}

// Shadow is one entry of a shadow list.
type Shadow struct {
	Inset  bool
	X, Y   Length
	Blur   *Length
	Spread *Length
	// Color is the color as written; empty when the entry has none.
	Color string
}

// List is an editable shadow list.
type List struct {
	// Box is set for box-shadow, which allows inset and spread.
	Box     bool
	Shadows []Shadow
}

// Parse reads a shadow list. "none" yields an empty list. Any entry
// without numeric x and y offsets makes the whole value unparseable.
func Parse(value string, box bool) (*List, bool) {
	v := strings.TrimSpace(value)
	l := &List{Box: box}
	if strings.EqualFold(v, "none") {
		return l, true
	}
	groups := patterns.SplitTopLevel(v, ',')
	if len(groups) == 0 {
		return nil, false
	}
	for _, g := range groups {
		s, ok := parseGroup(g, box)
		if !ok {
			return nil, false
		}
		l.Shadows = append(l.Shadows, s)
	}
	return l, true
}

func parseGroup(group string, box bool) (Shadow, bool) {
	var s Shadow
	if span, ok := lastColor(group); ok {
		s.Color = span.Text(group)
		group = group[:span.Start] + " " + group[span.End:]
	}
	if insetWord.MatchString(group) {
		s.Inset = true
		group = insetWord.ReplaceAllString(group, " ")
	}

	var lengths []Length
	for _, f := range patterns.FieldsTopLevel(group) {
		if l, ok := ParseLength(f); ok {
			lengths = append(lengths, l)
			continue
		}
		if s.Color == "" && ident.MatchString(f) {
			s.Color = f
			continue
		}
		return Shadow{}, false
	}

	limit := 3
	if box {
		limit = 4
	}
	if len(lengths) < 2 || len(lengths) > limit {
		return Shadow{}, false
	}
	s.X, s.Y = lengths[0], lengths[1]
	if len(lengths) > 2 {
		blur := lengths[2]
		s.Blur = &blur
	}
	if len(lengths) > 3 {
		spread := lengths[3]
		s.Spread = &spread
	}
	return s, true
}

// lastColor finds the last color literal or var() call in group.
func lastColor(group string) (patterns.Span, bool) {
	candidates := append(patterns.FindColorLiterals(group), patterns.FindVarCalls(group)...)
	var best patterns.Span
	found := false
	for _, c := range candidates {
		if !found || c.Start > best.Start {
			best, found = c, true
		}
	}
	// a literal nested in a var() fallback belongs to the var() call
	for _, c := range candidates {
		if c.Start < best.Start && best.End <= c.End {
			best = c
		}
	}
	return best, found
}

// Recompose renders the list, joining entries with ", ".
func (l *List) Recompose() string {
	if len(l.Shadows) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(l.Shadows))
	for _, s := range l.Shadows {
		parts = append(parts, l.render(s))
	}
	return strings.Join(parts, ", ")
}

func (l *List) render(s Shadow) string {
	var fields []string
	if l.Box && s.Inset {
		fields = append(fields, "inset")
	}
	fields = append(fields, s.X.String(), s.Y.String())
	hasSpread := l.Box && s.Spread != nil
	switch {
	case s.Blur != nil:
		fields = append(fields, s.Blur.String())
	case hasSpread:
		fields = append(fields, "0")
	}
	if hasSpread {
		fields = append(fields, s.Spread.String())
	}
	if s.Color != "" {
		fields = append(fields, s.Color)
	}
	return strings.Join(fields, " ")
}

// Add appends a shadow entry.
func (l *List) Add(s Shadow) {
	l.Shadows = append(l.Shadows, s)
}

// Remove deletes the entry at index i.
func (l *List) Remove(i int) bool {
	if i < 0 || i >= len(l.Shadows) {
		return false
	}
	l.Shadows = append(l.Shadows[:i], l.Shadows[i+1:]...)
	return true
}
