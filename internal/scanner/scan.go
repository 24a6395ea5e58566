package scanner

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"bennypowers.dev/svls/internal/enum"
	"bennypowers.dev/svls/internal/number"
	"bennypowers.dev/svls/internal/patterns"
	"bennypowers.dev/svls/internal/variables"
)

var (
	word        = regexp.MustCompile(`[a-zA-Z_-][\w-]*`)
	leadingWord = regexp.MustCompile(`^[\w-]+`)
	numeric     = regexp.MustCompile(`^-?\.?\d`)
	timingCall  = regexp.MustCompile(`(?i)\b(?:steps|cubic-bezier)\([^)]*\)`)
)

// Context carries the names a scan resolves against.
type Context struct {
	Vars      variables.Map
	Keyframes []string
}

// NewContext builds the context declared within text itself.
func NewContext(text string) Context {
	return Context{
		Vars:      variables.BuildMap(text),
		Keyframes: patterns.KeyframeNames(text),
	}
}

// Scan returns the tokens of text, sorted by start offset, resolving var()
// references against the custom properties declared in text.
func Scan(text string) []Token {
	return ScanWith(text, NewContext(text))
}

// ScanWith scans text resolving against ctx. Detectors run by category
// precedence and a candidate is kept only when it overlaps no token already
// kept, so the result never overlaps.
func ScanWith(text string, ctx Context) []Token {
	s := &scan{text: text, ctx: ctx, decls: patterns.Declarations(text)}
	s.gradients()
	s.shadows()
	s.transforms()
	s.colors()
	s.enums()
	s.numbers()
	slices.SortFunc(s.tokens, func(a, b Token) int { return a.Start - b.Start })
	return s.tokens
}

type scan struct {
	text     string
	ctx      Context
	decls    []patterns.Declaration
	accepted intervals
	tokens   []Token
}

// accept keeps the candidate when it is non-empty and free.
func (s *scan) accept(span patterns.Span, c Category, property string) bool {
	if span.Start >= span.End {
		return false
	}
	i, ok := s.accepted.free(span)
	if !ok {
		return false
	}
	s.accepted.insert(i, span)
	s.tokens = append(s.tokens, Token{Start: span.Start, End: span.End, Category: c, Property: property})
	return true
}

// propertyAt returns the property of the declaration whose value holds span.
func (s *scan) propertyAt(span patterns.Span) string {
	i := sort.Search(len(s.decls), func(i int) bool { return s.decls[i].ValueEnd >= span.End })
	if i < len(s.decls) && s.decls[i].ValueStart <= span.Start {
		return s.decls[i].Property
	}
	return ""
}

// acceptAll keeps candidates outermost first, so a var() wins over a literal
// in its own fallback and an enclosing gradient over a nested one.
func (s *scan) acceptAll(spans []patterns.Span, c Category) {
	slices.SortStableFunc(spans, func(a, b patterns.Span) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return b.End - a.End
	})
	for _, span := range spans {
		s.accept(span, c, s.propertyAt(span))
	}
}

// resolvableVars returns the var() calls that resolve through resolve.
func (s *scan) resolvableVars(resolve func(string, variables.Map) (string, bool)) []patterns.Span {
	var out []patterns.Span
	for _, span := range patterns.FindVarCalls(s.text) {
		raw := span.Text(s.text)
		if !patterns.IsVar(raw) {
			continue
		}
		if _, ok := resolve(raw, s.ctx.Vars); ok {
			out = append(out, span)
		}
	}
	return out
}

func (s *scan) gradients() {
	spans := patterns.FindGradientCalls(s.text)
	spans = append(spans, s.resolvableVars(variables.ResolveGradient)...)
	s.acceptAll(spans, Gradient)
}

func (s *scan) shadows() {
	for _, d := range s.decls {
		if d.Property == "box-shadow" || d.Property == "text-shadow" {
			s.accept(d.ValueSpan(), Shadow, d.Property)
		}
	}
}

func (s *scan) transforms() {
	for _, d := range s.decls {
		if d.Property == "transform" {
			s.accept(d.ValueSpan(), Transform, d.Property)
		}
	}
}

func (s *scan) colors() {
	spans := patterns.FindColorLiterals(s.text)
	spans = append(spans, s.resolvableVars(variables.ResolveColor)...)
	s.acceptAll(spans, Color)
}

func (s *scan) enums() {
	for _, d := range s.decls {
		span := d.ValueSpan()
		if span.Start >= span.End {
			continue
		}
		value := span.Text(s.text)
		isVar := patterns.IsVar(value)
		prop := enum.Effective(d.Property)

		if prop == "font-weight" || prop == "animation-iteration-count" {
			resolved, ok := variables.ResolveGeneric(value, s.ctx.Vars)
			if !ok {
				resolved = value
			}
			if numeric.MatchString(resolved) {
				continue
			}
		}

		if prop == "animation" {
			if isVar {
				s.accept(span, Enum, prop)
			} else {
				s.animationParts(span)
			}
			continue
		}

		if strings.HasPrefix(d.Property, "border") && !isVar {
			for _, loc := range word.FindAllStringIndex(value, -1) {
				if enum.BorderStyles.Has(value[loc[0]:loc[1]]) {
					s.accept(span.Sub(loc[0], loc[1]), Enum, "border-style")
				}
			}
		}

		if !enum.IsProperty(prop) {
			continue
		}
		end := len(value)
		switch {
		case isVar:
		case prop == "font-family":
			if i := strings.IndexByte(value, ','); i >= 0 {
				end = len(strings.TrimRight(value[:i], " \t"))
			}
		default:
			if loc := leadingWord.FindStringIndex(value); loc != nil {
				end = loc[1]
			}
		}
		s.accept(span.Sub(0, end), Enum, prop)
	}
}

// animationParts splits an animation shorthand into keyword sub-tokens.
func (s *scan) animationParts(span patterns.Span) {
	value := span.Text(s.text)
	for _, loc := range timingCall.FindAllStringIndex(value, -1) {
		s.accept(span.Sub(loc[0], loc[1]), Enum, "animation-timing-function")
	}
	for _, loc := range word.FindAllStringIndex(value, -1) {
		if loc[0] > 0 && isDigit(value[loc[0]-1]) {
			// unit of a duration such as "2s"
			continue
		}
		if part, ok := enum.AnimationPart(value[loc[0]:loc[1]], s.ctx.Keyframes); ok {
			s.accept(span.Sub(loc[0], loc[1]), Enum, part)
		}
	}
}

func (s *scan) numbers() {
	for _, d := range s.decls {
		if !number.IsProperty(d.Property) {
			continue
		}
		for _, n := range patterns.FindNumbers(d.Value) {
			s.accept(n.Shift(d.ValueStart), Number, d.Property)
		}
	}
	// Unit-suffixed numbers anywhere else in the text. These can repeat a
	// candidate found above, in which case the first one stands.
	for _, n := range patterns.FindUnitNumbers(s.text) {
		s.accept(n, Number, s.propertyAt(n))
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
