// Package gradient parses gradient function calls into a prefix and a list
// of color stops, and renders them back.
package gradient

import (
	"regexp"
	"strings"

	"bennypowers.dev/svls/internal/collections"
	"bennypowers.dev/svls/internal/patterns"
)

var prefixKeywords = collections.NewKeywords(
	"to", "at", "from", "in", "circle", "ellipse",
	"closest-side", "closest-corner", "farthest-side", "farthest-corner",
)

var angle = regexp.MustCompile(`(?i)^-?\d*\.?\d+(?:deg|grad|rad|turn)$`)

// Stop is one color stop. Position is empty when the stop has none.
type Stop struct {
	Color    string
	Position string
}

func (s Stop) String() string {
	if s.Position == "" {
		return s.Color
	}
	return s.Color + " " + s.Position
}

// Parsed is an editable gradient.
type Parsed struct {
	// Type is the lower-cased function name, e.g. "radial-gradient".
	Type string
	// Prefix is the direction or shape argument; empty when absent.
	Prefix string
	Stops  []Stop
}

// Parse reads a value that is exactly one gradient call.
func Parse(value string) (*Parsed, bool) {
	v := strings.TrimSpace(value)
	name, ok := patterns.GradientName(v)
	if !ok {
		return nil, false
	}
	open := len(name)
	if patterns.MatchParen(v, open) != len(v) {
		return nil, false
	}

	g := &Parsed{Type: name}
	args := patterns.SplitTopLevel(v[open+1:len(v)-1], ',')
	if len(args) > 0 && isPrefix(args[0]) {
		g.Prefix = args[0]
		args = args[1:]
	}
	for _, arg := range args {
		if arg == "" {
			continue
		}
		g.Stops = append(g.Stops, parseStop(arg))
	}
	return g, true
}

// isPrefix reports whether the first argument describes direction, shape
// or position rather than a color stop.
func isPrefix(arg string) bool {
	if len(patterns.FindColorLiterals(arg)) > 0 || strings.Contains(strings.ToLower(arg), "var(") {
		return false
	}
	fields := patterns.FieldsTopLevel(arg)
	if len(fields) > 0 && angle.MatchString(fields[0]) {
		return true
	}
	for _, f := range fields {
		if prefixKeywords.Has(f) {
			return true
		}
	}
	return false
}

// parseStop splits a stop into its leading color and trailing position.
// When the stop does not start with a color literal its first field is
// kept as the color, which covers named colors and var() references.
func parseStop(arg string) Stop {
	if spans := patterns.FindColorLiterals(arg); len(spans) > 0 && spans[0].Start == 0 {
		return Stop{
			Color:    arg[:spans[0].End],
			Position: strings.TrimSpace(arg[spans[0].End:]),
		}
	}
	fields := patterns.FieldsTopLevel(arg)
	color := fields[0]
	return Stop{
		Color:    color,
		Position: strings.TrimSpace(strings.TrimPrefix(arg, color)),
	}
}

// Recompose renders type(prefix, stop, ...).
func (g *Parsed) Recompose() string {
	args := make([]string, 0, len(g.Stops)+1)
	if g.Prefix != "" {
		args = append(args, g.Prefix)
	}
	for _, s := range g.Stops {
		args = append(args, s.String())
	}
	return g.Type + "(" + strings.Join(args, ", ") + ")"
}

// AddStop appends a stop.
func (g *Parsed) AddStop(s Stop) {
	g.Stops = append(g.Stops, s)
}

// SetStop replaces the stop at index i.
func (g *Parsed) SetStop(i int, s Stop) bool {
	if i < 0 || i >= len(g.Stops) {
		return false
	}
	g.Stops[i] = s
	return true
}

// RemoveStop deletes the stop at index i.
func (g *Parsed) RemoveStop(i int) bool {
	if i < 0 || i >= len(g.Stops) {
		return false
	}
	g.Stops = append(g.Stops[:i], g.Stops[i+1:]...)
	return true
}
