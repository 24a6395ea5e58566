package transform

import (
	"regexp"
	"strconv"
	"strings"

	"bennypowers.dev/svls/internal/patterns"
)

var (
	lengthArg = regexp.MustCompile(`(?i)^(-?\d*\.?\d+)([a-z%]*)$`)
	scaleArg  = regexp.MustCompile(`^(-?\d*\.?\d+)(%?)$`)
	argSep    = regexp.MustCompile(`[\s,]+`)
)

// Item is one function call of the source value, in source order.
type Item struct {
	// Name is the canonical function name for recognized items and the
	// source spelling otherwise.
	Name string
	// Raw is the call as written, e.g. "rotate(45deg)".
	Raw        string
	Recognized bool

	args int
}

// Parsed is an editable transform value.
type Parsed struct {
	Items []Item

	values  [componentCount]Value
	active  [componentCount]bool
	present map[string]bool

	parsedValues [componentCount]Value
	parsedActive [componentCount]bool
}

// Parse reads a transform value. The keyword "none" yields an empty,
// valid result; a value without any function call is unparseable.
//
// Calls whose arguments are not plain numbers, or that set a component an
// earlier call already set, are kept as opaque items so rendering them
// back cannot change their meaning.
func Parse(value string) (*Parsed, bool) {
	v := strings.TrimSpace(value)
	p := &Parsed{present: make(map[string]bool)}
	for _, c := range Components() {
		p.values[c] = c.defaultValue()
	}

	parts := split(v)
	hasCall := false
	for _, part := range parts {
		if part.call {
			hasCall = true
			break
		}
	}
	if !hasCall {
		if strings.EqualFold(v, "none") {
			p.snapshot()
			return p, true
		}
		return nil, false
	}

	for _, part := range parts {
		if !part.call {
			p.Items = append(p.Items, Item{Raw: part.raw})
			continue
		}
		p.Items = append(p.Items, p.parseCall(part.name, part.args, part.raw))
	}
	p.snapshot()
	return p, true
}

type part struct {
	call bool
	name string
	args string
	raw  string
}

// split breaks v into top-level name(args) calls and any other
// whitespace-separated words, left to right.
func split(v string) []part {
	var parts []part
	for i := 0; i < len(v); {
		if isSpace(v[i]) {
			i++
			continue
		}
		start := i
		for i < len(v) && isNameByte(v[i]) {
			i++
		}
		if i > start && i < len(v) && v[i] == '(' {
			if end := patterns.MatchParen(v, i); end > 0 {
				parts = append(parts, part{call: true, name: v[start:i], args: v[i+1 : end-1], raw: v[start:end]})
				i = end
				continue
			}
		}
		for i < len(v) && !isSpace(v[i]) {
			i++
		}
		parts = append(parts, part{raw: v[start:i]})
	}
	return parts
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isNameByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (p *Parsed) parseCall(name, rawArgs, raw string) Item {
	opaque := Item{Name: name, Raw: raw}
	fn, ok := functions[strings.ToLower(name)]
	if !ok {
		return opaque
	}

	var args []string
	for _, a := range argSep.Split(strings.TrimSpace(rawArgs), -1) {
		if a != "" {
			args = append(args, a)
		}
	}
	if len(args) == 0 || len(args) > len(fn.components) {
		return opaque
	}

	parsed := make([]Value, 0, len(args))
	for i, a := range args {
		val, ok := parseArg(fn.components[i], a)
		if !ok {
			return opaque
		}
		parsed = append(parsed, val)
	}
	if fn.shorthand && len(parsed) == 1 {
		parsed = append(parsed, parsed[0])
	}
	for _, c := range fn.components {
		if p.active[c] {
			return opaque
		}
	}

	for i, c := range fn.components {
		p.values[c] = parsed[i]
		p.active[c] = true
	}
	p.present[fn.name] = true
	return Item{Name: fn.name, Raw: raw, Recognized: true, args: len(args)}
}

func parseArg(c Component, arg string) (Value, bool) {
	if c.isScale() {
		m := scaleArg.FindStringSubmatch(arg)
		if m == nil {
			return Value{}, false
		}
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Value{}, false
		}
		if m[2] == "%" {
			f /= 100
		}
		return Value{Num: f}, true
	}
	m := lengthArg.FindStringSubmatch(arg)
	if m == nil {
		return Value{}, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Value{}, false
	}
	unit := m[2]
	if unit == "" {
		unit = c.defaultUnit()
	}
	return Value{Num: f, Unit: unit}, true
}

func (p *Parsed) snapshot() {
	p.parsedValues = p.values
	p.parsedActive = p.active
}

// Get returns the current value of a component.
func (p *Parsed) Get(c Component) Value {
	return p.values[c]
}

// IsActive reports whether a component will be rendered.
func (p *Parsed) IsActive(c Component) bool {
	return p.active[c]
}

// Present reports whether the source used the named function, such as
// "translate" or "rotateZ".
func (p *Parsed) Present(function string) bool {
	fn, ok := functions[strings.ToLower(function)]
	return ok && p.present[fn.name]
}

// Set changes a component's value and activates it. An empty unit keeps
// the component's current unit.
func (p *Parsed) Set(c Component, v Value) {
	if c.isScale() {
		v.Unit = ""
	} else if v.Unit == "" {
		v.Unit = p.values[c].Unit
	}
	p.values[c] = v
	p.active[c] = true
}

// Activate turns a component on with its current value.
func (p *Parsed) Activate(c Component) {
	p.active[c] = true
}

// Deactivate removes a component from the rendered value.
func (p *Parsed) Deactivate(c Component) {
	p.active[c] = false
}

// ActiveComponents returns the active components in canonical order.
func (p *Parsed) ActiveComponents() []Component {
	var out []Component
	for _, c := range Components() {
		if p.active[c] {
			out = append(out, c)
		}
	}
	return out
}
