package transform

import (
	"strings"

	"bennypowers.dev/svls/internal/number"
)

// Recompose renders the value. Source calls are replayed in order: opaque
// calls verbatim, untouched recognized calls as written, edited ones
// regenerated and deactivated ones dropped. Components activated without a
// source call are appended in canonical order. Nothing left renders "none".
func (p *Parsed) Recompose() string {
	var parts []string
	var covered [componentCount]bool

	for _, item := range p.Items {
		if !item.Recognized {
			parts = append(parts, item.Raw)
			continue
		}
		fn := functions[strings.ToLower(item.Name)]
		for _, c := range fn.components {
			covered[c] = true
		}
		if p.untouched(fn) {
			parts = append(parts, item.Raw)
			continue
		}
		if text := p.renderItem(fn, item.args); text != "" {
			parts = append(parts, text)
		}
	}

	parts = append(parts, p.appended(covered)...)
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func (p *Parsed) untouched(fn function) bool {
	for _, c := range fn.components {
		if p.values[c] != p.parsedValues[c] || p.active[c] != p.parsedActive[c] {
			return false
		}
	}
	return true
}

func (p *Parsed) renderItem(fn function, args int) string {
	if !fn.shorthand {
		c := fn.components[0]
		if !p.active[c] {
			return ""
		}
		return call(fn.name, p.format(c))
	}

	x, y := fn.components[0], fn.components[1]
	switch {
	case p.active[x] && p.active[y]:
		if args == 1 && p.values[x] == p.values[y] {
			return call(fn.name, p.format(x))
		}
		return p.pair(fn.name, x, y)
	case p.active[x]:
		return call(x.String(), p.format(x))
	case p.active[y]:
		return call(y.String(), p.format(y))
	}
	return ""
}

// appended renders active components no source call accounted for.
func (p *Parsed) appended(covered [componentCount]bool) []string {
	pending := func(c Component) bool { return p.active[c] && !covered[c] }
	var parts []string

	axisPair := func(name string, x, y Component) {
		switch {
		case pending(x) && pending(y):
			parts = append(parts, p.pair(name, x, y))
		case pending(x):
			parts = append(parts, call(x.String(), p.format(x)))
		case pending(y):
			parts = append(parts, call(y.String(), p.format(y)))
		}
	}
	single := func(c Component) {
		if pending(c) {
			parts = append(parts, call(c.String(), p.format(c)))
		}
	}

	axisPair("translate", TranslateX, TranslateY)
	single(TranslateZ)
	single(Rotate)
	single(RotateX)
	single(RotateY)
	axisPair("skew", SkewX, SkewY)
	axisPair("scale", ScaleX, ScaleY)
	single(ScaleZ)
	single(Perspective)
	return parts
}

// pair renders a two-axis shorthand; scale collapses equal axes.
func (p *Parsed) pair(name string, x, y Component) string {
	fx, fy := p.format(x), p.format(y)
	if x == ScaleX && fx == fy {
		return call(name, fx)
	}
	return call(name, fx+", "+fy)
}

func (p *Parsed) format(c Component) string {
	v := p.values[c]
	return number.Format(v.Num, c.decimals()) + v.Unit
}

func call(name, args string) string {
	return name + "(" + args + ")"
}
